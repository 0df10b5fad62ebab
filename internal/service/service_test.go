package service

import (
	"fmt"
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/repository"
	"qna_community_backend/pkg/database"
	"qna_community_backend/pkg/logger"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 每个测试独立的内存库
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	DB           *gorm.DB
	UserRepo     *repository.UserRepository
	ArticleRepo  *repository.ArticleRepository
	AnswerRepo   *repository.AnswerRepository
	CommentRepo  *repository.CommentRepository
	FileRepo     *repository.FileRepository
	LikeRepo     *repository.LikeRepository
	BookmarkRepo *repository.BookmarkRepository
	CategoryRepo *repository.CategoryRepository
	TagRepo      *repository.TagRepository

	CommentService *CommentService
	AnswerService  *AnswerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	env := &testEnv{
		DB:           db,
		UserRepo:     repository.NewUserRepository(db),
		ArticleRepo:  repository.NewArticleRepository(db),
		AnswerRepo:   repository.NewAnswerRepository(db),
		CommentRepo:  repository.NewCommentRepository(db),
		FileRepo:     repository.NewFileRepository(db),
		LikeRepo:     repository.NewLikeRepository(db),
		BookmarkRepo: repository.NewBookmarkRepository(db),
		CategoryRepo: repository.NewCategoryRepository(db),
		TagRepo:      repository.NewTagRepository(db),
	}

	env.CommentService = NewCommentService(env.CommentRepo, env.ArticleRepo, env.UserRepo, env.LikeRepo)
	env.AnswerService = NewAnswerService(env.UserRepo, env.ArticleRepo, env.AnswerRepo, env.FileRepo, env.LikeRepo, env.CommentService, db)
	return env
}

func createUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    email,
		Password: "hashed-password",
		Nickname: strings.Split(email, "@")[0],
		Role:     model.RoleUser,
		Grade:    model.GradeBronze,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createArticle(t *testing.T, db *gorm.DB, author *model.User, category model.CategoryName) *model.Article {
	t.Helper()

	var cat model.Category
	require.NoError(t, db.Where("name = ?", category).First(&cat).Error)

	article := &model.Article{
		Title:      "test article",
		Content:    "test content",
		UserID:     author.ID,
		CategoryID: cat.ID,
		Status:     model.StatusPosting,
	}
	require.NoError(t, db.Create(article).Error)
	article.Category = cat
	return article
}

func createQuestion(t *testing.T, db *gorm.DB, author *model.User) *model.Article {
	t.Helper()
	return createArticle(t, db, author, model.CategoryQnA)
}

// backdateArticle 把文章创建时间拨回到过去
func backdateArticle(t *testing.T, db *gorm.DB, article *model.Article, age time.Duration) {
	t.Helper()
	createdAt := time.Now().Add(-age)
	require.NoError(t, db.Model(&model.Article{}).Where("id = ?", article.ID).
		Update("created_at", createdAt).Error)
	article.CreatedAt = createdAt
}

func createFile(t *testing.T, db *gorm.DB, owner *model.User, filename string) *model.File {
	t.Helper()
	file := &model.File{
		UserID:           owner.ID,
		OriginalFilename: filename,
		RemotePath:       "/uploads/files/" + filename,
		ContentType:      "application/octet-stream",
		Size:             128,
	}
	require.NoError(t, db.Create(file).Error)
	return file
}
