package service

import (
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/util"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArticleService(t *testing.T, env *testEnv) *ArticleService {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewArticleService(
		env.ArticleRepo,
		env.UserRepo,
		env.AnswerRepo,
		env.CommentRepo,
		env.FileRepo,
		env.CategoryRepo,
		env.TagRepo,
		env.LikeRepo,
		env.BookmarkRepo,
		rdb,
		env.DB,
	)
}

func TestCreateArticle(t *testing.T) {
	t.Run("发布文章并奖励积分", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newArticleService(t, env)
		author := createUser(t, env.DB, "author@example.com")

		summary, err := svc.CreateArticle(author.ID, ArticleRequest{
			Title:    "how to debug goroutine leaks",
			Content:  "details here",
			Category: "qna",
			Tags:     []string{"go", "debugging"},
		})

		require.NoError(t, err)
		assert.NotZero(t, summary.ID)
		assert.Equal(t, "qna", summary.Category)
		assert.ElementsMatch(t, []string{"go", "debugging"}, summary.Tags)
		assert.Equal(t, author.ID, summary.Author.ID)

		// 缺失的标签自动补建
		var tag model.Tag
		require.NoError(t, env.DB.Where("name = ?", "debugging").First(&tag).Error)

		updated, err := env.UserRepo.FindByID(author.ID)
		require.NoError(t, err)
		assert.Equal(t, util.PointPostArticle, updated.Point)
	})

	t.Run("未知分类", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newArticleService(t, env)
		author := createUser(t, env.DB, "author@example.com")

		_, err := svc.CreateArticle(author.ID, ArticleRequest{
			Title:    "t",
			Content:  "c",
			Category: "nonexistent",
		})
		assert.ErrorIs(t, err, util.ErrArticleNotFound)
	})

	t.Run("挂载上传过的文件", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newArticleService(t, env)
		author := createUser(t, env.DB, "author@example.com")
		file := createFile(t, env.DB, author, "diagram.png")

		summary, err := svc.CreateArticle(author.ID, ArticleRequest{
			Title:    "t",
			Content:  "c",
			Category: "info",
			FileIDs:  []uint{file.ID},
		})
		require.NoError(t, err)

		var stored model.File
		require.NoError(t, env.DB.First(&stored, file.ID).Error)
		require.NotNil(t, stored.ArticleID)
		assert.Equal(t, summary.ID, *stored.ArticleID)
	})

	t.Run("文件挂载失败时整体回滚", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newArticleService(t, env)
		author := createUser(t, env.DB, "author@example.com")
		require.NoError(t, env.DB.Migrator().DropTable(&model.File{}))

		_, err := svc.CreateArticle(author.ID, ArticleRequest{
			Title:    "t",
			Content:  "c",
			Category: "qna",
			FileIDs:  []uint{1},
		})
		require.Error(t, err)

		var articleCount int64
		env.DB.Model(&model.Article{}).Count(&articleCount)
		assert.Zero(t, articleCount)

		unchanged, err := env.UserRepo.FindByID(author.ID)
		require.NoError(t, err)
		assert.Zero(t, unchanged.Point)
	})
}

func TestSearchArticles(t *testing.T) {
	env := newTestEnv(t)
	svc := newArticleService(t, env)
	author := createUser(t, env.DB, "author@example.com")

	_, err := svc.CreateArticle(author.ID, ArticleRequest{
		Title: "goroutine leak hunting", Content: "pprof walkthrough", Category: "qna", Tags: []string{"go"},
	})
	require.NoError(t, err)
	_, err = svc.CreateArticle(author.ID, ArticleRequest{
		Title: "weekly digest", Content: "community news", Category: "info", Tags: []string{"career"},
	})
	require.NoError(t, err)

	t.Run("关键字筛选", func(t *testing.T) {
		results, total, err := svc.Search(1, 20, "goroutine", "", "", "")
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, results, 1)
		assert.Equal(t, "goroutine leak hunting", results[0].Title)
	})

	t.Run("分类筛选", func(t *testing.T) {
		results, total, err := svc.Search(1, 20, "", "info", "", "")
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, results, 1)
		assert.Equal(t, "weekly digest", results[0].Title)
	})

	t.Run("标签筛选", func(t *testing.T) {
		results, total, err := svc.Search(1, 20, "", "", "go", "")
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, results, 1)
		assert.Equal(t, "goroutine leak hunting", results[0].Title)
	})

	t.Run("无匹配", func(t *testing.T) {
		_, total, err := svc.Search(1, 20, "nothing-matches-this", "", "", "")
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestGetArticleDetail(t *testing.T) {
	t.Run("同一用户十分钟内重复浏览只计一次", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newArticleService(t, env)
		author := createUser(t, env.DB, "author@example.com")
		viewer := createUser(t, env.DB, "viewer@example.com")
		article := createArticle(t, env.DB, author, model.CategoryQnA)

		first, err := svc.GetArticleDetail(article.ID, viewer.ID, "")
		require.NoError(t, err)
		assert.Equal(t, 1, first.Clicks)

		_, err = svc.GetArticleDetail(article.ID, viewer.ID, "")
		require.NoError(t, err)

		// 点击数异步落库，最终应恰好为一次
		require.Eventually(t, func() bool {
			var stored model.Article
			env.DB.First(&stored, article.ID)
			return stored.Clicks == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("附带点赞与收藏状态", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newArticleService(t, env)
		author := createUser(t, env.DB, "author@example.com")
		viewer := createUser(t, env.DB, "viewer@example.com")
		article := createArticle(t, env.DB, author, model.CategoryQnA)

		_, _, err := svc.ToggleLike(viewer.ID, util.ContentArticle, article.ID)
		require.NoError(t, err)
		_, err = svc.ToggleBookmark(viewer.ID, article.ID, "read later")
		require.NoError(t, err)

		detail, err := svc.GetArticleDetail(article.ID, viewer.ID, "")
		require.NoError(t, err)
		assert.True(t, detail.IsLiked)
		assert.True(t, detail.IsBookmarked)
		assert.EqualValues(t, 1, detail.Likes)

		// 游客视角不带个人状态
		guest, err := svc.GetArticleDetail(article.ID, 0, "203.0.113.7")
		require.NoError(t, err)
		assert.False(t, guest.IsLiked)
		assert.False(t, guest.IsBookmarked)
	})

	t.Run("已删除的文章不可见", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newArticleService(t, env)
		author := createUser(t, env.DB, "author@example.com")
		article := createArticle(t, env.DB, author, model.CategoryQnA)
		require.NoError(t, env.ArticleRepo.Remove(article.ID))

		_, err := svc.GetArticleDetail(article.ID, 0, "203.0.113.7")
		assert.ErrorIs(t, err, util.ErrArticleNotFound)
	})
}

func TestToggleLike(t *testing.T) {
	env := newTestEnv(t)
	svc := newArticleService(t, env)
	author := createUser(t, env.DB, "author@example.com")
	viewer := createUser(t, env.DB, "viewer@example.com")
	article := createArticle(t, env.DB, author, model.CategoryFree)

	liked, count, err := svc.ToggleLike(viewer.ID, util.ContentArticle, article.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, count)

	liked, count, err = svc.ToggleLike(viewer.ID, util.ContentArticle, article.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Zero(t, count)

	_, _, err = svc.ToggleLike(viewer.ID, "unknown", article.ID)
	assert.Error(t, err)
}

func TestCloseArticle(t *testing.T) {
	env := newTestEnv(t)
	svc := newArticleService(t, env)
	asker := createUser(t, env.DB, "asker@example.com")
	stranger := createUser(t, env.DB, "stranger@example.com")
	question := createQuestion(t, env.DB, asker)

	err := svc.CloseArticle(question.ID, stranger.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	require.NoError(t, svc.CloseArticle(question.ID, asker.ID))

	var stored model.Article
	require.NoError(t, env.DB.First(&stored, question.ID).Error)
	assert.True(t, stored.Closed)

	// 关闭后问题不再接受回答
	answerer := createUser(t, env.DB, "answerer@example.com")
	_, err = env.AnswerService.PostAnswer(question.ID, answerer.ID, &model.Answer{Content: "x"}, nil)
	assert.ErrorIs(t, err, util.ErrUnableToAnswer)
}

func TestUpdateArticle(t *testing.T) {
	env := newTestEnv(t)
	svc := newArticleService(t, env)
	author := createUser(t, env.DB, "author@example.com")
	stranger := createUser(t, env.DB, "stranger@example.com")

	created, err := svc.CreateArticle(author.ID, ArticleRequest{
		Title: "old title", Content: "old", Category: "free", Tags: []string{"go"},
	})
	require.NoError(t, err)

	req := ArticleRequest{Title: "new title", Content: "new", Category: "info", Tags: []string{"career"}}

	_, err = svc.UpdateArticle(created.ID, stranger.ID, req, model.RoleUser)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	updated, err := svc.UpdateArticle(created.ID, author.ID, req, model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "info", updated.Category)
	assert.Equal(t, []string{"career"}, updated.Tags)
}
