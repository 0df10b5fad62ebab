package service

import (
	"context"
	"fmt"
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/repository"
	"qna_community_backend/internal/util"
	"qna_community_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ArticleService struct {
	DB           *gorm.DB
	ArticleRepo  *repository.ArticleRepository
	UserRepo     *repository.UserRepository
	AnswerRepo   *repository.AnswerRepository
	CommentRepo  *repository.CommentRepository
	FileRepo     *repository.FileRepository
	CategoryRepo *repository.CategoryRepository
	TagRepo      *repository.TagRepository
	LikeRepo     *repository.LikeRepository
	BookmarkRepo *repository.BookmarkRepository
	Redis        *redis.Client
}

func NewArticleService(
	articleRepo *repository.ArticleRepository,
	userRepo *repository.UserRepository,
	answerRepo *repository.AnswerRepository,
	commentRepo *repository.CommentRepository,
	fileRepo *repository.FileRepository,
	categoryRepo *repository.CategoryRepository,
	tagRepo *repository.TagRepository,
	likeRepo *repository.LikeRepository,
	bookmarkRepo *repository.BookmarkRepository,
	rdb *redis.Client,
	db *gorm.DB,
) *ArticleService {
	return &ArticleService{
		DB:           db,
		ArticleRepo:  articleRepo,
		UserRepo:     userRepo,
		AnswerRepo:   answerRepo,
		CommentRepo:  commentRepo,
		FileRepo:     fileRepo,
		CategoryRepo: categoryRepo,
		TagRepo:      tagRepo,
		LikeRepo:     likeRepo,
		BookmarkRepo: bookmarkRepo,
		Redis:        rdb,
	}
}

type ArticleRequest struct {
	Title    string   `json:"title" binding:"required,max=255"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
	FileIDs  []uint   `json:"fileIds"`
}

type ArticleSummary struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	Author      AnswerAuthor `json:"author"`
	Clicks      int          `json:"clicks"`
	Closed      bool         `json:"closed"`
	AnswerCount int          `json:"answerCount"`
	Likes       int64        `json:"likes"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type ArticleDetail struct {
	ArticleSummary
	IsLiked      bool             `json:"isLiked"`
	IsBookmarked bool             `json:"isBookmarked"`
	Files        []AnswerFileInfo `json:"files"`
	CommentCount int64            `json:"commentCount"`
}

// CreateArticle 发文、文件挂载和积分奖励在同一个事务里落库
func (s *ArticleService) CreateArticle(userID uint, req ArticleRequest) (*ArticleSummary, error) {
	var summary ArticleSummary

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := s.UserRepo.WithTx(tx).FindVerifiedByID(userID)
		if err != nil {
			return err
		}

		category, err := s.CategoryRepo.WithTx(tx).FindByName(model.CategoryName(req.Category))
		if err != nil {
			return util.ErrArticleNotFound
		}

		tags, err := s.TagRepo.WithTx(tx).FindOrCreateByNames(req.Tags)
		if err != nil {
			return err
		}

		article := &model.Article{
			Title:      req.Title,
			Content:    req.Content,
			UserID:     user.ID,
			CategoryID: category.ID,
			Tags:       tags,
			Status:     model.StatusPosting,
		}

		if err := s.ArticleRepo.WithTx(tx).Create(article); err != nil {
			return err
		}

		// 挂载上传过的文件
		fileRepo := s.FileRepo.WithTx(tx)
		files, err := fileRepo.FindOwnedUnattached(req.FileIDs, user.ID)
		if err != nil {
			return err
		}
		for i := range files {
			files[i].ArticleID = &article.ID
			if err := fileRepo.Update(&files[i]); err != nil {
				return err
			}
		}

		if err := s.UserRepo.WithTx(tx).AddPoint(user.ID, util.PointPostArticle); err != nil {
			return err
		}

		article.Category = *category
		article.User = *user
		summary = s.toSummary(article, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *ArticleService) Search(page, size int, keyword, category, tag, sort string) ([]ArticleSummary, int64, error) {
	offset := (page - 1) * size
	articles, total, err := s.ArticleRepo.Search(offset, size, keyword, category, tag, sort)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ArticleSummary, len(articles))
	for i := range articles {
		likes, _ := s.LikeRepo.Count(util.ContentArticle, articles[i].ID)
		summaries[i] = s.toSummary(&articles[i], likes)
		answerCount, _ := s.AnswerRepo.CountByArticle(articles[i].ID)
		summaries[i].AnswerCount = int(answerCount)
	}

	return summaries, total, nil
}

// GetArticleDetail 浏览计数按用户（未登录按IP）十分钟去重
func (s *ArticleService) GetArticleDetail(articleID, requesterID uint, ip string) (*ArticleDetail, error) {
	article, err := s.ArticleRepo.FindByID(articleID)
	if err != nil {
		return nil, err
	}
	if article.Status != model.StatusPosting {
		return nil, util.ErrArticleNotFound
	}

	var visitKey string
	if requesterID > 0 {
		visitKey = fmt.Sprintf("article_v:%d:u:%d", articleID, requesterID)
	} else {
		visitKey = fmt.Sprintf("article_v:%d:ip:%s", articleID, ip)
	}

	ctx := context.Background()
	isNewVisit, _ := s.Redis.SetNX(ctx, visitKey, "1", util.ClickDedupTTL).Result()
	if isNewVisit {
		go func(id uint) {
			if err := s.ArticleRepo.IncrementClicks(id); err != nil {
				logger.Log.Error("Failed to increment article clicks",
					zap.Uint("articleId", id), zap.Error(err))
			}
		}(article.ID)
		article.Clicks++
	}

	likes, _ := s.LikeRepo.Count(util.ContentArticle, article.ID)
	answerCount, _ := s.AnswerRepo.CountByArticle(article.ID)
	commentCount := int64(0)
	if comments, err := s.CommentRepo.FindByArticle(article.ID); err == nil {
		commentCount = int64(len(comments))
	}

	fileInfos := make([]AnswerFileInfo, len(article.Files))
	for i, f := range article.Files {
		fileInfos[i] = AnswerFileInfo{
			ID:               f.ID,
			OriginalFilename: f.OriginalFilename,
			RemotePath:       f.RemotePath,
		}
	}

	summary := s.toSummary(article, likes)
	summary.AnswerCount = int(answerCount)

	return &ArticleDetail{
		ArticleSummary: summary,
		IsLiked:        s.LikeRepo.HasLiked(requesterID, util.ContentArticle, article.ID),
		IsBookmarked:   s.BookmarkRepo.IsBookmarked(requesterID, article.ID),
		Files:          fileInfos,
		CommentCount:   commentCount,
	}, nil
}

func (s *ArticleService) UpdateArticle(articleID, userID uint, req ArticleRequest, role model.UserRole) (*ArticleSummary, error) {
	article, err := s.ArticleRepo.FindByID(articleID)
	if err != nil {
		return nil, err
	}

	if article.UserID != userID && role != model.RoleAdmin {
		return nil, util.ErrPermissionDenied
	}

	category, err := s.CategoryRepo.FindByName(model.CategoryName(req.Category))
	if err != nil {
		return nil, util.ErrArticleNotFound
	}

	tags, err := s.TagRepo.FindOrCreateByNames(req.Tags)
	if err != nil {
		return nil, err
	}

	article.Title = req.Title
	article.Content = req.Content
	article.CategoryID = category.ID
	article.Category = *category

	if err := s.ArticleRepo.Update(article); err != nil {
		return nil, err
	}
	if err := s.ArticleRepo.ReplaceTags(article, tags); err != nil {
		return nil, err
	}
	article.Tags = tags

	likes, _ := s.LikeRepo.Count(util.ContentArticle, article.ID)
	summary := s.toSummary(article, likes)
	return &summary, nil
}

func (s *ArticleService) DeleteArticle(articleID, userID uint, role model.UserRole) error {
	article, err := s.ArticleRepo.FindByID(articleID)
	if err != nil {
		return err
	}

	if article.UserID != userID && role != model.RoleAdmin {
		return util.ErrPermissionDenied
	}

	return s.ArticleRepo.Remove(articleID)
}

// CloseArticle 提问者手动关闭问题，不再接受新回答
func (s *ArticleService) CloseArticle(articleID, userID uint) error {
	article, err := s.ArticleRepo.FindVerifiedByID(articleID)
	if err != nil {
		return err
	}

	if article.UserID != userID {
		return util.ErrPermissionDenied
	}

	article.Closed = true
	return s.ArticleRepo.Update(article)
}

func (s *ArticleService) ToggleLike(userID uint, contentType string, contentID uint) (bool, int64, error) {
	switch contentType {
	case util.ContentArticle, util.ContentAnswer, util.ContentComment:
	default:
		return false, 0, util.ErrPermissionDenied
	}

	liked, err := s.LikeRepo.Toggle(userID, contentType, contentID)
	if err != nil {
		return false, 0, err
	}
	count, err := s.LikeRepo.Count(contentType, contentID)
	return liked, count, err
}

func (s *ArticleService) ToggleBookmark(userID, articleID uint, memo string) (bool, error) {
	if _, err := s.ArticleRepo.FindVerifiedByID(articleID); err != nil {
		return false, err
	}
	return s.BookmarkRepo.Toggle(userID, articleID, memo)
}

func (s *ArticleService) GetCategories() ([]model.Category, error) {
	return s.CategoryRepo.FindAll()
}

func (s *ArticleService) GetTags() ([]model.Tag, error) {
	return s.TagRepo.FindAll()
}

func (s *ArticleService) toSummary(article *model.Article, likes int64) ArticleSummary {
	tags := make([]string, len(article.Tags))
	for i, t := range article.Tags {
		tags[i] = t.Name
	}

	avatar := ""
	if article.User.Avatar != nil {
		avatar = article.User.Avatar.RemotePath
	}

	return ArticleSummary{
		ID:       article.ID,
		Title:    article.Title,
		Content:  article.Content,
		Category: string(article.Category.Name),
		Tags:     tags,
		Author: AnswerAuthor{
			ID:       article.User.ID,
			Nickname: article.User.Nickname,
			Grade:    article.User.Grade,
			Avatar:   avatar,
		},
		Clicks:    article.Clicks,
		Closed:    article.Closed,
		Likes:     likes,
		CreatedAt: article.CreatedAt,
	}
}
