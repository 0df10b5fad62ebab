package service

import (
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/repository"
	"qna_community_backend/internal/util"
	"time"
)

type CommentService struct {
	CommentRepo *repository.CommentRepository
	ArticleRepo *repository.ArticleRepository
	UserRepo    *repository.UserRepository
	LikeRepo    *repository.LikeRepository
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	articleRepo *repository.ArticleRepository,
	userRepo *repository.UserRepository,
	likeRepo *repository.LikeRepository,
) *CommentService {
	return &CommentService{
		CommentRepo: commentRepo,
		ArticleRepo: articleRepo,
		UserRepo:    userRepo,
		LikeRepo:    likeRepo,
	}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type CommentResponse struct {
	ID        uint         `json:"id"`
	ArticleID uint         `json:"articleId"`
	Content   string       `json:"content"`
	Author    AnswerAuthor `json:"author"`
	Likes     int64        `json:"likes"`
	IsLiked   bool         `json:"isLiked"`
	CreatedAt time.Time    `json:"createdAt"`
}

// IsEditableStatus 判断文章是否仍接受追加内容：
// 发布状态正常且未超出追加窗口。回答工作流把它当作不透明谓词使用。
func (s *CommentService) IsEditableStatus(article *model.Article) bool {
	if article.Status != model.StatusPosting {
		return false
	}
	return time.Since(article.CreatedAt) <= util.EditableWindow
}

func (s *CommentService) CreateComment(articleID, userID uint, req CommentRequest) (*CommentResponse, error) {
	user, err := s.UserRepo.FindVerifiedByID(userID)
	if err != nil {
		return nil, err
	}

	article, err := s.ArticleRepo.FindVerifiedByID(articleID)
	if err != nil {
		return nil, err
	}

	if !s.IsEditableStatus(article) {
		return nil, util.ErrNotEditable
	}

	comment := &model.Comment{
		ArticleID: article.ID,
		UserID:    user.ID,
		Content:   req.Content,
	}

	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}

	return s.toResponse(comment, user, 0, false), nil
}

func (s *CommentService) GetComments(articleID uint, requesterID uint) ([]CommentResponse, error) {
	if _, err := s.ArticleRepo.FindVerifiedByID(articleID); err != nil {
		return nil, err
	}

	comments, err := s.CommentRepo.FindByArticle(articleID)
	if err != nil {
		return nil, err
	}

	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		likes, _ := s.LikeRepo.Count(util.ContentComment, comments[i].ID)
		liked := s.LikeRepo.HasLiked(requesterID, util.ContentComment, comments[i].ID)
		responses[i] = *s.toResponse(&comments[i], &comments[i].User, likes, liked)
	}

	return responses, nil
}

func (s *CommentService) DeleteComment(commentID, userID uint, role model.UserRole) error {
	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID && role != model.RoleAdmin {
		return util.ErrPermissionDenied
	}

	return s.CommentRepo.Delete(commentID)
}

func (s *CommentService) toResponse(comment *model.Comment, user *model.User, likes int64, liked bool) *CommentResponse {
	avatar := ""
	if user.Avatar != nil {
		avatar = user.Avatar.RemotePath
	}

	return &CommentResponse{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		Content:   comment.Content,
		Author: AnswerAuthor{
			ID:       user.ID,
			Nickname: user.Nickname,
			Grade:    user.Grade,
			Avatar:   avatar,
		},
		Likes:     likes,
		IsLiked:   liked,
		CreatedAt: comment.CreatedAt,
	}
}
