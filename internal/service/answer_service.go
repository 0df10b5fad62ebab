package service

import (
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/repository"
	"qna_community_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type AnswerService struct {
	DB             *gorm.DB
	UserRepo       *repository.UserRepository
	ArticleRepo    *repository.ArticleRepository
	AnswerRepo     *repository.AnswerRepository
	FileRepo       *repository.FileRepository
	LikeRepo       *repository.LikeRepository
	CommentService *CommentService
}

func NewAnswerService(
	userRepo *repository.UserRepository,
	articleRepo *repository.ArticleRepository,
	answerRepo *repository.AnswerRepository,
	fileRepo *repository.FileRepository,
	likeRepo *repository.LikeRepository,
	commentService *CommentService,
	db *gorm.DB,
) *AnswerService {
	return &AnswerService{
		DB:             db,
		UserRepo:       userRepo,
		ArticleRepo:    articleRepo,
		AnswerRepo:     answerRepo,
		FileRepo:       fileRepo,
		LikeRepo:       likeRepo,
		CommentService: commentService,
	}
}

type AnswerRequest struct {
	Content string `json:"content" binding:"required"`
	FileIDs []uint `json:"fileIds"`
}

type AnswerAuthor struct {
	ID       uint        `json:"id"`
	Nickname string      `json:"nickname"`
	Grade    model.Grade `json:"grade"`
	Avatar   string      `json:"avatar,omitempty"`
}

type AnswerFileInfo struct {
	ID               uint   `json:"id"`
	OriginalFilename string `json:"originalFilename"`
	RemotePath       string `json:"remotePath"`
}

type AnswerResponse struct {
	ID        uint             `json:"id"`
	ArticleID uint             `json:"articleId"`
	Content   string           `json:"content"`
	Author    AnswerAuthor     `json:"author"`
	Files     []AnswerFileInfo `json:"files"`
	Picked    bool             `json:"picked"`
	Likes     int64            `json:"likes"`
	IsLiked   bool             `json:"isLiked"`
	CreatedAt time.Time        `json:"createdAt"`
}

// PostAnswer 在文章下新增回答。
// 整个流程跑在一个事务里：校验读、文件挂载和落库要么全部生效要么全部回滚。
// 写入仅限新的回答行和文件的反向引用，用户和文章本身不做任何改动。
// 并发投稿同一文章时不做互斥，先后通过门禁的两次调用都会成功。
func (s *AnswerService) PostAnswer(articleID, userID uint, draft *model.Answer, fileIDs []uint) (*AnswerResponse, error) {
	var resp *AnswerResponse

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := s.UserRepo.WithTx(tx).FindVerifiedByID(userID)
		if err != nil {
			return err
		}

		article, err := s.ArticleRepo.WithTx(tx).FindVerifiedByID(articleID)
		if err != nil {
			return err
		}

		// 三个条件合并判断，对外只暴露一个拒绝原因
		if !(article.IsQuestion() && !article.Closed && s.CommentService.IsEditableStatus(article)) {
			return util.ErrUnableToAnswer
		}

		files, err := s.FileRepo.WithTx(tx).FindOwnedUnattached(fileIDs, user.ID)
		if err != nil {
			return err
		}

		draft.UserID = user.ID
		draft.ArticleID = article.ID

		if err := s.AnswerRepo.WithTx(tx).Save(draft); err != nil {
			return err
		}

		if err := s.attachFilesToAnswer(tx, draft, files); err != nil {
			return err
		}

		resp = s.toResponse(draft, user, files, 0, false)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *AnswerService) attachFilesToAnswer(tx *gorm.DB, answer *model.Answer, files []model.File) error {
	repo := s.FileRepo.WithTx(tx)
	for i := range files {
		files[i].AttachToAnswer(answer)
		if err := repo.Update(&files[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *AnswerService) GetAnswers(articleID uint, page, size int, requesterID uint) ([]AnswerResponse, int64, error) {
	if _, err := s.ArticleRepo.FindVerifiedByID(articleID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size
	answers, total, err := s.AnswerRepo.FindByArticle(articleID, offset, size)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AnswerResponse, len(answers))
	for i := range answers {
		likes, _ := s.LikeRepo.Count(util.ContentAnswer, answers[i].ID)
		liked := s.LikeRepo.HasLiked(requesterID, util.ContentAnswer, answers[i].ID)
		responses[i] = *s.toResponse(&answers[i], &answers[i].User, answers[i].Files, likes, liked)
	}

	return responses, total, nil
}

// UpdateAnswer 作者本人在文章仍可编辑时修改自己的回答
func (s *AnswerService) UpdateAnswer(answerID, userID uint, content string) (*AnswerResponse, error) {
	answer, err := s.AnswerRepo.FindByID(answerID)
	if err != nil {
		return nil, err
	}

	if answer.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	article, err := s.ArticleRepo.FindVerifiedByID(answer.ArticleID)
	if err != nil {
		return nil, err
	}
	if !s.CommentService.IsEditableStatus(article) {
		return nil, util.ErrNotEditable
	}

	answer.Content = content
	if err := s.AnswerRepo.Update(answer); err != nil {
		return nil, err
	}

	likes, _ := s.LikeRepo.Count(util.ContentAnswer, answer.ID)
	return s.toResponse(answer, &answer.User, answer.Files, likes, false), nil
}

func (s *AnswerService) DeleteAnswer(answerID, userID uint, role model.UserRole) error {
	answer, err := s.AnswerRepo.FindByID(answerID)
	if err != nil {
		return err
	}

	if answer.UserID != userID && role != model.RoleAdmin {
		return util.ErrPermissionDenied
	}

	return s.AnswerRepo.Delete(answerID)
}

// PickAnswer 提问者采纳回答，文章随之关闭，回答者获得积分
func (s *AnswerService) PickAnswer(articleID, answerID, requesterID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		article, err := s.ArticleRepo.WithTx(tx).FindVerifiedByID(articleID)
		if err != nil {
			return err
		}

		if article.UserID != requesterID {
			return util.ErrPermissionDenied
		}
		if !article.IsQuestion() {
			return util.ErrOnlyQuestionPick
		}
		if article.Closed {
			return util.ErrUnableToAnswer
		}

		answer, err := s.AnswerRepo.WithTx(tx).FindByID(answerID)
		if err != nil {
			return err
		}
		if answer.ArticleID != article.ID {
			return util.ErrAnswerNotFound
		}

		answer.Picked = true
		if err := s.AnswerRepo.WithTx(tx).Update(answer); err != nil {
			return err
		}

		article.Closed = true
		if err := s.ArticleRepo.WithTx(tx).Update(article); err != nil {
			return err
		}

		return s.UserRepo.WithTx(tx).AddPoint(answer.UserID, util.PointPicked)
	})
}

func (s *AnswerService) toResponse(answer *model.Answer, user *model.User, files []model.File, likes int64, liked bool) *AnswerResponse {
	avatar := ""
	if user.Avatar != nil {
		avatar = user.Avatar.RemotePath
	}

	fileInfos := make([]AnswerFileInfo, len(files))
	for i, f := range files {
		fileInfos[i] = AnswerFileInfo{
			ID:               f.ID,
			OriginalFilename: f.OriginalFilename,
			RemotePath:       f.RemotePath,
		}
	}

	return &AnswerResponse{
		ID:        answer.ID,
		ArticleID: answer.ArticleID,
		Content:   answer.Content,
		Author: AnswerAuthor{
			ID:       user.ID,
			Nickname: user.Nickname,
			Grade:    user.Grade,
			Avatar:   avatar,
		},
		Files:     fileInfos,
		Picked:    answer.Picked,
		Likes:     likes,
		IsLiked:   liked,
		CreatedAt: answer.CreatedAt,
	}
}
