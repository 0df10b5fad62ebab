package service

import (
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/repository"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	BookmarkRepo *repository.BookmarkRepository
	ArticleRepo  *repository.ArticleRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	bookmarkRepo *repository.BookmarkRepository,
	articleRepo *repository.ArticleRepository,
) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		BookmarkRepo: bookmarkRepo,
		ArticleRepo:  articleRepo,
	}
}

type ProfileUpdateRequest struct {
	Nickname    string `json:"nickname" binding:"max=50"`
	Information string `json:"information" binding:"max=255"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindVerifiedByID(userID)
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.UserRepo.FindVerifiedByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	user.Information = req.Information

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAvatar(userID uint, originalFilename, remotePath string) (*model.Avatar, error) {
	if _, err := s.UserRepo.FindVerifiedByID(userID); err != nil {
		return nil, err
	}

	avatar := &model.Avatar{
		OriginalFilename: originalFilename,
		RemotePath:       remotePath,
	}
	if err := s.UserRepo.SetAvatar(userID, avatar); err != nil {
		return nil, err
	}
	return avatar, nil
}

// GetBookmarks 返回收藏的文章摘要（跳过已删除的）
func (s *UserService) GetBookmarks(userID uint, page, size int) ([]model.Article, int64, error) {
	offset := (page - 1) * size
	bookmarks, total, err := s.BookmarkRepo.FindByUser(userID, offset, size)
	if err != nil {
		return nil, 0, err
	}

	articles := make([]model.Article, 0, len(bookmarks))
	for _, b := range bookmarks {
		article, err := s.ArticleRepo.FindVerifiedByID(b.ArticleID)
		if err != nil {
			continue
		}
		articles = append(articles, *article)
	}

	return articles, total, nil
}
