package repository

import (
	"errors"
	"qna_community_backend/internal/model"

	"gorm.io/gorm"
)

type BookmarkRepository struct {
	DB *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

// Toggle 收藏/取消收藏，收藏时可带备注
func (r *BookmarkRepository) Toggle(userID, articleID uint, memo string) (bool, error) {
	var bookmark model.Bookmark
	err := r.DB.Where("user_id = ? AND article_id = ?", userID, articleID).First(&bookmark).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		bookmark = model.Bookmark{
			UserID:    userID,
			ArticleID: articleID,
			Memo:      memo,
		}
		if err := r.DB.Create(&bookmark).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if err := r.DB.Delete(&bookmark).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (r *BookmarkRepository) IsBookmarked(userID, articleID uint) bool {
	if userID == 0 {
		return false
	}
	var count int64
	r.DB.Model(&model.Bookmark{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count)
	return count > 0
}

func (r *BookmarkRepository) FindByUser(userID uint, offset, limit int) ([]model.Bookmark, int64, error) {
	var bookmarks []model.Bookmark
	var total int64

	query := r.DB.Model(&model.Bookmark{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&bookmarks).Error
	return bookmarks, total, err
}
