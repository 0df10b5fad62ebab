package repository

import (
	"errors"
	"qna_community_backend/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	DB *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{DB: db}
}

// Toggle 点赞/取消点赞，返回切换后的状态
func (r *LikeRepository) Toggle(userID uint, contentType string, contentID uint) (bool, error) {
	var like model.Like
	err := r.DB.Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		First(&like).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		like = model.Like{
			UserID:      userID,
			ContentType: contentType,
			ContentID:   contentID,
		}
		if err := r.DB.Create(&like).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if err := r.DB.Delete(&like).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (r *LikeRepository) Count(contentType string, contentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Like{}).
		Where("content_type = ? AND content_id = ?", contentType, contentID).
		Count(&count).Error
	return count, err
}

func (r *LikeRepository) HasLiked(userID uint, contentType string, contentID uint) bool {
	if userID == 0 {
		return false
	}
	var count int64
	r.DB.Model(&model.Like{}).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		Count(&count)
	return count > 0
}
