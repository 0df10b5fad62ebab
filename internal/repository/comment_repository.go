package repository

import (
	"errors"
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/util"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Preload("User.Avatar").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) FindByArticle(articleID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Where("article_id = ?", articleID).
		Order("created_at ASC").
		Preload("User.Avatar").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_type = ? AND content_id = ?", util.ContentComment, id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Comment{}, id).Error
	})
}
