package repository

import (
	"errors"
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/util"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) WithTx(tx *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: tx}
}

// Save 持久化回答，主键由数据库生成
func (r *AnswerRepository) Save(answer *model.Answer) error {
	return r.DB.Save(answer).Error
}

func (r *AnswerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.
		Preload("User.Avatar").
		Preload("Files").
		First(&answer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) FindByArticle(articleID uint, offset, limit int) ([]model.Answer, int64, error) {
	var answers []model.Answer
	var total int64

	query := r.DB.Model(&model.Answer{}).Where("article_id = ?", articleID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 被采纳的回答置顶
	err := query.Order("picked DESC, created_at ASC").
		Offset(offset).Limit(limit).
		Preload("User.Avatar").
		Preload("Files").
		Find(&answers).Error
	if err != nil {
		return nil, 0, err
	}

	return answers, total, nil
}

func (r *AnswerRepository) CountByArticle(articleID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.Answer{}).Where("article_id = ?", articleID).Count(&total).Error
	return total, err
}

func (r *AnswerRepository) Update(answer *model.Answer) error {
	return r.DB.Save(answer).Error
}

func (r *AnswerRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		// 解除文件挂载再删除回答
		if err := tx.Model(&model.File{}).Where("answer_id = ?", id).Update("answer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("content_type = ? AND content_id = ?", util.ContentAnswer, id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Answer{}, id).Error
	})
}
