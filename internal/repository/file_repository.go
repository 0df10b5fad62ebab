package repository

import (
	"qna_community_backend/internal/model"

	"gorm.io/gorm"
)

type FileRepository struct {
	DB *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) WithTx(tx *gorm.DB) *FileRepository {
	return &FileRepository{DB: tx}
}

func (r *FileRepository) Create(file *model.File) error {
	return r.DB.Create(file).Error
}

// FindOwnedUnattached 只返回属于该用户且尚未挂载到回答的文件
func (r *FileRepository) FindOwnedUnattached(ids []uint, userID uint) ([]model.File, error) {
	if len(ids) == 0 {
		return []model.File{}, nil
	}
	var files []model.File
	err := r.DB.Where("id IN ? AND user_id = ? AND answer_id IS NULL", ids, userID).Find(&files).Error
	return files, err
}

func (r *FileRepository) FindByAnswer(answerID uint) ([]model.File, error) {
	var files []model.File
	err := r.DB.Where("answer_id = ?", answerID).Find(&files).Error
	return files, err
}

func (r *FileRepository) Update(file *model.File) error {
	return r.DB.Save(file).Error
}
