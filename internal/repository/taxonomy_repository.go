package repository

import (
	"qna_community_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: tx}
}

func (r *CategoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByName(name model.CategoryName) (*model.Category, error) {
	var category model.Category
	err := r.DB.Where("name = ?", name).First(&category).Error
	return &category, err
}

type TagRepository struct {
	DB *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

func (r *TagRepository) WithTx(tx *gorm.DB) *TagRepository {
	return &TagRepository{DB: tx}
}

func (r *TagRepository) FindAll() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindOrCreateByNames 文章打标签时按名称批量解析，缺失的自动补建
func (r *TagRepository) FindOrCreateByNames(names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag model.Tag
		err := r.DB.Where("name = ?", name).FirstOrCreate(&tag, model.Tag{Name: name}).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
