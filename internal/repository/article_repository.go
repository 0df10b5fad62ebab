package repository

import (
	"errors"
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/util"

	"gorm.io/gorm"
)

type ArticleRepository struct {
	DB *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{DB: db}
}

func (r *ArticleRepository) WithTx(tx *gorm.DB) *ArticleRepository {
	return &ArticleRepository{DB: tx}
}

func (r *ArticleRepository) Create(article *model.Article) error {
	return r.DB.Create(article).Error
}

func (r *ArticleRepository) FindByID(id uint) (*model.Article, error) {
	var article model.Article
	err := r.DB.
		Preload("Category").
		Preload("Tags").
		Preload("User.Avatar").
		Preload("Files").
		First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindVerifiedByID 解析处于 posting 状态的文章，删除或屏蔽的按不存在处理
func (r *ArticleRepository) FindVerifiedByID(id uint) (*model.Article, error) {
	var article model.Article
	err := r.DB.
		Preload("Category").
		Preload("User.Avatar").
		Where("status = ?", model.StatusPosting).
		First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Search 关键字/分类/标签筛选加分页，排序支持 new 和 popular
func (r *ArticleRepository) Search(offset, limit int, keyword, category, tag, sort string) ([]model.Article, int64, error) {
	var articles []model.Article
	var total int64

	query := r.DB.Model(&model.Article{}).Where("articles.status = ?", model.StatusPosting)

	if keyword != "" {
		query = query.Where("articles.title LIKE ? OR articles.content LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	if category != "" {
		query = query.Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.name = ?", category)
	}

	if tag != "" {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	// Count 在独立会话上跑，避免 Distinct 的列选择污染后面的 Find
	if err := query.Session(&gorm.Session{}).Distinct("articles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch sort {
	case "popular":
		query = query.Order("articles.clicks DESC, articles.created_at DESC")
	default:
		query = query.Order("articles.created_at DESC")
	}

	err := query.Distinct().Offset(offset).Limit(limit).
		Preload("Category").
		Preload("Tags").
		Preload("User.Avatar").
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *ArticleRepository) Update(article *model.Article) error {
	return r.DB.Save(article).Error
}

// Remove 软删除，状态置为 removed
func (r *ArticleRepository) Remove(id uint) error {
	return r.DB.Model(&model.Article{}).Where("id = ?", id).Update("status", model.StatusRemoved).Error
}

func (r *ArticleRepository) IncrementClicks(id uint) error {
	return r.DB.Model(&model.Article{}).Where("id = ?", id).Update("clicks", gorm.Expr("clicks + 1")).Error
}

func (r *ArticleRepository) ReplaceTags(article *model.Article, tags []model.Tag) error {
	return r.DB.Model(article).Association("Tags").Replace(tags)
}
