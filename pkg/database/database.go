package database

import (
	"fmt"
	"log"
	"qna_community_backend/internal/config"
	"qna_community_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 建表并补齐字典数据，测试库也走同一套
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Avatar{},
		&model.Category{},
		&model.Tag{},
		&model.Article{},
		&model.Answer{},
		&model.Comment{},
		&model.File{},
		&model.Like{},
		&model.Bookmark{},
	)
	if err != nil {
		return err
	}

	// 默认分类
	var catCount int64
	db.Model(&model.Category{}).Count(&catCount)
	if catCount == 0 {
		defaultCategories := []model.CategoryName{
			model.CategoryQnA,
			model.CategoryInfo,
			model.CategoryFree,
		}
		for _, name := range defaultCategories {
			db.Create(&model.Category{Name: name})
		}
	}

	// 默认标签
	var tagCount int64
	db.Model(&model.Tag{}).Count(&tagCount)
	if tagCount == 0 {
		defaultTags := []string{"go", "java", "javascript", "database", "network", "career"}
		for _, name := range defaultTags {
			db.Create(&model.Tag{Name: name})
		}
	}

	return nil
}
