package model

import "time"

// Like 点赞记录，contentType 取 article/answer/comment
type Like struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_content" json:"userId"`
	ContentType string    `gorm:"uniqueIndex:idx_user_content;size:20" json:"contentType"`
	ContentID   uint      `gorm:"uniqueIndex:idx_user_content" json:"contentId"`
}

func (Like) TableName() string {
	return "likes"
}

type Bookmark struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_article" json:"userId"`
	ArticleID uint      `gorm:"uniqueIndex:idx_user_article" json:"articleId"`
	Memo      string    `gorm:"size:255" json:"memo"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
