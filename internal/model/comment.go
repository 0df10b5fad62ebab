package model

type Comment struct {
	BaseModel
	Content   string `gorm:"size:1000;not null" json:"content"`
	ArticleID uint   `gorm:"index;not null" json:"articleId"`
	UserID    uint   `gorm:"index;not null" json:"userId"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
}

func (Comment) TableName() string {
	return "comments"
}
