package model

type Answer struct {
	BaseModel
	Content   string `gorm:"type:text;not null" json:"content"`
	ArticleID uint   `gorm:"index;not null" json:"articleId"`
	UserID    uint   `gorm:"index;not null" json:"userId"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	Picked    bool   `gorm:"default:false" json:"picked"`
	Files     []File `gorm:"foreignKey:AnswerID" json:"files,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
