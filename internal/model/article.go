package model

type CategoryName string

const (
	CategoryQnA  CategoryName = "qna"
	CategoryInfo CategoryName = "info"
	CategoryFree CategoryName = "free"
)

type ArticleStatus string

const (
	StatusPosting ArticleStatus = "posting"
	StatusRemoved ArticleStatus = "removed"
	StatusBlocked ArticleStatus = "blocked"
)

type Category struct {
	BaseModel
	Name CategoryName `gorm:"size:20;uniqueIndex;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

type Tag struct {
	BaseModel
	Name string `gorm:"size:30;uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}

type Article struct {
	BaseModel
	Title      string        `gorm:"size:255;not null" json:"title"`
	Content    string        `gorm:"type:text;not null" json:"content"`
	UserID     uint          `gorm:"index;not null" json:"userId"`
	User       User          `gorm:"foreignKey:UserID" json:"user"`
	CategoryID uint          `gorm:"index;not null" json:"categoryId"`
	Category   Category      `gorm:"foreignKey:CategoryID" json:"category"`
	Tags       []Tag         `gorm:"many2many:article_tags" json:"tags"`
	Clicks     int           `gorm:"default:0" json:"clicks"`
	Closed     bool          `gorm:"default:false" json:"closed"`
	Status     ArticleStatus `gorm:"size:20;default:'posting'" json:"status"`
	Answers    []Answer      `gorm:"foreignKey:ArticleID" json:"answers,omitempty"`
	Comments   []Comment     `gorm:"foreignKey:ArticleID" json:"comments,omitempty"`
	Files      []File        `gorm:"foreignKey:ArticleID" json:"files,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}

// IsQuestion 分类为 qna 的文章才可以被回答，Category 需预加载
func (a *Article) IsQuestion() bool {
	return a.Category.Name == CategoryQnA
}
