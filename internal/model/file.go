package model

// File 先上传后挂载；ArticleID/AnswerID 是单向的归属外键，
// 一个文件同一时间最多挂在一个回答上
type File struct {
	BaseModel
	UserID           uint   `gorm:"index" json:"userId"`
	ArticleID        *uint  `gorm:"index" json:"articleId"`
	AnswerID         *uint  `gorm:"index" json:"answerId"`
	OriginalFilename string `gorm:"size:255" json:"originalFilename"`
	LocalPath        string `gorm:"size:255" json:"-"`
	RemotePath       string `gorm:"size:255" json:"remotePath"`
	ContentType      string `gorm:"size:100" json:"contentType"`
	Size             int64  `json:"size"`
}

func (File) TableName() string {
	return "files"
}

// AttachToAnswer 设置文件到回答的反向引用
func (f *File) AttachToAnswer(answer *Answer) {
	f.AnswerID = &answer.ID
}
