package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type Grade string

const (
	GradeBronze Grade = "bronze"
	GradeSilver Grade = "silver"
	GradeGold   Grade = "gold"
)

// 积分升级阈值
const (
	SilverPoint = 100
	GoldPoint   = 500
)

// swagger:model User
type User struct {
	BaseModel
	Email       string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Nickname    string    `gorm:"size:50;not null" json:"nickname"`
	Role        UserRole  `gorm:"size:20;default:'user'" json:"role"`
	Grade       Grade     `gorm:"size:20;default:'bronze'" json:"grade"`
	Point       int       `gorm:"default:0" json:"point"`
	Information string    `gorm:"size:255" json:"information"`
	Disabled    bool      `gorm:"default:false" json:"-"`
	Avatar      *Avatar   `gorm:"foreignKey:UserID" json:"avatar"`
	LastLogin   time.Time `json:"lastLogin"`
	LastSeen    time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// GradeFor 根据积分计算等级
func GradeFor(point int) Grade {
	switch {
	case point >= GoldPoint:
		return GradeGold
	case point >= SilverPoint:
		return GradeSilver
	default:
		return GradeBronze
	}
}

type Avatar struct {
	BaseModel
	UserID           uint   `gorm:"index" json:"-"`
	OriginalFilename string `gorm:"size:255" json:"originalFilename"`
	RemotePath       string `gorm:"size:255" json:"remotePath"`
}

func (Avatar) TableName() string {
	return "avatars"
}
