package repository

import (
	"errors"
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// WithTx 返回绑定到事务的副本
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Avatar").First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Avatar").Where("email = ?", email).First(&user).Error
	return &user, err
}

// FindVerifiedByID 解析可用用户，禁用或不存在都按未通过校验处理
func (r *UserRepository) FindVerifiedByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Avatar").Where("disabled = ?", false).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("last_seen", time.Now()).Error
}

// AddPoint 加积分并按阈值刷新等级
func (r *UserRepository) AddPoint(userID uint, delta int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.Point += delta
		user.Grade = model.GradeFor(user.Point)
		return tx.Save(&user).Error
	})
}

func (r *UserRepository) SetAvatar(userID uint, avatar *model.Avatar) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Avatar{}).Error; err != nil {
			return err
		}
		avatar.UserID = userID
		return tx.Create(avatar).Error
	})
}
