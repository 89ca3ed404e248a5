package user

import (
	"errors"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindByID 按主键查找账户。不存在时返回(nil, nil)。
func FindByID(id uuid.UUID) (*User, error) {
	var u User
	err := database.DB.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewStoreUnavailable("user.FindByID", err)
	}
	return &u, nil
}

// FindByEmail 按邮箱查找账户。不存在时返回(nil, nil)。
func FindByEmail(email string) (*User, error) {
	var u User
	err := database.DB.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewStoreUnavailable("user.FindByEmail", err)
	}
	return &u, nil
}

// ActiveCollaborators 返回所有在职协作者账户，按姓名排序。
// 这是统计报表的基准名单：即使当天零产出的协作者也要出现在报表里。
func ActiveCollaborators() ([]User, error) {
	var users []User
	err := database.DB.
		Where("active = ? AND type = ?", true, TypeCollaborator).
		Order("name asc").
		Find(&users).Error
	if err != nil {
		return nil, apperror.NewStoreUnavailable("user.ActiveCollaborators", err)
	}
	return users, nil
}

// ListAll 返回全部账户，按姓名排序，供管理端用户列表使用。
func ListAll() ([]User, error) {
	var users []User
	if err := database.DB.Order("name asc").Find(&users).Error; err != nil {
		return nil, apperror.NewStoreUnavailable("user.ListAll", err)
	}
	return users, nil
}
