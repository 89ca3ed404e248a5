package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/Gabrielsb1/destalhe/pkg/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionTTL 是签发的会话令牌有效期。
const SessionTTL = 12 * time.Hour

// ErrInvalidCredentials 表示邮箱或密码不正确，或账户已被停用。
// 两种情况对外用同一个错误，避免泄露账户是否存在。
var ErrInvalidCredentials = errors.New("邮箱或密码不正确")

// Authenticate 校验登录凭据，成功时返回账户和签好名的会话令牌。
func Authenticate(email, password string) (*User, string, error) {
	u, err := FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if u == nil || !u.Active {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	sessionToken, err := token.SignSession(u.ID.String(), SessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("无法签发会话令牌: %w", err)
	}
	return u, sessionToken, nil
}

// CreateInput 是管理员创建账户时的输入。
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Type     string
	Active   *bool
}

// Create 创建一个新账户。类型缺省为collaborator，active缺省为true。
func Create(input CreateInput) (*User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &apperror.ValidationError{Field: "name", Reason: "姓名不能为空"}
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, &apperror.ValidationError{Field: "email", Reason: "邮箱不能为空"}
	}
	if len(input.Password) < 6 {
		return nil, &apperror.ValidationError{Field: "password", Reason: "密码至少6位"}
	}

	accountType := input.Type
	if accountType == "" {
		accountType = TypeCollaborator
	}
	if accountType != TypeAdmin && accountType != TypeCollaborator {
		return nil, &apperror.ValidationError{Field: "type", Reason: "账户类型必须是admin或collaborator"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("无法生成密码散列: %w", err)
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	u := User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Type:         accountType,
		Active:       active,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperror.ValidationError{Field: "email", Reason: "该邮箱已被注册"}
		}
		return nil, apperror.NewStoreUnavailable("user.Create", err)
	}
	return &u, nil
}

// UpdateInput 是管理员更新账户时的输入，nil字段表示不变更。
type UpdateInput struct {
	Name     *string
	Type     *string
	Active   *bool
	Password *string
}

// Update 更新一个已有账户。
func Update(id uuid.UUID, input UpdateInput) (*User, error) {
	u, err := FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, gorm.ErrRecordNotFound
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, &apperror.ValidationError{Field: "name", Reason: "姓名不能为空"}
		}
		u.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		if *input.Type != TypeAdmin && *input.Type != TypeCollaborator {
			return nil, &apperror.ValidationError{Field: "type", Reason: "账户类型必须是admin或collaborator"}
		}
		u.Type = *input.Type
	}
	if input.Active != nil {
		u.Active = *input.Active
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return nil, &apperror.ValidationError{Field: "password", Reason: "密码至少6位"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("无法生成密码散列: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := database.DB.Save(u).Error; err != nil {
		return nil, apperror.NewStoreUnavailable("user.Update", err)
	}
	return u, nil
}
