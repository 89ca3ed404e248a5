package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 账户类型。只有active=true且类型为collaborator的账户
// 才能认领协议记录并出现在统计报表中。
const (
	TypeAdmin        = "admin"
	TypeCollaborator = "collaborator"
)

// User 定义了账户在数据库中的持久化模型。
type User struct {
	// ID 是账户的主键
	ID uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`

	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// PasswordHash 存储bcrypt散列，永远不进入JSON响应
	PasswordHash string `gorm:"not null" json:"-"`

	// Type 是账户类型: admin 或 collaborator
	Type string `gorm:"not null;default:collaborator" json:"type"`

	// Active 为false的账户不能登录，也不参与统计。
	// 不挂default标签：GORM会把带default的零值字段从INSERT中剔除，
	// 导致false被数据库默认值覆盖写成true。缺省值由服务层的Create负责。
	Active bool `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate 在插入前补齐主键。
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsCollaborator 判断账户是否是可认领协议记录的在职协作者。
func (u *User) IsCollaborator() bool {
	return u.Active && u.Type == TypeCollaborator
}
