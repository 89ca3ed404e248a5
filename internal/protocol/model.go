package protocol

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 协议记录的状态机:
//
//	pending -> in_progress -> {cancelled, data_deleted, coordination}
//
// 三个终态统称"已完结"。终态没有出边，任何再次变更都会被拒绝。
const (
	StatusPending      = "pending"
	StatusInProgress   = "in_progress"
	StatusCancelled    = "cancelled"
	StatusDataDeleted  = "data_deleted"
	StatusCoordination = "coordination"
)

// FinalizedStatuses 是全部终态的集合，供状态判断和统计查询使用。
var FinalizedStatuses = []string{StatusCancelled, StatusDataDeleted, StatusCoordination}

// IsFinalizedStatus 判断一个状态是否属于终态集合。
func IsFinalizedStatus(status string) bool {
	for _, s := range FinalizedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Protocol 定义了协议记录在数据库中的持久化模型。
// 记录由维护工具批量创建为pending，此后只通过Claim/Finalize两个转换变更。
type Protocol struct {
	// ID 是记录的主键
	ID uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`

	// Number 是面向人的协议序号，纯数字字符串，全库唯一
	Number string `gorm:"uniqueIndex;not null" json:"number"`

	// Status 是记录的当前状态
	Status string `gorm:"not null;default:pending;index" json:"status"`

	// OwnerID 指向当前持有（或完结了）这条记录的协作者。
	// pending状态下必须为空；完结后保留为完结人。
	OwnerID *uuid.UUID `gorm:"type:uuid;index" json:"ownerId"`

	// Notes 是协作者填写的备注，认领时由系统写入初始内容
	Notes string `json:"notes"`

	// CreatedAt 在创建后不再变化；UpdatedAt 在每次状态转换时刷新，
	// 统计报表按UpdatedAt判断一条记录完结于哪一天
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

// BeforeCreate 在插入前补齐主键。
func (p *Protocol) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsFinalized 判断记录是否处于终态。
func (p *Protocol) IsFinalized() bool {
	return IsFinalizedStatus(p.Status)
}
