package goal

import (
	"time"
)

// DefaultQuantity 是没有为某天配置目标时使用的默认值。
const DefaultQuantity = 48

// Goal 定义了每日目标在数据库中的持久化模型。
// 每个日历日至多一条记录；没有记录的日期隐含使用默认目标。
type Goal struct {
	ID uint `gorm:"primarykey" json:"id"`

	// Date 是日粒度的日期键，格式YYYY-MM-DD，全表唯一。
	// 所有写入前都经过dateutil归一化，避免UTC/本地日界错位。
	Date string `gorm:"uniqueIndex;not null" json:"date"`

	// Quantity 是当天期望完结的协议记录数，必须为正
	Quantity int `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
