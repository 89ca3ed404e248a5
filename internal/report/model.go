package report

import (
	"time"

	"github.com/google/uuid"
)

// CollaboratorProgress 是单个协作者在参考日的产出情况。
// 零产出的协作者同样出现在列表里：没有活动本身就是需要上报的数据点。
type CollaboratorProgress struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Count int64     `json:"count"`

	// Percentage 是 count/goal*100 四舍五入后的整数
	Percentage  int  `json:"percentage"`
	GoalReached bool `json:"goalReached"`
}

// StatusTotals 是全库不限日期的分状态计数。
type StatusTotals struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	InProgress   int64 `json:"inProgress"`
	Cancelled    int64 `json:"cancelled"`
	DataDeleted  int64 `json:"dataDeleted"`
	Coordination int64 `json:"coordination"`
}

// DashboardReport 是管理端看板的完整聚合结果。
type DashboardReport struct {
	// Date 是参考日的日期键（统一日历时区）
	Date        string    `json:"date"`
	Goal        int       `json:"goal"`
	GeneratedAt time.Time `json:"generatedAt"`

	Totals             StatusTotals `json:"totals"`
	FinalizedToday     int64        `json:"finalizedToday"`
	FinalizedThisWeek  int64        `json:"finalizedThisWeek"`
	FinalizedThisMonth int64        `json:"finalizedThisMonth"`

	ActiveCollaborators int `json:"activeCollaborators"`

	// Collaborators 按产出数降序排列，数量相同保持姓名序
	Collaborators []CollaboratorProgress `json:"collaborators"`
}

// DailyProductivity 是趋势图序列里的单日数据点。
type DailyProductivity struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
	Goal  int    `json:"goal"`
}

// MyProgress 是协作者自己的当日进度。
type MyProgress struct {
	Date        string `json:"date"`
	Count       int64  `json:"count"`
	Goal        int    `json:"goal"`
	Percentage  int    `json:"percentage"`
	GoalReached bool   `json:"goalReached"`
}
