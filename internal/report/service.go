package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Gabrielsb1/destalhe/internal/goal"
	"github.com/Gabrielsb1/destalhe/internal/protocol"
	"github.com/Gabrielsb1/destalhe/internal/user"
	"github.com/Gabrielsb1/destalhe/pkg/dateutil"
)

// cal 是报表计算使用的日历，由setup在启动时注入。
var cal *dateutil.Calendar

func init() {
	cal, _ = dateutil.NewCalendar("")
}

// SetCalendar 注入统一的日历时区。
func SetCalendar(c *dateutil.Calendar) {
	cal = c
}

// percentage 计算 count/goal*100，四舍五入取整。
// goal在上游已保证为正，这里再兜底一次防止除零。
func percentage(count int64, goalQty int) int {
	if goalQty <= 0 {
		goalQty = goal.DefaultQuantity
	}
	return int(math.Round(float64(count) / float64(goalQty) * 100))
}

// BuildDashboard 为参考时刻所在的日历日计算完整的管理端看板。
//
// 原实现有两套彼此漂移的聚合逻辑（一套在内存列表上过滤，
// 一套每个指标单独查库）。这里统一为：分状态全量计数一次查询，
// 日/周/月三个窗口复用同一个窗口化计数例程。
//
// 各个只读子指标相互独立，单个失败时记为0并打日志，不中断整体计算；
// 只有协作者名单拿不到时才整体失败，因为没有名单就没有报表主体。
func BuildDashboard(ref time.Time) (*DashboardReport, error) {
	collaborators, err := user.ActiveCollaborators()
	if err != nil {
		return nil, err
	}

	goalQty, err := goal.ResolveForTime(ref)
	if err != nil {
		fmt.Printf("报表警告: 目标查询失败，使用默认值%d: %v\n", goal.DefaultQuantity, err)
		goalQty = goal.DefaultQuantity
	}

	dayWindow := cal.DayWindow(ref)
	ownerCounts, err := protocol.FinalizedCountsByOwner(dayWindow)
	if err != nil {
		fmt.Printf("报表警告: 当日分协作者计数失败，记为0: %v\n", err)
		ownerCounts = nil
	}

	// 以在职协作者名单为基准补全零产出，再按产出降序稳定排序
	progress := make([]CollaboratorProgress, 0, len(collaborators))
	var finalizedToday int64
	for _, collab := range collaborators {
		count := ownerCounts[collab.ID]
		finalizedToday += count
		progress = append(progress, CollaboratorProgress{
			ID:          collab.ID,
			Name:        collab.Name,
			Count:       count,
			Percentage:  percentage(count, goalQty),
			GoalReached: count >= int64(goalQty),
		})
	}
	sort.SliceStable(progress, func(i, j int) bool {
		return progress[i].Count > progress[j].Count
	})

	statusCounts, err := protocol.CountByStatus()
	if err != nil {
		fmt.Printf("报表警告: 分状态全量计数失败，记为0: %v\n", err)
		statusCounts = nil
	}
	totals := StatusTotals{
		Pending:      statusCounts[protocol.StatusPending],
		InProgress:   statusCounts[protocol.StatusInProgress],
		Cancelled:    statusCounts[protocol.StatusCancelled],
		DataDeleted:  statusCounts[protocol.StatusDataDeleted],
		Coordination: statusCounts[protocol.StatusCoordination],
	}
	for _, count := range statusCounts {
		totals.Total += count
	}

	finalizedThisWeek := countFinalizedInWindow("本周", cal.WeekWindow(ref))
	finalizedThisMonth := countFinalizedInWindow("本月", cal.MonthWindow(ref))

	return &DashboardReport{
		Date:                cal.DayKey(ref),
		Goal:                goalQty,
		GeneratedAt:         time.Now(),
		Totals:              totals,
		FinalizedToday:      finalizedToday,
		FinalizedThisWeek:   finalizedThisWeek,
		FinalizedThisMonth:  finalizedThisMonth,
		ActiveCollaborators: len(collaborators),
		Collaborators:       progress,
	}, nil
}

// countFinalizedInWindow 是周/月指标共用的窗口化计数，失败时降级为0。
func countFinalizedInWindow(label string, w dateutil.Window) int64 {
	count, err := protocol.CountFinalizedInWindow(w)
	if err != nil {
		fmt.Printf("报表警告: %s完结计数失败，记为0: %v\n", label, err)
		return 0
	}
	return count
}

// BuildProductivitySeries 返回截至参考日（含）最近days天的逐日完结数和目标，
// 按日期升序。趋势图一次请求拿到整段序列，不必逐日调用看板接口。
// 逐日计数是这个序列的主体，查询失败时整体报错；目标查询失败时
// 与看板一致，回退到默认值。
func BuildProductivitySeries(ref time.Time, days int) ([]DailyProductivity, error) {
	if days < 1 {
		days = 1
	}

	series := make([]DailyProductivity, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		day := ref.AddDate(0, 0, -offset)

		count, err := protocol.CountFinalizedInWindow(cal.DayWindow(day))
		if err != nil {
			return nil, err
		}

		goalQty, err := goal.ResolveForTime(day)
		if err != nil {
			fmt.Printf("报表警告: 目标查询失败，使用默认值%d: %v\n", goal.DefaultQuantity, err)
			goalQty = goal.DefaultQuantity
		}

		series = append(series, DailyProductivity{
			Date:  cal.DayKey(day),
			Count: count,
			Goal:  goalQty,
		})
	}
	return series, nil
}

// MyProgressFor 计算一个协作者在参考日的个人进度。
func MyProgressFor(actor *user.User, ref time.Time) (*MyProgress, error) {
	count, err := protocol.CountFinalizedByOwnerInWindow(actor.ID, cal.DayWindow(ref))
	if err != nil {
		return nil, err
	}

	goalQty, err := goal.ResolveForTime(ref)
	if err != nil {
		fmt.Printf("报表警告: 目标查询失败，使用默认值%d: %v\n", goal.DefaultQuantity, err)
		goalQty = goal.DefaultQuantity
	}

	return &MyProgress{
		Date:        cal.DayKey(ref),
		Count:       count,
		Goal:        goalQty,
		Percentage:  percentage(count, goalQty),
		GoalReached: count >= int64(goalQty),
	}, nil
}

// GetDashboard 返回看板数据，优先走Redis缓存。
// 缓存层不可用或出错时直接落到实时计算，缓存错误从不向上传播。
func GetDashboard(ref time.Time) (*DashboardReport, error) {
	dayKey := cal.DayKey(ref)

	if cached, err := GetDashboardCache(dayKey); err == nil && cached != nil {
		return cached, nil
	}

	dashboard, err := BuildDashboard(ref)
	if err != nil {
		return nil, err
	}

	if err := SetDashboardCache(dashboard, cacheTTL); err != nil {
		fmt.Printf("报表警告: 看板缓存写入失败: %v\n", err)
	}
	return dashboard, nil
}
