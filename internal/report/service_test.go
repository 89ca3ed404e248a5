package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Gabrielsb1/destalhe/internal/goal"
	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/internal/protocol"
	"github.com/Gabrielsb1/destalhe/internal/user"
	"github.com/Gabrielsb1/destalhe/pkg/dateutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 为每个测试准备一个独立的内存数据库，迁移全部相关表，
// 并把报表和目标模块固定到同一个日历时区。
func setupTestDB(t *testing.T) *dateutil.Calendar {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, user.MigrateDB())
	require.NoError(t, protocol.MigrateDB())
	require.NoError(t, goal.MigrateDB())

	cal, err := dateutil.NewCalendar("America/Sao_Paulo")
	require.NoError(t, err)
	SetCalendar(cal)
	goal.SetCalendar(cal)
	return cal
}

func createCollaborator(t *testing.T, name string) *user.User {
	t.Helper()
	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "x",
		Type:         user.TypeCollaborator,
		Active:       true,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return &u
}

// createProtocolAt 直接写入一条指定状态的记录，并把UpdatedAt固定到给定时刻。
func createProtocolAt(t *testing.T, number string, status string, owner *uuid.UUID, at time.Time) {
	t.Helper()
	p := protocol.Protocol{Number: number, Status: status, OwnerID: owner}
	require.NoError(t, database.DB.Create(&p).Error)
	require.NoError(t, database.DB.Model(&p).UpdateColumn("updated_at", at).Error)
}

func TestDashboardScenario(t *testing.T) {
	cal := setupTestDB(t)

	userA := createCollaborator(t, "Alice")
	userB := createCollaborator(t, "Bruna")

	// 停用账户和管理员不进入报表
	inactive := user.User{ID: uuid.New(), Name: "Zoe", Email: "zoe@example.com", PasswordHash: "x", Type: user.TypeCollaborator, Active: false}
	require.NoError(t, database.DB.Create(&inactive).Error)
	admin := user.User{ID: uuid.New(), Name: "Root", Email: "root@example.com", PasswordHash: "x", Type: user.TypeAdmin, Active: true}
	require.NoError(t, database.DB.Create(&admin).Error)

	ref := time.Date(2024, 6, 5, 14, 0, 0, 0, cal.Location()) // 周三
	inDay := time.Date(2024, 6, 5, 10, 0, 0, 0, cal.Location())

	// Alice今天完结50条
	for i := 0; i < 50; i++ {
		createProtocolAt(t, fmt.Sprintf("%d", 1000+i), protocol.StatusCancelled, &userA.ID, inDay)
	}
	// 周内但不是今天的完结：算本周不算今天
	inWeek := time.Date(2024, 6, 3, 9, 0, 0, 0, cal.Location()) // 周一
	createProtocolAt(t, "2000", protocol.StatusDataDeleted, &userA.ID, inWeek)
	// 月内但不在本周的完结：算本月
	inMonth := time.Date(2024, 6, 1, 9, 0, 0, 0, cal.Location()) // 周六，上一周
	createProtocolAt(t, "2001", protocol.StatusCoordination, &userA.ID, inMonth)
	// 未完结的记录不进入任何窗口计数
	createProtocolAt(t, "3000", protocol.StatusPending, nil, inDay)
	createProtocolAt(t, "3001", protocol.StatusInProgress, &userB.ID, inDay)

	dashboard, err := BuildDashboard(ref)
	require.NoError(t, err)

	require.Equal(t, "2024-06-05", dashboard.Date)
	require.Equal(t, goal.DefaultQuantity, dashboard.Goal)
	require.Equal(t, 2, dashboard.ActiveCollaborators)

	// 零产出的协作者也出现在列表里，排序按产出降序
	require.Len(t, dashboard.Collaborators, 2)
	first, second := dashboard.Collaborators[0], dashboard.Collaborators[1]
	require.Equal(t, userA.ID, first.ID)
	require.EqualValues(t, 50, first.Count)
	require.Equal(t, 104, first.Percentage) // round(50/48*100)
	require.True(t, first.GoalReached)
	require.Equal(t, userB.ID, second.ID)
	require.EqualValues(t, 0, second.Count)
	require.Equal(t, 0, second.Percentage)
	require.False(t, second.GoalReached)

	require.EqualValues(t, 50, dashboard.FinalizedToday)
	require.EqualValues(t, 51, dashboard.FinalizedThisWeek)
	require.EqualValues(t, 52, dashboard.FinalizedThisMonth)

	// 全量分状态计数不做日期限定
	require.EqualValues(t, 54, dashboard.Totals.Total)
	require.EqualValues(t, 1, dashboard.Totals.Pending)
	require.EqualValues(t, 1, dashboard.Totals.InProgress)
	require.EqualValues(t, 50, dashboard.Totals.Cancelled)
	require.EqualValues(t, 1, dashboard.Totals.DataDeleted)
	require.EqualValues(t, 1, dashboard.Totals.Coordination)
}

func TestDashboardUsesConfiguredGoal(t *testing.T) {
	cal := setupTestDB(t)
	userA := createCollaborator(t, "Alice")

	ref := time.Date(2024, 6, 5, 14, 0, 0, 0, cal.Location())
	_, err := goal.Set("2024-06-05", 10)
	require.NoError(t, err)

	inDay := time.Date(2024, 6, 5, 8, 0, 0, 0, cal.Location())
	for i := 0; i < 10; i++ {
		createProtocolAt(t, fmt.Sprintf("%d", 100+i), protocol.StatusCancelled, &userA.ID, inDay)
	}

	dashboard, err := BuildDashboard(ref)
	require.NoError(t, err)
	require.Equal(t, 10, dashboard.Goal)
	require.Equal(t, 100, dashboard.Collaborators[0].Percentage)
	require.True(t, dashboard.Collaborators[0].GoalReached)
}

func TestDayWindowBoundariesOnUpdatedAt(t *testing.T) {
	cal := setupTestDB(t)
	userA := createCollaborator(t, "Alice")

	ref := time.Date(2024, 6, 5, 12, 0, 0, 0, cal.Location())

	// 当日零点属于窗口，次日零点不属于，前一日23:59不属于
	createProtocolAt(t, "1", protocol.StatusCancelled, &userA.ID,
		time.Date(2024, 6, 5, 0, 0, 0, 0, cal.Location()))
	createProtocolAt(t, "2", protocol.StatusCancelled, &userA.ID,
		time.Date(2024, 6, 6, 0, 0, 0, 0, cal.Location()))
	createProtocolAt(t, "3", protocol.StatusCancelled, &userA.ID,
		time.Date(2024, 6, 4, 23, 59, 59, 0, cal.Location()))

	dashboard, err := BuildDashboard(ref)
	require.NoError(t, err)
	require.EqualValues(t, 1, dashboard.FinalizedToday)
}

func TestProgressMonotonicity(t *testing.T) {
	cal := setupTestDB(t)
	userA := createCollaborator(t, "Alice")

	ref := time.Date(2024, 6, 5, 12, 0, 0, 0, cal.Location())
	inDay := time.Date(2024, 6, 5, 9, 0, 0, 0, cal.Location())

	for i := 0; i < 12; i++ {
		createProtocolAt(t, fmt.Sprintf("%d", i+1), protocol.StatusCancelled, &userA.ID, inDay)
	}

	before, err := MyProgressFor(userA, ref)
	require.NoError(t, err)
	require.EqualValues(t, 12, before.Count)
	require.Equal(t, 25, before.Percentage) // round(12/48*100)

	// 再完结一条，计数恰好加一，百分比重新计算
	createProtocolAt(t, "999", protocol.StatusDataDeleted, &userA.ID, inDay)

	after, err := MyProgressFor(userA, ref)
	require.NoError(t, err)
	require.EqualValues(t, 13, after.Count)
	require.Equal(t, 27, after.Percentage) // round(13/48*100) = 27.08 -> 27
	require.False(t, after.GoalReached)
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	cal := setupTestDB(t)
	userA := createCollaborator(t, "Alice")

	ref := time.Date(2024, 6, 5, 12, 0, 0, 0, cal.Location())
	_, err := goal.Set("2024-06-05", 8)
	require.NoError(t, err)

	createProtocolAt(t, "1", protocol.StatusCancelled, &userA.ID,
		time.Date(2024, 6, 5, 9, 0, 0, 0, cal.Location()))

	progress, err := MyProgressFor(userA, ref)
	require.NoError(t, err)
	// 1/8*100 = 12.5，四舍五入进位到13
	require.Equal(t, 13, progress.Percentage)
}

func TestProductivitySeriesLastSevenDays(t *testing.T) {
	cal := setupTestDB(t)
	userA := createCollaborator(t, "Alice")

	ref := time.Date(2024, 6, 7, 12, 0, 0, 0, cal.Location())

	// 参考日2条，两天前3条，7天窗口之外的完结不计入
	for i := 0; i < 2; i++ {
		createProtocolAt(t, fmt.Sprintf("%d", i+1), protocol.StatusCancelled, &userA.ID,
			time.Date(2024, 6, 7, 9, 0, 0, 0, cal.Location()))
	}
	for i := 0; i < 3; i++ {
		createProtocolAt(t, fmt.Sprintf("%d", i+10), protocol.StatusCancelled, &userA.ID,
			time.Date(2024, 6, 5, 9, 0, 0, 0, cal.Location()))
	}
	createProtocolAt(t, "99", protocol.StatusDataDeleted, &userA.ID,
		time.Date(2024, 5, 30, 9, 0, 0, 0, cal.Location()))

	// 其中一天配置了自定义目标
	_, err := goal.Set("2024-06-05", 10)
	require.NoError(t, err)

	series, err := BuildProductivitySeries(ref, 7)
	require.NoError(t, err)
	require.Len(t, series, 7)

	// 升序：从6天前到参考日
	require.Equal(t, "2024-06-01", series[0].Date)
	require.Equal(t, "2024-06-07", series[6].Date)

	byDate := make(map[string]DailyProductivity, len(series))
	for _, point := range series {
		byDate[point.Date] = point
	}
	require.EqualValues(t, 2, byDate["2024-06-07"].Count)
	require.EqualValues(t, 0, byDate["2024-06-06"].Count)
	require.EqualValues(t, 3, byDate["2024-06-05"].Count)
	require.Equal(t, 10, byDate["2024-06-05"].Goal)
	require.Equal(t, goal.DefaultQuantity, byDate["2024-06-07"].Goal)
}

func TestGetDashboardWithoutCacheLayer(t *testing.T) {
	cal := setupTestDB(t)
	createCollaborator(t, "Alice")

	// Redis未启用时GetDashboard直接落到实时计算
	dashboard, err := GetDashboard(time.Date(2024, 6, 5, 12, 0, 0, 0, cal.Location()))
	require.NoError(t, err)
	require.Equal(t, "2024-06-05", dashboard.Date)
}
