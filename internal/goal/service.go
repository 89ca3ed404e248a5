package goal

import (
	"errors"
	"time"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/Gabrielsb1/destalhe/pkg/dateutil"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cal 是本模块做所有日期归一化使用的日历，由setup在启动时注入。
// 默认使用服务器本地时区，测试可以直接替换。
var cal *dateutil.Calendar

func init() {
	cal, _ = dateutil.NewCalendar("")
}

// SetCalendar 注入统一的日历时区。
func SetCalendar(c *dateutil.Calendar) {
	cal = c
}

// normalizeDate 校验并归一化一个日期键。
func normalizeDate(date string) (string, error) {
	t, err := cal.ParseDayKey(date)
	if err != nil {
		return "", &apperror.ValidationError{Field: "date", Reason: err.Error()}
	}
	return cal.DayKey(t), nil
}

// Resolve 返回某天配置的目标数量，没有配置时返回默认值。
// 这一层把"缺失"折叠为默认值，调用方永远拿到一个可用的正数。
func Resolve(date string) (int, error) {
	key, err := normalizeDate(date)
	if err != nil {
		return 0, err
	}

	var g Goal
	queryErr := database.DB.First(&g, "date = ?", key).Error
	if errors.Is(queryErr, gorm.ErrRecordNotFound) {
		return DefaultQuantity, nil
	}
	if queryErr != nil {
		return 0, apperror.NewStoreUnavailable("goal.Resolve", queryErr)
	}

	// 数据里出现非正数目标时按无效配置处理，回退到默认值
	if g.Quantity <= 0 {
		return DefaultQuantity, nil
	}
	return g.Quantity, nil
}

// ResolveForTime 返回时刻t所在日历日的目标数量。
func ResolveForTime(t time.Time) (int, error) {
	return Resolve(cal.DayKey(t))
}

// Set 为某天设置目标数量，按日期upsert：
// 同一天重复设置只会留下一条记录，数量以最后一次为准。
func Set(date string, quantity int) (*Goal, error) {
	if quantity < 1 {
		return nil, &apperror.ValidationError{Field: "quantity", Reason: "目标数量必须是正整数"}
	}
	key, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}

	g := Goal{Date: key, Quantity: quantity}
	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&g).Error
	if err != nil {
		return nil, apperror.NewStoreUnavailable("goal.Set", err)
	}

	// upsert命中已有行时Create不回填主键，重新读一次保证返回完整记录
	var saved Goal
	if err := database.DB.First(&saved, "date = ?", key).Error; err != nil {
		return nil, apperror.NewStoreUnavailable("goal.Set", err)
	}
	return &saved, nil
}

// Delete 删除某天的目标配置。该天没有配置时视为成功的空操作。
func Delete(date string) error {
	key, err := normalizeDate(date)
	if err != nil {
		return err
	}
	if err := database.DB.Where("date = ?", key).Delete(&Goal{}).Error; err != nil {
		return apperror.NewStoreUnavailable("goal.Delete", err)
	}
	return nil
}

// List 返回全部目标配置，按日期降序。
func List() ([]Goal, error) {
	var goals []Goal
	if err := database.DB.Order("date desc").Find(&goals).Error; err != nil {
		return nil, apperror.NewStoreUnavailable("goal.List", err)
	}
	return goals, nil
}
