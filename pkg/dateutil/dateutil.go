package dateutil

import (
	"fmt"
	"time"
)

// KeyLayout 是日粒度日期键的统一格式。
const KeyLayout = "2006-01-02"

// 原实现在不同调用点混用UTC和本地偏移来推导"今天"的日期字符串，
// 在午夜附近会把进度和目标错算到相邻的一天。
// 这里把所有 日期<->键 的转换收敛到同一个时区（部署配置的日历），
// 任何需要把日期变成查询键或时间窗口的代码都必须经过本包。

// Calendar 持有一个固定的日历时区，是所有日期换算的唯一入口。
type Calendar struct {
	loc *time.Location
}

// NewCalendar 按IANA时区名创建一个日历。名字为空时使用本地时区。
func NewCalendar(tzName string) (*Calendar, error) {
	if tzName == "" {
		return &Calendar{loc: time.Local}, nil
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("无法加载时区 %s: %w", tzName, err)
	}
	return &Calendar{loc: loc}, nil
}

// Location 返回日历使用的时区。
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// DayKey 把一个时刻归一化为它在日历时区内所属日期的键。
func (c *Calendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format(KeyLayout)
}

// ParseDayKey 解析一个日期键，返回该日在日历时区的零点。
func (c *Calendar) ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("无效的日期格式 %q (应为YYYY-MM-DD): %w", key, err)
	}
	return t, nil
}

// Window 是一个左闭右开的时间区间 [Start, End)。
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains 判断时刻t是否落在窗口内。
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DayWindow 返回t所在日历日的窗口：[当日零点, 次日零点)。
func (c *Calendar) DayWindow(t time.Time) Window {
	local := t.In(c.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// WeekWindow 返回t所在周的窗口，一周从周日零点开始。
func (c *Calendar) WeekWindow(t time.Time) Window {
	local := t.In(c.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	start = start.AddDate(0, 0, -int(start.Weekday()))
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// MonthWindow 返回t所在月的窗口：[当月1日零点, 次月1日零点)。
func (c *Calendar) MonthWindow(t time.Time) Window {
	local := t.In(c.loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, c.loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}
