package startup

import (
	"fmt"

	"github.com/Gabrielsb1/destalhe/internal/goal"
	"github.com/Gabrielsb1/destalhe/internal/platform/config"
	"github.com/Gabrielsb1/destalhe/internal/protocol"
	"github.com/Gabrielsb1/destalhe/internal/report"
	"github.com/Gabrielsb1/destalhe/internal/user"
	"github.com/Gabrielsb1/destalhe/pkg/dateutil"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication(cfg *config.Config) error {
	fmt.Println("开始应用首次初始化...")

	// 统一日历：所有日期归一化和统计窗口都使用同一个时区
	cal, err := dateutil.NewCalendar(cfg.App.Timezone)
	if err != nil {
		return err
	}
	goal.SetCalendar(cal)
	report.SetCalendar(cal)

	protocol.Configure(cfg.Verification)

	if err := user.MigrateDB(); err != nil {
		return err
	}
	if err := protocol.MigrateDB(); err != nil {
		return err
	}
	if err := goal.MigrateDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
