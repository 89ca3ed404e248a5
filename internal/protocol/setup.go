package protocol

import (
	"fmt"

	"github.com/Gabrielsb1/destalhe/internal/platform/config"
	"github.com/Gabrielsb1/destalhe/internal/platform/database"
)

// MigrateDB 负责自动迁移protocol表结构
func MigrateDB() error {
	if err := database.DB.AutoMigrate(&Protocol{}); err != nil {
		return fmt.Errorf("无法迁移protocol表: %w", err)
	}
	fmt.Println("Protocol数据库表迁移成功。")
	return nil
}

// Configure 应用协议核查流程的配置开关。
func Configure(cfg config.VerificationConfig) {
	SetEnforceOwnerMatch(cfg.EnforceOwnerMatch)
	if !cfg.EnforceOwnerMatch {
		fmt.Println("注意: 完结操作的持有人校验已关闭（兼容旧行为）。")
	}
}
