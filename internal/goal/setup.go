package goal

import (
	"fmt"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
)

// MigrateDB 负责自动迁移goal表结构
func MigrateDB() error {
	if err := database.DB.AutoMigrate(&Goal{}); err != nil {
		return fmt.Errorf("无法迁移goal表: %w", err)
	}
	fmt.Println("Goal数据库表迁移成功。")
	return nil
}
