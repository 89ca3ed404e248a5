package user

import (
	"fmt"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
)

// MigrateDB 负责自动迁移user表结构
func MigrateDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	fmt.Println("User数据库表迁移成功。")
	return nil
}
