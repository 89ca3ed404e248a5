package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Gabrielsb1/destalhe/internal/platform/config"
	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/internal/protocol"
	"github.com/joho/godotenv"
)

// 维护工具：把协议记录批量重置回pending，清空持有人和备注。
// 默认重置全部记录；给定 -from/-to 时只重置对应序号区间。
//
// 用法:
//
//	go run ./cmd/reset [-from 1 -to 10000] [-yes]
func main() {
	from := flag.Int("from", 0, "起始协议序号（含），0表示不限")
	to := flag.Int("to", 0, "结束协议序号（含），0表示不限")
	yes := flag.Bool("yes", false, "跳过确认直接执行")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}
	database.InitDB(cfg.Database)

	if !*yes {
		fmt.Print("该操作会清空记录的状态、持有人和备注，输入 yes 确认: ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "yes" {
			fmt.Println("已取消。")
			return
		}
	}

	query := database.DB.Model(&protocol.Protocol{})
	if *from > 0 && *to >= *from {
		query = query.Where("CAST(number AS INTEGER) BETWEEN ? AND ?", *from, *to)
	}

	result := query.Updates(map[string]interface{}{
		"status":     protocol.StatusPending,
		"owner_id":   nil,
		"notes":      "",
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		fmt.Printf("重置失败: %v\n", result.Error)
		os.Exit(1)
	}

	fmt.Printf("完成: 重置了 %d 条协议记录。\n", result.RowsAffected)
}
