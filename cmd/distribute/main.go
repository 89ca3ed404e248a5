package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Gabrielsb1/destalhe/internal/platform/config"
	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/internal/protocol"
	"github.com/Gabrielsb1/destalhe/internal/user"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// 维护工具：批量创建协议记录，并按连续区段把它们分配给在职协作者。
// 这是核心流程之外的数据准备操作，直接写库，不经过生命周期服务。
//
// 用法:
//
//	go run ./cmd/distribute -from 1 -to 23000 [-per 1000] [-assign]
//
// -assign 开启时，每个协作者按序获得 -per 条in_progress记录；
// 关闭时所有记录以pending创建，不指定持有人。
func main() {
	from := flag.Int("from", 1, "起始协议序号（含）")
	to := flag.Int("to", 0, "结束协议序号（含）")
	per := flag.Int("per", 1000, "开启-assign时每个协作者分配的记录数")
	assign := flag.Bool("assign", false, "是否把记录按区段分配给在职协作者")
	flag.Parse()

	if *to < *from {
		fmt.Println("参数错误: -to 必须不小于 -from")
		os.Exit(1)
	}

	// 与原维护脚本一致，先加载.env再读取配置
	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}
	database.InitDB(cfg.Database)
	if err := protocol.MigrateDB(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	var collaborators []user.User
	if *assign {
		collaborators, err = user.ActiveCollaborators()
		if err != nil {
			fmt.Printf("获取协作者名单失败: %v\n", err)
			os.Exit(1)
		}
		if len(collaborators) == 0 {
			fmt.Println("没有在职协作者，无法分配。")
			os.Exit(1)
		}
		fmt.Printf("在职协作者 %d 人，每人分配 %d 条。\n", len(collaborators), *per)
	}

	created, skipped := 0, 0
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for number := *from; number <= *to; number++ {
			p := protocol.Protocol{
				Number: fmt.Sprintf("%d", number),
				Status: protocol.StatusPending,
			}

			if *assign {
				// 按连续区段分配: 第一段给第一个协作者，以此类推，
				// 超出总区段的记录保持pending
				slot := (number - *from) / *per
				if slot < len(collaborators) {
					ownerID := collaborators[slot].ID
					p.Status = protocol.StatusInProgress
					p.OwnerID = &ownerID
				}
			}

			result := tx.Where("number = ?", p.Number).FirstOrCreate(&p)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				skipped++ // 序号已存在，跳过
			} else {
				created++
			}
		}
		return nil
	})
	if err != nil {
		fmt.Printf("批量创建失败，未写入任何数据: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("完成: 新建 %d 条，跳过已存在 %d 条。\n", created, skipped)
}
