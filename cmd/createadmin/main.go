package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Gabrielsb1/destalhe/internal/platform/config"
	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/internal/user"
	"github.com/joho/godotenv"
)

// 维护工具：创建一个管理员账户，用于初始部署后的引导。
//
// 用法:
//
//	go run ./cmd/createadmin -name "Admin" -email admin@example.com -password secret
func main() {
	name := flag.String("name", "", "管理员姓名")
	email := flag.String("email", "", "管理员邮箱")
	password := flag.String("password", "", "管理员密码")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		fmt.Println("参数错误: -name、-email、-password 都是必填项")
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}
	database.InitDB(cfg.Database)
	if err := user.MigrateDB(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	u, err := user.Create(user.CreateInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Type:     user.TypeAdmin,
	})
	if err != nil {
		fmt.Printf("创建管理员失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("管理员已创建: %s <%s> (ID: %s)\n", u.Name, u.Email, u.ID)
}
