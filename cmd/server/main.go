package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Gabrielsb1/destalhe/api"
	"github.com/Gabrielsb1/destalhe/internal/platform/config"
	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/internal/platform/health"
	"github.com/Gabrielsb1/destalhe/internal/platform/shutdown"
	"github.com/Gabrielsb1/destalhe/internal/platform/startup"
	"github.com/Gabrielsb1/destalhe/pkg/lifecycle"
	"github.com/Gabrielsb1/destalhe/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败，无法启动: %v", err))
	}

	token.GenerateSecretKey()
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Redis)

	if err := startup.InitializeApplication(cfg); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 后台服务统一由生命周期管理器协调停机
	mgr := lifecycle.NewManager()
	if cfg.Redis.Enabled {
		handle, err := mgr.NewServiceHandle("redis-health-check")
		if err != nil {
			panic(err)
		}
		go health.StartRedisHealthCheck(handle)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(mgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
