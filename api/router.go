package api

import (
	"github.com/Gabrielsb1/destalhe/internal/goal"
	"github.com/Gabrielsb1/destalhe/internal/protocol"
	"github.com/Gabrielsb1/destalhe/internal/report"
	"github.com/Gabrielsb1/destalhe/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 认证
		api.POST("/auth/login", user.Login)

		// 协议记录相关的路由组，需要登录
		protocolRoutes := api.Group("/protocols", user.RequireAuth())
		{
			protocolRoutes.GET("/available", protocol.GetAvailable)
			protocolRoutes.GET("/number/:number", protocol.GetByNumber)
			protocolRoutes.POST("/:id/claim", protocol.ClaimProtocol)
			protocolRoutes.POST("/:id/finalize", protocol.FinalizeProtocol)
		}

		// 协作者个人进度
		api.GET("/progress/me", user.RequireAuth(), report.GetMyProgress)

		// 管理端路由组，需要管理员权限
		adminRoutes := api.Group("/admin", user.RequireAuth(), user.RequireAdmin())
		{
			adminRoutes.GET("/dashboard", report.GetDashboardHandler)
			adminRoutes.GET("/productivity", report.GetProductivitySeries)

			adminRoutes.GET("/goals", goal.ListGoals)
			adminRoutes.POST("/goals", goal.SetGoal)
			adminRoutes.DELETE("/goals/:date", goal.DeleteGoal)

			adminRoutes.GET("/users", user.ListUsers)
			adminRoutes.POST("/users", user.CreateUser)
			adminRoutes.PUT("/users/:id", user.UpdateUser)
		}
	}
}
