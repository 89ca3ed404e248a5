package goal

import (
	"net/http"

	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// ListGoals 返回全部目标配置（管理端）
func ListGoals(c *gin.Context) {
	goals, err := List()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "获取目标列表失败"})
		return
	}
	c.JSON(http.StatusOK, goals)
}

// SetGoalRequestBody 定义了设置目标请求体的JSON结构
type SetGoalRequestBody struct {
	Date     string `json:"date" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// SetGoal 为某天设置目标数量（管理端，upsert语义）
func SetGoal(c *gin.Context) {
	var body SetGoalRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	g, err := Set(body.Date, body.Quantity)
	if err != nil {
		respondGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DeleteGoal 删除某天的目标配置（管理端）
func DeleteGoal(c *gin.Context) {
	date := c.Param("date")
	if err := Delete(date); err != nil {
		respondGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "目标已删除"})
}

func respondGoalError(c *gin.Context, err error) {
	switch {
	case apperror.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperror.IsStoreUnavailable(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "操作失败"})
	}
}
