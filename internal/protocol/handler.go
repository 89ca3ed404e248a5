package protocol

import (
	"errors"
	"net/http"

	"github.com/Gabrielsb1/destalhe/internal/user"
	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAvailable 返回当前协作者可处理的协议记录列表
func GetAvailable(c *gin.Context) {
	actor, ok := user.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	protocols, err := AvailableFor(actor.ID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "获取协议列表失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, protocols)
}

// GetByNumber 按协议序号查找单条记录
func GetByNumber(c *gin.Context) {
	number := c.Param("number")
	p, err := FindByNumber(number)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "查询失败，请稍后重试"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到序号为 " + number + " 的协议记录"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ClaimProtocol 处理认领请求
func ClaimProtocol(c *gin.Context) {
	actor, ok := user.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的协议记录ID"})
		return
	}

	p, err := Claim(id, actor)
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// FinalizeRequestBody 定义了完结请求体的JSON结构
type FinalizeRequestBody struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// FinalizeProtocol 处理完结请求
func FinalizeProtocol(c *gin.Context) {
	actor, ok := user.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的协议记录ID"})
		return
	}

	var body FinalizeRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	p, err := Finalize(id, actor, body.Status, body.Notes)
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// respondTransitionError 把状态转换的失败原因映射为HTTP响应。
// 冲突(409)提示换一条记录；终态(422)说明界面数据已过期；
// 存储故障(503)提示稍后重试。
func respondTransitionError(c *gin.Context, err error) {
	switch {
	case apperror.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": "该协议记录已不可用，请选择其他记录"})
	case apperror.IsInvalidState(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "该协议记录已完结，请刷新列表"})
	case apperror.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
	case apperror.IsStoreUnavailable(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "操作失败"})
	}
}
