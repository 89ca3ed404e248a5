package user

import (
	"errors"
	"net/http"

	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginRequestBody 定义了登录请求体的JSON结构
type LoginRequestBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 是登录成功时的响应
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login 处理登录请求，签发会话令牌
func Login(c *gin.Context) {
	var body LoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	u, sessionToken, err := Authenticate(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials.Error()})
			return
		}
		if apperror.IsStoreUnavailable(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: sessionToken, User: *u})
}

// ListUsers 返回全部账户（管理端）
func ListUsers(c *gin.Context) {
	users, err := ListAll()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "获取用户列表失败"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUserRequestBody 定义了创建账户请求体的JSON结构
type CreateUserRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Type     string `json:"type"`
	Active   *bool  `json:"active"`
}

// CreateUser 创建一个新账户（管理端）
func CreateUser(c *gin.Context) {
	var body CreateUserRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	u, err := Create(CreateInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Type:     body.Type,
		Active:   body.Active,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// UpdateUserRequestBody 定义了更新账户请求体的JSON结构，缺省字段不变更
type UpdateUserRequestBody struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Active   *bool   `json:"active"`
	Password *string `json:"password"`
}

// UpdateUser 更新一个已有账户（管理端）
func UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	var body UpdateUserRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	u, err := Update(id, UpdateInput{
		Name:     body.Name,
		Type:     body.Type,
		Active:   body.Active,
		Password: body.Password,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到该用户"})
			return
		}
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// respondUserError 把服务层错误映射为HTTP响应。
func respondUserError(c *gin.Context, err error) {
	switch {
	case apperror.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperror.IsStoreUnavailable(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "操作失败"})
	}
}
