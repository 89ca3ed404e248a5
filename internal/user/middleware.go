package user

import (
	"net/http"
	"strings"

	"github.com/Gabrielsb1/destalhe/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActorKey 是认证后账户在Gin上下文中的键。
const ActorKey = "actor"

// RequireAuth 解析Authorization头中的Bearer令牌，把对应的账户放入上下文。
// 原实现把登录用户存在进程级全局状态里；这里每个请求独立解析，
// 下游handler通过ActorFromContext显式取出并传给服务层。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "缺少认证令牌"})
			return
		}

		userIDStr, err := token.ValidateSession(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "认证失败: " + err.Error()})
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "认证失败: 令牌中的用户ID无效"})
			return
		}

		u, err := FindByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "暂时无法验证账户，请稍后重试"})
			return
		}
		if u == nil || !u.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "账户不存在或已被停用"})
			return
		}

		c.Set(ActorKey, u)
		c.Next()
	}
}

// RequireAdmin 在RequireAuth之后使用，只放行admin类型的账户。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok || actor.Type != TypeAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "需要管理员权限"})
			return
		}
		c.Next()
	}
}

// ActorFromContext 从Gin上下文中取出当前认证的账户。
func ActorFromContext(c *gin.Context) (*User, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return nil, false
	}
	actor, ok := value.(*User)
	return actor, ok
}
