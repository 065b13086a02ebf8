package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContextUserKey 当前用户在 gin context 中的键
const ContextUserKey = "currentUserID"

// UserResolver 从 X-User-ID 请求头解析当前用户。
// 认证由外部网关完成，这里只做身份传递。
func UserResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
				c.Set(ContextUserKey, uint(id))
			}
		}
		c.Next()
	}
}

// RequireUser 变更类接口要求已解析出用户身份
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-User-ID header"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 获取当前用户 id
func CurrentUser(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
