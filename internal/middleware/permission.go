package middleware

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/wiki-service/internal/dto"
	"terminal-terrace/wiki-service/internal/permission"
	"terminal-terrace/wiki-service/pkg/response"
)

// RequirePermission 权限检查中间件
// 需要在 JWTAuth / OptionalJWTAuth 之后挂载，从上下文读取 user_role
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var role string
		if r, exists := c.Get("user_role"); exists && r != nil {
			role = r.(string)
		}

		if !permission.HasPermission(role, perm) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Forbidden),
				response.WithErrorMessage("没有权限: "+perm),
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
