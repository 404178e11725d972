package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "skillswap/internal/transport/http/response"
)

// MaxBodyBytes 声明长度超限直接拒绝；未声明长度的 body 读到上限后绑定失败，按 400 返回
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
