package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "skillswap/internal/transport/http/response"
)

// RecoverEnvelope 作为 ginzap.CustomRecoveryWithZap 的回调，panic 也走统一响应体
func RecoverEnvelope(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, "internal error"))
}
