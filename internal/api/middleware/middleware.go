package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"pos-exit-checker/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLog 在处理请求之前记录 `<时间> | '<路径>' | <客户端IP>`
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Info(FormatRequestLine(time.Now(), c.Request.URL.Path, c.ClientIP()))
		c.Next()
	}
}

// FormatRequestLine 请求日志行
func FormatRequestLine(ts time.Time, path, ip string) string {
	return fmt.Sprintf("%s | '%s' | %s", ts.UTC().Format("2006-01-02T15:04:05.000Z07:00"), path, ip)
}

// Recovery 恐慌捕获，记录调用栈后返回 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if cause := recover(); cause != nil {
				logger.Error("[Recovery] panic recovered", fmt.Errorf("%v", cause),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()))
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()

		c.Next()
	}
}
