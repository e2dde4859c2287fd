package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFormatRequestLine(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC)

	assert.Equal(t,
		"2024-03-01T12:30:45.123Z | '/exit-time' | 10.0.0.1",
		FormatRequestLine(ts, "/exit-time", "10.0.0.1"))
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.POST("/", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
