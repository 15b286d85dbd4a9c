package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestLogger(t *testing.T) {
	var seen string
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/", func(c *gin.Context) {
		seen = RequestID(c)
		c.Status(http.StatusNoContent)
	})

	w := serve(router, "192.0.2.1:1234")

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	l, err := NewLimiter("2-M")
	require.NoError(t, err)

	router := gin.New()
	router.Use(RateLimit(l))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, "192.0.2.1:1234")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, serve(router, "192.0.2.1:1234").Code)

	w = serve(router, "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too many requests")

	// other clients have their own budget
	assert.Equal(t, http.StatusOK, serve(router, "192.0.2.2:1234").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(router, "192.0.2.1:1234").Code)
	}
}

func TestNewLimiter_BadRate(t *testing.T) {
	_, err := NewLimiter("sixty per minute")
	assert.Error(t, err)
}
