package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger())

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		id, _ := c.Get(RequestIDKey)
		seen, _ = id.(string)
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestRequestID_AssignsFreshID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w, seen := serve(t, req)

	header := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, header)
	_, err := uuid.Parse(header)
	assert.NoError(t, err)
	assert.Equal(t, header, seen)
}

func TestRequestID_PropagatesCallerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "caller-set-id")
	w, seen := serve(t, req)

	assert.Equal(t, "caller-set-id", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "caller-set-id", seen)
}
