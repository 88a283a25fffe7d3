package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		*seen = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestID_GeneratesUUIDWhenAbsent(t *testing.T) {
	var seen string
	r := newRequestIDRouter(&seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	require.Equal(t, seen, w.Header().Get(HeaderRequestID))
}

func TestRequestID_HonorsInboundHeader(t *testing.T) {
	var seen string
	r := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "rid-from-client")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "rid-from-client", seen)
	require.Equal(t, "rid-from-client", w.Header().Get(HeaderRequestID))
}
