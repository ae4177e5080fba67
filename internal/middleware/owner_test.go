package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newOwnerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Owner(), func(c *gin.Context) {
		id, ok := OwnerID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestOwnerAcceptsValidHeader(t *testing.T) {
	owner := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(OwnerHeader, owner.String())
	w := httptest.NewRecorder()

	newOwnerRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, owner.String(), w.Body.String())
}

func TestOwnerRejectsMissingOrInvalidHeader(t *testing.T) {
	for _, header := range []string{"", "not-a-uuid", uuid.Nil.String()} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set(OwnerHeader, header)
		}
		w := httptest.NewRecorder()

		newOwnerRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), "owner id")
	}
}

func TestOwnerIDWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := OwnerID(c)
	assert.False(t, ok)
}
