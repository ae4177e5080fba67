package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	OwnerHeader = "X-Owner-ID"
	ownerKey    = "owner_id"
)

// Owner resolves the calling account from the X-Owner-ID header. Every
// record read or written by a request is scoped to this id.
func Owner() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(OwnerHeader))
		if err != nil || id == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid owner id"})
			return
		}
		c.Set(ownerKey, id)
		c.Next()
	}
}

// OwnerID returns the id stored by Owner.
func OwnerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ownerKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
