package middleware

import "github.com/gin-gonic/gin"

// contextKey is the type of keys stored in request contexts by this package.
type contextKey string

// clientIDKey is the key used to store the authenticated API client's ID.
const clientIDKey = contextKey("clientID")

// GetClientIDFromContext retrieves the authenticated client ID from the Gin context.
// It returns the client ID and a boolean indicating if it was found.
func GetClientIDFromContext(c *gin.Context) (string, bool) {
	clientID, ok := c.Request.Context().Value(clientIDKey).(string)
	if !ok || clientID == "" {
		return "", false
	}
	return clientID, true
}
