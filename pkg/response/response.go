package response

import "github.com/gin-gonic/gin"

// The frontend contract is a flat envelope: handlers return their payload
// directly on success and {"error": "<message>"} on failure.

// Err writes the error envelope with the given status.
func Err(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// AbortErr writes the error envelope and aborts the middleware chain.
// Used by gates so the handler and later stages never run.
func AbortErr(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
