// Package response renders the service's JSON wire format. Failures always
// carry a single "error" string; success bodies are shaped per route.
package response

import "github.com/gin-gonic/gin"

// Error writes a failure body: {"error": "<message>"}.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ErrorFrom writes a failure body carrying the error's message verbatim.
func ErrorFrom(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// JSON writes a success body as-is.
func JSON(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
