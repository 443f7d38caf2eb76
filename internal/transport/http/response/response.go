package response

import "github.com/gin-gonic/gin"

// Responses are plain {"message": ...} and {"error": ...} bodies, no
// envelope.

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func Error(c *gin.Context, status int, err string) {
	c.JSON(status, gin.H{"error": err})
}
