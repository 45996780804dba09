package utils

import "github.com/gin-gonic/gin"

// Text writes the relay's success envelope.
func Text(c *gin.Context, text string) {
	c.JSON(200, gin.H{
		"text": text,
	})
}

// Error writes the relay's error envelope with the given status.
func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"error": msg,
	})
}
