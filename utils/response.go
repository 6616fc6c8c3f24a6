package utils

import "github.com/gin-gonic/gin"

// JSONError writes the error envelope shared by every route:
// {"error": {"code": "error.notFound", "message": "..."}}
func JSONError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{"error": gin.H{"code": errCode, "message": message}})
}

func JSONErrorDetails(c *gin.Context, code int, errCode, message, details string) {
	c.JSON(code, gin.H{"error": gin.H{"code": errCode, "message": message, "details": details}})
}
