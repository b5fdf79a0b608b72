package response

import (
	"github.com/gin-gonic/gin"

	"favorites/internal/pkg/apperror"
)

// Success writes data in the success envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes the error envelope with a machine-readable code.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError renders err using its apperror code. Unknown errors become a
// 500 and are attached to the gin context for the request logger.
func FromError(c *gin.Context, err error) {
	appErr := apperror.As(err)
	if appErr.Code == apperror.ErrCodeInternal {
		_ = c.Error(err)
	}
	Error(c, appErr.HTTPStatus, string(appErr.Code), appErr.Message)
}
