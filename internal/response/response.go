package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse wraps every successful payload.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse wraps every error payload.
type ErrorResponse struct {
	Error interface{} `json:"error"`
}

// SendSuccess writes data inside the success envelope.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Data: data})
}

// SendError writes an error envelope with code and message.
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error: gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// SendErrorWithDetails writes an error envelope that also carries details.
func SendErrorWithDetails(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, ErrorResponse{
		Error: gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
