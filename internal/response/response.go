package response

import "github.com/gin-gonic/gin"

// Envelope is the uniform API response shape. Every endpoint, success or
// failure, returns this structure.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Success sends a successful JSON response with the given status and data.
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends an error response carrying only a message.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
	})
}

// FailWithErrors sends an error response with the full list of violations,
// not just the first.
func FailWithErrors(c *gin.Context, statusCode int, message string, errs []string) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// AbortFail aborts the middleware chain and sends an error response. No
// downstream handler runs after it.
func AbortFail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{
		Success: false,
		Message: message,
	})
}
