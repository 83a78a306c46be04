package response

// Messages shared between middleware and handlers. Domain-specific messages
// live next to their handlers.
const (
	MsgNoToken            = "Access denied. No token provided."
	MsgInvalidTokenFormat = "Access denied. Invalid token format."
	MsgInvalidToken       = "Access denied. Invalid token."
	MsgTokenExpired       = "Access denied. Token expired."
	MsgUserNotFound       = "Access denied. User not found."
	MsgAuthRequired       = "Authentication required."
	MsgValidationFailed   = "Validation failed"
	MsgTooManyRequests    = "Too many requests. Please try again later."
	MsgInternal           = "Internal server error"
)
