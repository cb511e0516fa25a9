package http

import "github.com/gin-gonic/gin"

// errorJSON arma el sobre de error uniforme {success: false, error: msg}.
// Nunca incluye detalles internos ni stack traces.
func errorJSON(msg string) gin.H {
	return gin.H{"success": false, "error": msg}
}

const (
	msgStoreUnavailable = "Database temporarily unavailable. Please try again in a moment."
	msgInvalidBody      = "Request body is required"
)
