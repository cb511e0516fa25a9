package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fncs-api/internal/service"
)

const identityKey = "auth_identity"

// Identity es el valor tipado que el gate inyecta para los handlers aguas abajo.
type Identity struct {
	UserID int64
	Email  string
}

// AuthRequired protege rutas: extrae el bearer token, lo valida con el codec
// y deja la identidad en el contexto. Depende solo del codec, no del store.
func AuthRequired(logger *zap.Logger, tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorJSON("Internal server error"))
			return
		}

		token, errMsg := bearerToken(c)
		if errMsg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorJSON(errMsg))
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			// El motivo concreto queda en el log; el cliente recibe un
			// mensaje uniforme.
			if logger != nil {
				reason := "invalid"
				if errors.Is(err, service.ErrTokenExpired) {
					reason = "expired"
				}
				logger.Info("request rejected by auth gate",
					zap.String("reason", reason),
					zap.String("path", c.Request.URL.Path),
				)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorJSON("Invalid token. Authentication failed."))
			return
		}

		c.Set(identityKey, Identity{UserID: claims.UserID, Email: claims.Email})
		c.Next()
	}
}

// GetIdentity obtiene la identidad autenticada desde el contexto.
func GetIdentity(c *gin.Context) (Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}

// bearerToken extrae el token del header Authorization. Devuelve el mensaje
// de error para el cliente cuando falta o está malformado.
func bearerToken(c *gin.Context) (string, string) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", "Authentication token is missing"
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "Invalid authorization header format. Use: Bearer <token>"
	}
	return parts[1], ""
}
