package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studentdesk/studentdesk-backend/internal/model"
	"github.com/studentdesk/studentdesk-backend/internal/repository"
	"github.com/studentdesk/studentdesk-backend/internal/response"
	"github.com/studentdesk/studentdesk-backend/internal/service"
)

// ContextKeyIdentity is the Gin context key for the authenticated identity.
const ContextKeyIdentity = "identity"

// Authenticate resolves the caller's identity from the Authorization header.
// Beyond verifying the token it re-resolves the account against the
// credential store: tokens are not revocable server-side, so a deleted
// account must stop authenticating even while its token is unexpired.
func Authenticate(tokens *service.TokenService, accounts service.CredentialStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.MsgNoToken)
			return
		}

		// A bare token without the Bearer prefix is accepted.
		tokenStr := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimSpace(authHeader[len("Bearer "):])
		}
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.MsgInvalidTokenFormat)
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				response.AbortFail(c, http.StatusUnauthorized, response.MsgTokenExpired)
				return
			}
			response.AbortFail(c, http.StatusUnauthorized, response.MsgInvalidToken)
			return
		}

		account, err := accounts.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortFail(c, http.StatusUnauthorized, response.MsgUserNotFound)
				return
			}
			response.AbortFail(c, http.StatusInternalServerError, response.MsgInternal)
			return
		}

		c.Set(ContextKeyIdentity, model.Identity{
			AccountID: account.ID,
			Role:      account.Role,
			Name:      account.Name,
			Email:     account.Email,
		})
		c.Next()
	}
}

// RequireRoles enforces that the previously attached identity carries one
// of the allowed roles. AdminOnly and AnyAuthenticated cover the two
// standing policies.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, response.MsgAuthRequired)
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		names := make([]string, len(roles))
		for i, role := range roles {
			names[i] = string(role)
		}
		response.AbortFail(c, http.StatusForbidden, fmt.Sprintf(
			"Access denied. Required role: %s. Your role: %s",
			strings.Join(names, " or "), identity.Role))
	}
}

// AdminOnly restricts a route to administrators.
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(model.RoleAdmin)
}

// GetIdentity retrieves the authenticated identity from the Gin context.
func GetIdentity(c *gin.Context) (model.Identity, bool) {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return model.Identity{}, false
	}
	identity, ok := val.(model.Identity)
	return identity, ok
}
