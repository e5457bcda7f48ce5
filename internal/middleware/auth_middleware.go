package middleware

import (
	"errors"
	"strings"

	autherrors "github.com/krushit1307/HRMS/internal/auth/errors"
	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/shared/contextutil"
	"github.com/krushit1307/HRMS/internal/shared/response"
	"github.com/krushit1307/HRMS/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// TokenParser is satisfied by *token.Manager.
type TokenParser interface {
	Parse(tokenString string, kind token.Kind) (token.Claims, error)
}

// AuthMiddleware accepts an access token from the Authorization header or the
// access_token cookie and puts the caller's id and role on the gin and request contexts.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.Abort(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := tokens.Parse(tokenString, token.KindAccess)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, token.ErrExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			response.Abort(c, errObj)
			return
		}

		role, ok := domain.ParseRole(claims.Role)
		if !ok {
			response.Abort(c, autherrors.ErrInvalidToken)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, string(role))

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithRole(ctx, string(role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CurrentActor returns the caller set by AuthMiddleware. ok is false on unauthenticated routes.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	userID := c.GetString(ContextUserID)
	role, ok := domain.ParseRole(c.GetString(ContextRole))
	if userID == "" || !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, Role: role}, true
}
