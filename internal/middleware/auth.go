package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"fitcoach_backend/internal/auth"
	"fitcoach_backend/internal/logger"
	"fitcoach_backend/internal/models"
	"fitcoach_backend/internal/repositories"
	"fitcoach_backend/pkg/apperrors"
	"fitcoach_backend/pkg/contextkeys"
)

// AuthMiddleware authenticates the bearer token and attaches the current
// user record to the context. The user is re-fetched on every request so a
// deleted account is rejected even while its token is still fresh.
func AuthMiddleware(tokens *auth.TokenManager, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWith(c, apperrors.NewUnauthorizedError("Access token required"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ParseAccessToken(tokenStr)
		if err != nil {
			if apperrors.Is(err, auth.ErrTokenExpired) {
				abortWith(c, apperrors.ErrTokenExpired)
			} else {
				abortWith(c, apperrors.NewForbiddenError("Invalid token"))
			}
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				abortWith(c, apperrors.NewUnauthorizedError("User no longer exists"))
			} else {
				abortWith(c, apperrors.InternalError(err))
			}
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Set(contextkeys.CurrentUserKey.String(), user)
		c.Set(contextkeys.UserIDKey.String(), user.ID)
		c.Set(contextkeys.RoleKey.String(), user.Role)
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// user's role is in the set. AuthMiddleware must run first.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		roleSet[r] = true
		names = append(names, string(r))
	}
	message := "Access denied. Requires one of the following roles: " + strings.Join(names, ", ")

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWith(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}

		if !roleSet[user.Role] {
			abortWith(c, apperrors.NewForbiddenError(message))
			return
		}

		c.Next()
	}
}

// CurrentUser extracts the user record set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(contextkeys.CurrentUserKey.String())
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

func abortWith(c *gin.Context, err *apperrors.AppError) {
	apperrors.HandleError(c, err)
	c.Abort()
}
