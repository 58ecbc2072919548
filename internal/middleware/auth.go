package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/auth"
	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/domain/access"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/infra/tokenstore"
	"github.com/pro-master/backend/internal/models"
)

const ContextPrincipal = "principal"

// Authenticate resolves the bearer token, if any, into a principal. No
// header means anonymous; a header that does not resolve is rejected.
func Authenticate(db *gorm.DB, cfg *config.Config, tokens tokenstore.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(ContextPrincipal, access.Anonymous())
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !(strings.EqualFold(parts[0], "Bearer") || strings.EqualFold(parts[0], "Token")) {
			httperr.Unauthorized(c, "invalid_authorization_header", "Use 'Bearer <token>'.")
			return
		}

		claims, err := auth.Parse(cfg, strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			return
		}

		ctx := c.Request.Context()
		revoked, err := tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			log.Error("token store lookup failed", zap.Error(err))
			httperr.Internal(c, "internal_error", "An unexpected error occurred.")
			return
		}
		if revoked {
			httperr.Unauthorized(c, "token_revoked", "Token has been revoked.")
			return
		}

		var user models.User
		if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
				return
			}
			httperr.Respond(c, log, err)
			return
		}
		if !user.IsActive {
			httperr.Unauthorized(c, "user_inactive", "User is inactive.")
			return
		}

		var profile *models.ClientProfile
		if !user.IsMaster {
			var cp models.ClientProfile
			err := db.WithContext(ctx).Where("user_id = ?", user.ID).First(&cp).Error
			switch {
			case err == nil:
				profile = &cp
			case !errors.Is(err, gorm.ErrRecordNotFound):
				httperr.Respond(c, log, err)
				return
			}
		}

		p := access.FromUser(&user, profile)
		p.TokenID = claims.ID
		c.Set(ContextPrincipal, p)
		c.Set(contextTokenExpiry, claims.ExpiresAt.Time)
		c.Next()
	}
}

const contextTokenExpiry = "tokenExpiry"

// TokenTTL is what is left of the current token's lifetime.
func TokenTTL(c *gin.Context) time.Duration {
	if v, ok := c.Get(contextTokenExpiry); ok {
		if exp, ok := v.(time.Time); ok {
			return time.Until(exp)
		}
	}
	return 0
}

func CurrentPrincipal(c *gin.Context) access.Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(access.Principal); ok {
			return p
		}
	}
	return access.Anonymous()
}

// Require runs the coarse policy check for the request method.
func Require(policy access.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := access.Check(policy, CurrentPrincipal(c), c.Request.Method); err != nil {
			httperr.Respond(c, nil, err)
			return
		}
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return Require(access.Authenticated{})
}
