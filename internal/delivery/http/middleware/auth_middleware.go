package middleware

import (
	"context"
	"net/http"
	"strings"

	"catalog-service/internal/infrastructure/cache"
	"catalog-service/pkg/jwt"
	"catalog-service/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleKey      contextKey = "role"
	TokenIDKey   contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	tokenStore *cache.TokenStore
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, tokenStore *cache.TokenStore, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenStore: tokenStore,
		log:        log,
	}
}

// Authenticate admits requests carrying a live access token and stores the
// caller's identity and role in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, rejection, err := m.verify(r)
		if err != nil {
			m.log.Warnf("Failed to validate token: %+v", err)
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if rejection != "" {
			response.Unauthorized(w, rejection)
			return
		}

		setRequestUser(r.Context(), claims.UserID)

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verify returns the token claims, or the reason the caller is rejected. A
// non-nil error means the allow-list could not be consulted.
func (m *AuthMiddleware) verify(r *http.Request) (*jwt.Claims, string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, "Authorization header is required", nil
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "Invalid authorization header format", nil
	}

	claims, err := m.jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil, "Invalid or expired token", nil
	}
	if claims.TokenType != jwt.AccessToken {
		return nil, "Invalid token type", nil
	}

	live, err := m.tokenStore.Exists(r.Context(), cache.AccessTokenKind, claims.UserID, claims.TokenID)
	if err != nil {
		return nil, "", err
	}
	if !live {
		return nil, "Token has been revoked", nil
	}

	return claims, "", nil
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// GetRoleFromContext extracts the role name carried by the access token
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
