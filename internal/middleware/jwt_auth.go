package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jobee/jobee-api/internal/auth"
	"github.com/jobee/jobee-api/internal/user/domain"
)

// UserFetcher loads the account behind a verified token so deleted users are
// rejected even while their tokens are still unexpired.
type UserFetcher interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// JWTAuth verifies the Bearer token and stores the caller's id, role and name
// in the request context.
func JWTAuth(jwtManager *auth.JWTManager, users UserFetcher, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w, "Please login to access this resource")
				return
			}

			claims, err := jwtManager.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeUnauthorized(w, "Session is invalid or has expired, please login again")
				return
			}

			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Warn("token for unknown user", zap.String("userID", claims.UserID), zap.Error(err))
				writeUnauthorized(w, "Session is invalid or has expired, please login again")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, user.ID)
			ctx = context.WithValue(ctx, UserRoleCtxKey, user.Role)
			ctx = context.WithValue(ctx, UserNameCtxKey, user.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
