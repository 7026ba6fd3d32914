// Package middleware HTTP middleware: аутентификация, request-id,
// метрики и rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer JWT (HS256) и кладет ID пользователя из claim sub
// в контекст запроса. Запросы без валидного токена получают 401.
func Auth(secret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				logger.Warn("Auth: missing bearer token: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "отсутствует bearer токен")
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Auth: invalid token: %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, "некорректный токен")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Warn("Auth: invalid claims: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "некорректный токен")
				return
			}

			// sub приходит числом (json декодирует в float64)
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				logger.Warn("Auth: missing sub claim: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "некорректный токен")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, int64(sub))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
