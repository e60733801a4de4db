// Package middlewarectx содержит HTTP middleware, которые кладут в контекст
// запроса данные для обработчиков, и middleware метрик.
//
// Identity читает токен из заголовка X-Auth-Token. Валидный токен превращается
// в models.Caller в контексте, отсутствующий или невалидный оставляет запрос
// анонимным: решение о 401 принимает обработчик, которому нужна личность.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/content-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/content-platform/internal/lib/sl"
	"github.com/magabrotheeeer/content-platform/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// CallerKey ключ для models.Caller в контексте.
const CallerKey Key = "caller"

// TokenHeader заголовок, в котором клиент передаёт токен.
const TokenHeader = "X-Auth-Token"

// TokenParser разбирает и проверяет токен.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// Identity возвращает middleware, который восстанавливает личность вызывающего из токена.
func Identity(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Identity"

			token := r.Header.Get(TokenHeader)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parser.ParseToken(token)
			if err != nil {
				log.Warn("invalid token, treating request as anonymous",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithCaller(r.Context(), models.Caller{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   models.Role(claims.Role),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCaller возвращает контекст с caller.
func WithCaller(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, CallerKey, caller)
}

// CallerFrom достаёт личность вызывающего. ok == false для анонимного запроса.
func CallerFrom(ctx context.Context) (caller models.Caller, ok bool) {
	caller, ok = ctx.Value(CallerKey).(models.Caller)
	return caller, ok
}
