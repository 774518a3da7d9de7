package http

import (
	"context"
	"net/http"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/internal/catalog/service"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/aklatan/buklat/pkg/httpx"
	"github.com/aklatan/buklat/pkg/slogx"
)

type ctxKey string

// ctxKeyUser carries the resolved domain.User for authenticated routes.
const ctxKeyUser ctxKey = "catalog.user"

// UserFromContext returns the authenticated user placed there by RequireUser.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(ctxKeyUser).(domain.User)
	return user, ok
}

// RequireUser resolves the bearer token into an active account before the
// wrapped handler runs. The user lands in the request context; the user id
// also feeds the per-user rate limiter key.
func RequireUser(auth *service.Auth) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := httpx.BearerToken(r)
			if token == "" {
				apierr.Write(w, apierr.InvalidToken("Not authenticated."))
				return
			}

			user, err := auth.CurrentUser(ctx, token)
			if err != nil {
				log.Info("token rejected", "err", err)
				apierr.Write(w, err)
				return
			}

			if _, err := service.RequireActive(user); err != nil {
				log.Info("inactive account rejected", "username", user.Username)
				apierr.Write(w, err)
				return
			}

			ctx = context.WithValue(ctx, ctxKeyUser, user)
			ctx = httpx.ContextWithUserID(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
