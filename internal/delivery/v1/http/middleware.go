package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/swiftpos/backend/internal/auth"
	"github.com/swiftpos/backend/internal/cfg"
	"github.com/swiftpos/backend/pkg/logger"
)

type claimsCtxKey struct{}

// Пути, открытые без аутентификации.
var publicPaths = []string{
	"/login",
	"/api/auth",
	"/favicon.ico",
}

// Префиксы статики, пропускаемые без проверок.
var staticPrefixes = []string{
	"/static",
	"/public",
}

// Префиксы, требующие роли ADMIN.
var adminPrefixes = []string{
	"/inventory",
	"/users",
	"/api/users",
}

// AccessGate — единственная точка авторизации: предикат по пути запроса
// и роли из сессионного токена, без состояния между запросами.
// Неаутентифицированный запрос перенаправляется на /login, аутентифицированный
// без прав администратора на административном пути — на /pos.
type AccessGate struct {
	cfg    *cfg.AuthCfg
	logger logger.Logger
}

func NewAccessGate(cfg *cfg.AuthCfg, logger logger.Logger) *AccessGate {
	return &AccessGate{cfg: cfg, logger: logger}
}

func (g *AccessGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		for _, prefix := range staticPrefixes {
			if strings.HasPrefix(path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		for _, p := range publicPaths {
			if path == p || strings.HasPrefix(path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		tokenStr := g.extractToken(r)
		if tokenStr == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		claims, err := auth.ParseToken(g.cfg.JWTSecret, tokenStr)
		if err != nil {
			g.logger.Debugf("rejecting request to %s: %v", path, err)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		for _, prefix := range adminPrefixes {
			if strings.HasPrefix(path, prefix) && claims.Role != auth.RoleAdmin {
				http.Redirect(w, r, "/pos", http.StatusFound)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// extractToken читает токен из сессионной cookie либо из заголовка Authorization.
func (g *AccessGate) extractToken(r *http.Request) string {
	if c, err := r.Cookie(g.cfg.CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, claims)
}

// ClaimsFromCtx возвращает claims аутентифицированного запроса, если они есть.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*auth.Claims)
	return claims, ok
}
