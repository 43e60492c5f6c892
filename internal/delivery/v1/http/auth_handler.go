package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/swiftpos/backend/internal/auth"
	"github.com/swiftpos/backend/internal/cfg"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

// AuthHandler выдает сессионные токены по учетным данным из конфигурации.
// Шлюз доступа только потребляет роль из токена; обновления сессии нет.
type AuthHandler struct {
	cfg    *cfg.AuthCfg
	logger logger.Logger
}

func NewAuthHandler(cfg *cfg.AuthCfg, logger logger.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// login
//
//	@Summary	Вход по логину и паролю
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	loginResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/api/auth/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	role, ok := h.resolveRole(req.Username, req.Password)
	if !ok {
		h.logger.Warnf("failed login attempt for %q", req.Username)
		WriteError(w, e.ErrInvalidCredentials)
		return
	}

	token, err := auth.IssueToken(h.cfg.JWTSecret, req.Username, role, h.cfg.TokenTTL)
	if err != nil {
		h.logger.Errorf(err, "failed to issue token")
		WriteError(w, e.ErrInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	WriteSuccess(w, http.StatusOK, loginResponse{Token: token, Role: role})
}

func (h *AuthHandler) resolveRole(username, password string) (string, bool) {
	switch username {
	case h.cfg.AdminUser:
		if auth.VerifyPassword(password, h.cfg.AdminPassword) {
			return auth.RoleAdmin, true
		}
	case h.cfg.CashierUser:
		if auth.VerifyPassword(password, h.cfg.CashierPassword) {
			return auth.RoleCashier, true
		}
	}
	return "", false
}
