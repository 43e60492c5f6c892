package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/swiftpos/backend/pkg/e"
)

const (
	RoleAdmin   = "ADMIN"
	RoleCashier = "CASHIER"
)

// Claims — полезная нагрузка сессионного токена.
// Шлюз доступа читает из нее только роль.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken выдает подписанный HS256-токен с ролью пользователя.
func IssueToken(secret, username, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия токена и возвращает claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, e.ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, e.ErrInvalidToken
	}

	return claims, nil
}

// HashPassword возвращает hex-дайджест sha256 пароля.
func HashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword сравнивает пароль с сохраненным дайджестом за постоянное время.
func VerifyPassword(pw, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(HashPassword(pw)), []byte(digest)) == 1
}
