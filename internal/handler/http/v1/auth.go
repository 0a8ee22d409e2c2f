package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/sirupsen/logrus"
)

const callerKey = "caller"

// Claims - полезная нагрузка токена, выпущенного сервисом идентификации
type Claims struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewToken подписывает токен HS256; используется тестами и локальными утилитами
func NewToken(secret []byte, userID uuid.UUID, role models.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseToken(secret []byte, raw string) (models.Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Caller{}, err
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return models.Caller{}, fmt.Errorf("invalid userId claim: %w", err)
	}
	role := claims.Role
	if role == "" {
		role = models.RoleUser
	}
	return models.Caller{ID: id, Role: role}, nil
}

// AuthMiddleware проверяет Bearer-токен и кладёт вызывающего в контекст gin.
// Нет токена или он невалиден - 401.
func AuthMiddleware(secret []byte, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authorization required"})
			return
		}

		caller, err := parseToken(secret, strings.TrimSpace(raw))
		if err != nil {
			log.WithError(err).WithField("path", c.FullPath()).Warn("Rejected bearer token")
			msg := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: msg})
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireRole пропускает только перечисленные роли; остальным 403
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authorization required"})
			return
		}
		if _, ok := allowed[caller.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "insufficient role"})
			return
		}
		c.Next()
	}
}

func callerFrom(c *gin.Context) (models.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}

// mustCaller используется только за AuthMiddleware
func mustCaller(c *gin.Context) models.Caller {
	caller, _ := callerFrom(c)
	return caller
}
