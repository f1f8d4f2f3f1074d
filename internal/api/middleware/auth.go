package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// Claims полезная нагрузка токена доступа
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator проверяет bearer-токены HS256 и кладет Principal в контекст.
// Разрешения берутся из политики по роли, а не из токена
type Authenticator struct {
	secret   []byte
	issuer   string
	resolver PrincipalResolver
	logger   Logger
}

func NewAuthenticator(secret, issuer string, resolver PrincipalResolver, logger Logger) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}
	return &Authenticator{
		secret:   []byte(secret),
		issuer:   issuer,
		resolver: resolver,
		logger:   logger,
	}, nil
}

// Middleware требует валидный токен, иначе 401
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.Authenticate(r)
		if err != nil {
			a.logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// Authenticate извлекает и проверяет токен из заголовка Authorization
func (a *Authenticator) Authenticate(r *http.Request) (*domain.Principal, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	claims, err := a.ParseToken(strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user_id is not a uuid", ErrInvalidToken)
	}

	return a.resolver.PrincipalFor(userID, claims.Username, claims.Role), nil
}

// ParseToken проверяет подпись, издателя и срок действия
func (a *Authenticator) ParseToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return a.secret, nil
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// IssueToken подписывает токен для пользователя.
// Выдача токенов вне сервиса, используется в тестах и локальной отладке
func (a *Authenticator) IssueToken(userID uuid.UUID, username, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID.String(),
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// WithPrincipal кладет пользователя в контекст
func WithPrincipal(ctx context.Context, principal *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipal достает пользователя из контекста
func GetPrincipal(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*domain.Principal)
	return principal, ok && principal != nil
}
