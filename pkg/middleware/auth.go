package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// publicPaths não exigem token
var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// TokenValidator verifica tokens emitidos pela aplicação principal
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// HMACTokenValidator valida tokens assinados com a chave secreta compartilhada
type HMACTokenValidator struct {
	secretKey []byte
}

// NewTokenValidator cria um validador para a chave secreta informada
func NewTokenValidator(secretKey string) *HMACTokenValidator {
	return &HMACTokenValidator{secretKey: []byte(secretKey)}
}

func (v *HMACTokenValidator) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Authorization header is required", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token is required", nil)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					apiErrors.WriteError(w, apiErrors.ErrExpiredToken, "Token expirado", nil)
					return
				}
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				return
			}

			if !claims.UserActive {
				apiErrors.WriteError(w, apiErrors.ErrUserDisabled, "Usuário desativado", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims adiciona as claims do usuário ao contexto
func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, ContextKeyUser, claims)
}

// ClaimsFromContext retorna as claims do usuário autenticado
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok
}
