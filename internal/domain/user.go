package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as informações do usuário emitidas pela aplicação principal no token JWT
type Claims struct {
	UserID       int
	UserName     string
	UserEmail    string
	UserActive   bool
	UserRoleID   int
	UserAccounts []string
	jwt.RegisteredClaims
}

// CanAccessAccount indica se o usuário tem acesso à conta informada
func (c *Claims) CanAccessAccount(accountID string, unrestricted bool) bool {
	if unrestricted {
		return true
	}
	for _, id := range c.UserAccounts {
		if id == accountID {
			return true
		}
	}
	return false
}
