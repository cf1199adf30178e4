package middleware

import (
	"net/http"
	"slices"

	"github.com/vfg2006/traffic-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-advisor-api/pkg/log"
)

// Perfis emitidos no token pela aplicação de gestão de tráfego
const (
	RoleAdmin      = 1
	RoleSupervisor = 2
	RoleClient     = 3 // só enxerga as contas vinculadas ao usuário
)

// RoleMiddleware libera a rota apenas para os perfis informados.
// Depende das claims colocadas no contexto pelo AuthMiddleware.
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("role: request without claims")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, claims.UserRoleID) {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"user_id":   claims.UserID,
					"user_role": claims.UserRoleID,
					"path":      r.URL.Path,
				}).Warn("role: access denied")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Seu perfil não tem acesso a este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly protege as operações que disparam jobs de análise
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin})
}

// AdminOrSupervisor protege as consultas operacionais, como o status dos jobs
func AdminOrSupervisor() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin, RoleSupervisor})
}

// AllRoles libera a rota para qualquer perfil autenticado; o escopo por conta fica a cargo do handler
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin, RoleSupervisor, RoleClient})
}
