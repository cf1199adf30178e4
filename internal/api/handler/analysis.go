package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/traffic-advisor-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/traffic-advisor-api/pkg/log"
	"github.com/vfg2006/traffic-advisor-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetAccountAnalysis executa a análise unificada ao vivo para a conta
func GetAccountAnalysis(service analyzing.AnalysisService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := authorizedAccountID(w, r)
		if !ok {
			return
		}

		analysis, err := service.Analyze(r.Context(), accountID)
		if err != nil {
			writeAnalysisError(w, r, accountID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(analysis); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetLatestAccountAnalysis retorna o último snapshot salvo pela cron de atualização
func GetLatestAccountAnalysis(service analyzing.AnalysisService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := authorizedAccountID(w, r)
		if !ok {
			return
		}

		entry, err := service.Latest(r.Context(), accountID)
		if err != nil {
			writeAnalysisError(w, r, accountID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// authorizedAccountID lê o ID da rota e verifica se o usuário pode ver a conta.
// Clientes só acessam as contas vinculadas ao token.
func authorizedAccountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if accountID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não informado", nil)
		return "", false
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return "", false
	}

	if !claims.CanAccessAccount(accountID, claims.UserRoleID != middleware.RoleClient) {
		log.ForContext(r.Context()).WithFields(log.Fields{
			"user_id":    claims.UserID,
			"account_id": accountID,
		}).Warn("analysis: account not linked to user")
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem acesso a esta conta", nil)
		return "", false
	}

	return accountID, true
}

func writeAnalysisError(w http.ResponseWriter, r *http.Request, accountID string, err error) {
	switch {
	case errors.Is(err, analyzing.ErrAccountIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não informado", nil)
	case errors.Is(err, analyzing.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)
	case errors.Is(err, analyzing.ErrReportNotFound):
		apiErrors.WriteError(w, apiErrors.ErrReportNotFound, "Nenhuma análise salva para esta conta", nil)
	default:
		log.ForContext(r.Context()).WithError(err).WithField("account_id", accountID).Error("analysis: request failed")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar dados da conta", nil)
	}
}
