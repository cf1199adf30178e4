package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrNotFound            = "VAL_004" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_005" // Método não permitido

	// Erros de análise
	ErrAccountNotFound = "ANL_001" // Conta não encontrada
	ErrReportNotFound  = "ANL_002" // Nenhuma análise salva para a conta

	// Erros do servidor
	ErrInternalServer     = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation  = "SRV_002" // Erro de operação de banco de dados
	ErrServiceUnavailable = "SRV_005" // Dependência indisponível
)

var httpStatusMap = map[string]int{
	ErrUserDisabled:          http.StatusForbidden,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrAccountNotFound:       http.StatusNotFound,
	ErrReportNotFound:        http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrServiceUnavailable:    http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP do código de erro; códigos desconhecidos viram 500
func StatusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}
