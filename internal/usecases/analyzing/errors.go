package analyzing

import (
	"errors"
	"fmt"
)

var (
	ErrAccountIDRequired = errors.New("account ID is required")
	ErrAccountNotFound   = errors.New("account not found")
	ErrReportNotFound    = errors.New("analysis report not found")
	ErrSaveReport        = errors.New("error saving analysis report")

	// Falhas de um analisador individual, convertidas em resultado sem dados
	ErrAnalyzerPanic   = errors.New("analyzer panicked")
	ErrAnalyzerTimeout = errors.New("analyzer timed out")
)

// AnalyzerError é a falha de um analisador para uma conta
type AnalyzerError struct {
	Analyzer  string
	AccountID string
	Err       error
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("analyzer %s failed for account %s: %v", e.Analyzer, e.AccountID, e.Err)
}

// Unwrap retorna o erro subjacente
func (e *AnalyzerError) Unwrap() error {
	return e.Err
}
