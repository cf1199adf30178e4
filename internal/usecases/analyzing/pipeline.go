package analyzing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/pkg/log"
)

// Analyzer é um analisador somente leitura executado pelo pipeline
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, accountID string) (domain.AnalyzerOutput, error)
}

// AnalysisRunner executa todos os analisadores de uma conta e consolida o resultado
type AnalysisRunner interface {
	RunAll(ctx context.Context, accountID string) *domain.UnifiedAnalysis
}

type pipelineState string

const (
	statePending     pipelineState = "PENDING"
	stateRunning     pipelineState = "RUNNING"
	stateAggregating pipelineState = "AGGREGATING"
	stateDone        pipelineState = "DONE"
)

const (
	failureReasonError   = "error"
	failureReasonPanic   = "panic"
	failureReasonTimeout = "timeout"
)

// analyzerResult é o resultado de uma tarefa, já convertido para sem dados em caso de falha
type analyzerResult struct {
	name      string
	output    domain.AnalyzerOutput
	startedAt time.Time
	duration  time.Duration
	err       error
}

// Pipeline executa os analisadores em paralelo para cada chamada, sem estado compartilhado entre chamadas
type Pipeline struct {
	analyzers []Analyzer
	timeout   time.Duration
	metrics   *Metrics
	now       func() time.Time
}

// NewPipeline cria o pipeline. Com timeout zero os analisadores não têm prazo próprio.
func NewPipeline(analyzers []Analyzer, timeout time.Duration, metrics *Metrics) *Pipeline {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &Pipeline{
		analyzers: analyzers,
		timeout:   timeout,
		metrics:   metrics,
		now:       time.Now,
	}
}

// RunAll nunca falha: analisadores com erro, pânico ou timeout entram como resultado sem dados
func (p *Pipeline) RunAll(ctx context.Context, accountID string) *domain.UnifiedAnalysis {
	logger := log.ForContext(ctx).WithField("account_id", accountID)
	logger.WithField("state", statePending).Debug("analysis: run created")

	startedAt := p.now()
	results := make([]analyzerResult, len(p.analyzers))

	logger.WithField("state", stateRunning).Debugf("analysis: running %d analyzers", len(p.analyzers))

	var wg conc.WaitGroup
	for i, analyzer := range p.analyzers {
		wg.Go(func() {
			results[i] = p.runAnalyzer(ctx, analyzer, accountID)
		})
	}
	wg.Wait()

	logger.WithField("state", stateAggregating).Debug("analysis: merging results")

	analysis := mergeResults(accountID, results)
	analysis.Summary.TotalDurationMs = p.now().Sub(startedAt).Milliseconds()
	analysis.Metadata = domain.AnalysisMetadata{
		AccountID:     accountID,
		GeneratedAt:   p.now(),
		CorrelationID: log.GetCorrelationID(ctx),
	}

	p.metrics.observeRun(analysis.HasData)

	logger.WithFields(log.Fields{
		"state":           stateDone,
		"has_data":        analysis.HasData,
		"suggestions":     len(analysis.Suggestions),
		"recommendations": len(analysis.ActionableRecommendations),
		"duration_ms":     analysis.Summary.TotalDurationMs,
	}).Debug("analysis: run finished")

	return analysis
}

func (p *Pipeline) runAnalyzer(ctx context.Context, analyzer Analyzer, accountID string) analyzerResult {
	name := analyzer.Name()

	taskCtx, cancel := ctx, context.CancelFunc(func() {})
	if p.timeout > 0 {
		taskCtx, cancel = context.WithTimeout(ctx, p.timeout)
	}
	defer cancel()

	startedAt := p.now()
	done := make(chan analyzerResult, 1)

	go func() {
		var (
			catcher panics.Catcher
			output  domain.AnalyzerOutput
			err     error
		)

		catcher.Try(func() {
			output, err = analyzer.Analyze(taskCtx, accountID)
		})

		if recovered := catcher.Recovered(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrAnalyzerPanic, recovered.Value)
		}

		done <- analyzerResult{output: output, err: err}
	}()

	var result analyzerResult
	select {
	case result = <-done:
	case <-taskCtx.Done():
		if errors.Is(taskCtx.Err(), context.DeadlineExceeded) {
			result.err = ErrAnalyzerTimeout
		} else {
			result.err = taskCtx.Err()
		}
	}

	result.name = name
	result.startedAt = startedAt
	result.duration = p.now().Sub(startedAt)

	p.metrics.observeAnalyzer(name, result.duration)

	if result.err != nil {
		result.err = &AnalyzerError{Analyzer: name, AccountID: accountID, Err: result.err}
		result.output = domain.NoData()

		p.metrics.observeFailure(name, failureReason(result.err))
		log.ForContext(ctx).WithFields(log.Fields{
			"account_id": accountID,
			"analyzer":   name,
		}).WithError(result.err).Error("analysis: analyzer failed")
	}

	return result
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrAnalyzerPanic):
		return failureReasonPanic
	case errors.Is(err, ErrAnalyzerTimeout):
		return failureReasonTimeout
	default:
		return failureReasonError
	}
}
