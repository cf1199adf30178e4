package analyzing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

const (
	defaultSuggestionConfidence = 50
	dedupeKeyRunes              = 100
)

var (
	urgentMarkers    = []string{"🚨", "crítico", "critical", "crash"}
	importantMarkers = []string{"⚠️", "atenção", "warning", "declining", "queda"}
)

// mergeResults consolida os resultados na ordem dos analisadores
func mergeResults(accountID string, results []analyzerResult) *domain.UnifiedAnalysis {
	analysis := &domain.UnifiedAnalysis{
		Suggestions:               make([]domain.Suggestion, 0),
		ActionableRecommendations: make([]domain.ActionableRecommendation, 0),
		Results:                   make(map[string]domain.AnalyzerReport, len(results)),
	}

	suggestions := make([]domain.Suggestion, 0)
	for _, result := range results {
		analysis.HasData = analysis.HasData || result.output.HasData

		analysis.Results[result.name] = domain.AnalyzerReport{
			HasData: result.output.HasData,
			Summary: result.output.Summary,
			Metadata: domain.AnalyzerMetadata{
				AnalyzedAt: result.startedAt,
				DurationMs: result.duration.Milliseconds(),
				Source:     result.name,
				AccountID:  accountID,
			},
		}

		for i, raw := range result.output.Suggestions {
			suggestions = append(suggestions, normalizeSuggestion(result.name, i, raw))
		}
		analysis.ActionableRecommendations = append(analysis.ActionableRecommendations, result.output.ActionableRecommendations...)
	}

	analysis.Suggestions = dedupeSuggestions(suggestions)

	sort.SliceStable(analysis.Suggestions, func(i, j int) bool {
		a, b := analysis.Suggestions[i], analysis.Suggestions[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Confidence > b.Confidence
	})

	sort.SliceStable(analysis.ActionableRecommendations, func(i, j int) bool {
		a, b := analysis.ActionableRecommendations[i], analysis.ActionableRecommendations[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Confidence > b.Confidence
	})

	analysis.Summary = summarize(analysis.Suggestions, analysis.ActionableRecommendations)
	analysis.Summary.AnalyzersRun = len(results)

	return analysis
}

// normalizeSuggestion converte a sugestão bruta, preenchendo os campos ausentes com os padrões
func normalizeSuggestion(source string, index int, raw domain.RawSuggestion) domain.Suggestion {
	suggestion := domain.Suggestion{Text: raw.Text}
	if raw.IsStructured() {
		suggestion = *raw.Structured
		if suggestion.Text == "" {
			suggestion.Text = raw.Text
		}
	}

	if suggestion.ID == "" {
		suggestion.ID = fmt.Sprintf("%s_%d", source, index)
	}
	if suggestion.Source == "" {
		suggestion.Source = source
	}
	if suggestion.Priority == 0 {
		suggestion.Priority = inferPriority(suggestion.Text)
	}
	if suggestion.Category == "" {
		suggestion.Category = domain.CategoryOptimization
	}
	if suggestion.Confidence == 0 {
		suggestion.Confidence = defaultSuggestionConfidence
	}

	return suggestion
}

// inferPriority procura marcadores de severidade no texto, sem diferenciar maiúsculas
func inferPriority(text string) int {
	lower := strings.ToLower(text)

	for _, marker := range urgentMarkers {
		if strings.Contains(lower, marker) {
			return domain.PriorityUrgent
		}
	}

	for _, marker := range importantMarkers {
		if strings.Contains(lower, marker) {
			return domain.PriorityImportant
		}
	}

	return domain.PriorityInfo
}

// dedupeSuggestions mantém a primeira sugestão de cada chave de texto
func dedupeSuggestions(suggestions []domain.Suggestion) []domain.Suggestion {
	seen := make(map[string]struct{}, len(suggestions))
	unique := make([]domain.Suggestion, 0, len(suggestions))

	for _, suggestion := range suggestions {
		key := dedupeKey(suggestion.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, suggestion)
	}

	return unique
}

func dedupeKey(text string) string {
	runes := []rune(text)
	if len(runes) > dedupeKeyRunes {
		runes = runes[:dedupeKeyRunes]
	}
	return string(runes)
}

func summarize(suggestions []domain.Suggestion, recommendations []domain.ActionableRecommendation) domain.AnalysisSummary {
	var summary domain.AnalysisSummary

	count := func(priority, confidence int) {
		switch priority {
		case domain.PriorityUrgent:
			summary.Urgent++
		case domain.PriorityImportant:
			summary.Important++
		default:
			summary.Info++
		}
		summary.TopConfidence = max(summary.TopConfidence, confidence)
	}

	for _, s := range suggestions {
		count(s.Priority, s.Confidence)
	}
	for _, r := range recommendations {
		count(r.Priority, r.Confidence)
	}

	return summary
}
