package metrics

import (
	"sort"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

// Aggregate soma os contadores das linhas diárias. Valores não finitos ou negativos são tratados como zero.
func Aggregate(rows []domain.DailyPerformance) domain.PeriodMetrics {
	var m domain.PeriodMetrics
	for _, row := range rows {
		m.Spend += nonNegative(row.Spend)
		m.Revenue += nonNegative(row.Revenue)
		m.Clicks += nonNegative(row.Clicks)
		m.Impressions += nonNegative(row.Impressions)
		m.Conversions += nonNegative(row.Conversions)
	}
	return m
}

// nonNegative zera contadores inválidos (NaN, ±Inf ou negativos)
func nonNegative(v float64) float64 {
	v = domain.Finite(v)
	if v < 0 {
		return 0
	}
	return v
}

// Combine soma dois períodos contador a contador
func Combine(a, b domain.PeriodMetrics) domain.PeriodMetrics {
	return domain.PeriodMetrics{
		Spend:       a.Spend + b.Spend,
		Revenue:     a.Revenue + b.Revenue,
		Clicks:      a.Clicks + b.Clicks,
		Impressions: a.Impressions + b.Impressions,
		Conversions: a.Conversions + b.Conversions,
	}
}

// LastN retorna as últimas n linhas da série (ou todas, se houver menos)
func LastN(rows []domain.DailyPerformance, n int) []domain.DailyPerformance {
	if n <= 0 {
		return nil
	}
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

// BuildWindow agrega as últimas `days` linhas de uma série ordenada por data
func BuildWindow(label string, rows []domain.DailyPerformance, days int) domain.Window {
	slice := LastN(rows, days)
	return domain.Window{
		Label:   label,
		Days:    len(slice),
		Metrics: Aggregate(slice),
	}
}

// BuildWindows monta as janelas de 7, 30 e 90 dias
func BuildWindows(rows []domain.DailyPerformance) domain.WindowSet {
	sorted := SortByDate(rows)
	return domain.WindowSet{
		Last7:  BuildWindow(domain.Window7d, sorted, 7),
		Last30: BuildWindow(domain.Window30d, sorted, 30),
		Last90: BuildWindow(domain.Window90d, sorted, 90),
	}
}

// CombineWindows soma duas janelas de mesmo rótulo. Days passa a ser a maior cobertura entre as duas.
func CombineWindows(a, b domain.Window) domain.Window {
	label := a.Label
	if label == "" {
		label = b.Label
	}
	return domain.Window{
		Label:   label,
		Days:    max(a.Days, b.Days),
		Metrics: Combine(a.Metrics, b.Metrics),
	}
}

func CombineWindowSets(a, b domain.WindowSet) domain.WindowSet {
	return domain.WindowSet{
		Last7:  CombineWindows(a.Last7, b.Last7),
		Last30: CombineWindows(a.Last30, b.Last30),
		Last90: CombineWindows(a.Last90, b.Last90),
	}
}

// CombinePlatforms soma primeiro as contas de cada plataforma e depois as plataformas entre si.
// Retorna as janelas por plataforma e o total geral.
func CombinePlatforms(series []domain.PlatformSeries) (map[string]domain.WindowSet, domain.WindowSet) {
	byPlatform := make(map[string]domain.WindowSet)
	for _, s := range series {
		windows := BuildWindows(s.Rows)
		byPlatform[s.AdAccount.Platform] = CombineWindowSets(byPlatform[s.AdAccount.Platform], windows)
	}

	var total domain.WindowSet
	for _, platform := range Platforms(byPlatform) {
		total = CombineWindowSets(total, byPlatform[platform])
	}

	return byPlatform, total
}

// Platforms retorna as chaves do mapa em ordem alfabética
func Platforms[T any](byPlatform map[string]T) []string {
	keys := make([]string, 0, len(byPlatform))
	for k := range byPlatform {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortByDate retorna uma cópia da série em ordem crescente de data
func SortByDate(rows []domain.DailyPerformance) []domain.DailyPerformance {
	sorted := make([]domain.DailyPerformance, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// MergeByDate soma as linhas de várias séries que caem no mesmo dia
func MergeByDate(series ...[]domain.DailyPerformance) []domain.DailyPerformance {
	byDate := make(map[string]*domain.DailyPerformance)
	for _, rows := range series {
		for _, row := range rows {
			key := row.Date.Format("2006-01-02")
			acc, ok := byDate[key]
			if !ok {
				acc = &domain.DailyPerformance{Date: row.Date}
				byDate[key] = acc
			}
			acc.Spend += nonNegative(row.Spend)
			acc.Revenue += nonNegative(row.Revenue)
			acc.Clicks += nonNegative(row.Clicks)
			acc.Impressions += nonNegative(row.Impressions)
			acc.Conversions += nonNegative(row.Conversions)
		}
	}

	merged := make([]domain.DailyPerformance, 0, len(byDate))
	for _, row := range byDate {
		merged = append(merged, *row)
	}
	return SortByDate(merged)
}
