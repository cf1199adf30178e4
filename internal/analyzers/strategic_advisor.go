package analyzers

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/internal/metrics"
	"github.com/vfg2006/traffic-advisor-api/internal/scoring"
	"github.com/vfg2006/traffic-advisor-api/pkg/utils"
)

const (
	seasonalHorizonDays     = 45
	seasonalUrgentDays      = 14
	seasonalRampDays        = 14
	seasonalBudgetPercent   = 25.0
	rebalanceROASRatio      = 1.5
	rebalanceMinSpend       = 100.0
	rebalanceShare          = 0.25
	marginScalingFactor     = 1.5
	marginScalingPercent    = 20.0
	retentionMinOrders      = 20
	retentionLowShare       = 0.2
	acquisitionHighShare    = 0.6
	customerHistoryDays     = 90
	rebalanceChangePercent  = -25.0
	rebalanceMaxGapPercent  = 100.0
	seasonalMinSpendToScale = 0.0
)

// seasonalEvent é uma data comemorativa relevante para o varejo
type seasonalEvent struct {
	name string
	date time.Time
}

// StrategicAdvisor avalia gatilhos estratégicos independentes: sazonalidade, rebalanceamento
// entre canais, escala habilitada por margem e equilíbrio entre aquisição e retenção
type StrategicAdvisor struct {
	reader DataReader
	opts   Options
}

// NewStrategicAdvisor cria uma nova instância do conselheiro estratégico
func NewStrategicAdvisor(reader DataReader, opts Options) *StrategicAdvisor {
	return &StrategicAdvisor{
		reader: reader,
		opts:   opts.withDefaults(),
	}
}

func (a *StrategicAdvisor) Name() string {
	return StrategicAdvisorName
}

func (a *StrategicAdvisor) Analyze(ctx context.Context, accountID string) (domain.AnalyzerOutput, error) {
	now := a.opts.Now()

	series, err := loadPlatformSeries(ctx, a.reader, accountID, now.AddDate(0, 0, -a.opts.LookbackDays))
	if err != nil {
		return domain.NoData(), fmt.Errorf("strategic_advisor: %w", err)
	}

	orders, err := a.reader.ListOrders(ctx, accountID, domain.OrderFilter{
		Statuses: a.opts.OrderStatuses,
		From:     now.AddDate(0, 0, -customerHistoryDays),
		To:       now,
	})
	if err != nil {
		return domain.NoData(), fmt.Errorf("strategic_advisor: failed to list orders: %w", err)
	}

	if len(series) == 0 && len(orders) == 0 {
		return domain.NoData(), nil
	}

	products, err := a.reader.ListProducts(ctx, accountID)
	if err != nil {
		return domain.NoData(), fmt.Errorf("strategic_advisor: failed to list products: %w", err)
	}

	byPlatform, total := metrics.CombinePlatforms(series)
	recentOrders := ordersSince(orders, now.AddDate(0, 0, -velocityWindowDays))

	output := domain.AnalyzerOutput{HasData: true}
	triggers := []func() *domain.ActionableRecommendation{
		func() *domain.ActionableRecommendation { return a.seasonalShift(now, total) },
		func() *domain.ActionableRecommendation { return a.channelRebalance(byPlatform) },
		func() *domain.ActionableRecommendation { return a.marginScaling(total, recentOrders, products) },
		func() *domain.ActionableRecommendation { return a.acquisitionRetention(orders) },
	}

	for _, trigger := range triggers {
		if rec := trigger(); rec != nil {
			output.ActionableRecommendations = append(output.ActionableRecommendations, *rec)
		}
	}

	output.Summary = fmt.Sprintf("%d gatilhos estratégicos acionados", len(output.ActionableRecommendations))

	return output, nil
}

// seasonalShift sugere aumentar o orçamento antes da próxima data comemorativa dentro do horizonte
func (a *StrategicAdvisor) seasonalShift(now time.Time, total domain.WindowSet) *domain.ActionableRecommendation {
	if total.Last30.Metrics.Spend <= seasonalMinSpendToScale {
		return nil
	}

	event, daysUntil, ok := nextSeasonalEvent(now)
	if !ok {
		return nil
	}

	priority := domain.PriorityImportant
	if daysUntil <= seasonalUrgentDays {
		priority = domain.PriorityUrgent
	}

	start := event.date.AddDate(0, 0, -seasonalRampDays)
	if start.Before(now) {
		start = now
	}

	dailySpend := total.Last30.DailyAverageSpend()
	confidence := scoring.RecommendationConfidence(scoring.RecommendationSignals{
		SampleSize:    int(math.Round(total.Last30.Metrics.Conversions)),
		DaysCovered:   total.Last90.Days,
		ChangePercent: seasonalBudgetPercent,
	})

	return &domain.ActionableRecommendation{
		ID:       newRecommendationID("strat"),
		Priority: priority,
		Category: domain.CategoryStrategy,
		Headline: fmt.Sprintf("Preparar orçamento para %s (em %d dias)", event.name, daysUntil),
		Explanation: fmt.Sprintf(
			"%s acontece em %s. Aumente o orçamento gradualmente a partir de %s para capturar a demanda sazonal.",
			event.name, event.date.Format("02/01/2006"), start.Format("02/01/2006"),
		),
		DataPoints: []string{
			fmt.Sprintf("Investimento médio 30d: %s/dia", formatCurrency(dailySpend)),
			fmt.Sprintf("ROAS 30d: %.2fx", total.Last30.Metrics.ROAS()),
		},
		Action: domain.BudgetChangeAction{
			Platform:      "all",
			ChangePercent: seasonalBudgetPercent,
			Amount:        utils.RoundWithTwoDecimalPlace(dailySpend * seasonalBudgetPercent / 100),
		},
		Confidence:      scoring.ScoreToInt(confidence.Score),
		EstimatedImpact: fmt.Sprintf("+%s/dia em investimento durante a campanha", formatCurrency(dailySpend*seasonalBudgetPercent/100)),
		Platform:        "all",
		Source:          StrategicAdvisorName,
		Tags:            []string{"sazonalidade", "orcamento"},
	}
}

// nextSeasonalEvent retorna a data comemorativa mais próxima dentro do horizonte
func nextSeasonalEvent(now time.Time) (seasonalEvent, int, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	events := append(seasonalCalendar(today.Year(), now.Location()), seasonalCalendar(today.Year()+1, now.Location())...)
	sort.Slice(events, func(i, j int) bool { return events[i].date.Before(events[j].date) })

	for _, event := range events {
		days := int(math.Round(event.date.Sub(today).Hours() / 24))
		if days <= 0 {
			continue
		}
		if days > seasonalHorizonDays {
			return seasonalEvent{}, 0, false
		}
		return event, days, true
	}

	return seasonalEvent{}, 0, false
}

func seasonalCalendar(year int, loc *time.Location) []seasonalEvent {
	thanksgiving := nthWeekday(year, time.November, time.Thursday, 4, loc)

	return []seasonalEvent{
		{name: "Dia das Mães", date: nthWeekday(year, time.May, time.Sunday, 2, loc)},
		{name: "Dia dos Namorados", date: time.Date(year, time.June, 12, 0, 0, 0, 0, loc)},
		{name: "Dia dos Pais", date: nthWeekday(year, time.August, time.Sunday, 2, loc)},
		{name: "Black Friday", date: thanksgiving.AddDate(0, 0, 1)},
		{name: "Natal", date: time.Date(year, time.December, 25, 0, 0, 0, 0, loc)},
	}
}

func nthWeekday(year int, month time.Month, weekday time.Weekday, n int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// channelRebalance move parte da verba do canal de pior ROAS para o de melhor ROAS
func (a *StrategicAdvisor) channelRebalance(byPlatform map[string]domain.WindowSet) *domain.ActionableRecommendation {
	active := make([]string, 0, len(byPlatform))
	for _, platform := range metrics.Platforms(byPlatform) {
		if byPlatform[platform].Last30.Metrics.Spend > 0 {
			active = append(active, platform)
		}
	}
	if len(active) < 2 {
		return nil
	}

	best, worst := active[0], active[0]
	for _, platform := range active[1:] {
		roas := byPlatform[platform].Last30.Metrics.ROAS()
		if roas > byPlatform[best].Last30.Metrics.ROAS() {
			best = platform
		}
		if roas < byPlatform[worst].Last30.Metrics.ROAS() {
			worst = platform
		}
	}

	bestWindows, worstWindows := byPlatform[best], byPlatform[worst]
	bestROAS, worstROAS := bestWindows.Last30.Metrics.ROAS(), worstWindows.Last30.Metrics.ROAS()
	worstSpend := worstWindows.Last30.Metrics.Spend

	if best == worst || !(bestROAS > worstROAS*rebalanceROASRatio) || !(worstSpend > rebalanceMinSpend) {
		return nil
	}

	gap := rebalanceMaxGapPercent
	if worstROAS > 0 {
		gap = math.Min(rebalanceMaxGapPercent, (bestROAS-worstROAS)/worstROAS*100)
	}

	amount := worstSpend * rebalanceShare
	confidence := scoring.RecommendationConfidence(scoring.RecommendationSignals{
		SampleSize:           int(math.Round(bestWindows.Last30.Metrics.Conversions + worstWindows.Last30.Metrics.Conversions)),
		DaysCovered:          max(bestWindows.Last30.Days, worstWindows.Last30.Days),
		MultiPeriodValidated: bestWindows.Last7.Metrics.ROAS() > worstWindows.Last7.Metrics.ROAS(),
		ChangePercent:        gap,
	})

	return &domain.ActionableRecommendation{
		ID:       newRecommendationID("strat"),
		Priority: domain.PriorityImportant,
		Category: domain.CategoryBudget,
		Headline: fmt.Sprintf("Mover %s de %s para %s", formatCurrency(amount), platformLabel(worst), platformLabel(best)),
		Explanation: fmt.Sprintf(
			"%s entrega ROAS de %.2fx contra %.2fx em %s nos últimos 30 dias. Realocar 25%% da verba do canal mais fraco tende a elevar o retorno total.",
			platformLabel(best), bestROAS, worstROAS, platformLabel(worst),
		),
		DataPoints: []string{
			fmt.Sprintf("ROAS %s 30d: %.2fx", platformLabel(best), bestROAS),
			fmt.Sprintf("ROAS %s 30d: %.2fx", platformLabel(worst), worstROAS),
			fmt.Sprintf("Investimento %s 30d: %s", platformLabel(worst), formatCurrency(worstSpend)),
		},
		Action: domain.BudgetChangeAction{
			Platform:       worst,
			ChangePercent:  rebalanceChangePercent,
			Amount:         utils.RoundWithTwoDecimalPlace(amount),
			TargetPlatform: best,
		},
		Confidence:      scoring.ScoreToInt(confidence.Score),
		EstimatedImpact: fmt.Sprintf("~%s em receita adicional por mês", formatCurrency(amount*(bestROAS-worstROAS))),
		Platform:        worst,
		Source:          StrategicAdvisorName,
		Tags:            []string{"rebalanceamento", "multicanal"},
	}
}

// marginScaling recomenda escalar quando o ROAS está bem acima do ponto de equilíbrio dado pela margem
func (a *StrategicAdvisor) marginScaling(total domain.WindowSet, orders []domain.Order, products []domain.Product) *domain.ActionableRecommendation {
	if total.Last30.Metrics.Spend <= 0 {
		return nil
	}

	margin, ok := blendedMargin(orders, products)
	if !ok || margin <= 0 {
		return nil
	}

	breakEven := 1 / margin
	roas := total.Last30.Metrics.ROAS()
	if roas < breakEven*marginScalingFactor {
		return nil
	}

	trend := metrics.PerformanceTrajectory(total)
	if trend == domain.PerformanceDeclining {
		return nil
	}

	dailySpend := total.Last30.DailyAverageSpend()
	confidence := scoring.RecommendationConfidence(scoring.RecommendationSignals{
		SampleSize:           int(math.Round(total.Last30.Metrics.Conversions)),
		DaysCovered:          total.Last90.Days,
		MultiPeriodValidated: trend == domain.PerformanceImproving,
		ChangePercent:        (roas - breakEven) / breakEven * 100,
	})

	return &domain.ActionableRecommendation{
		ID:       newRecommendationID("strat"),
		Priority: domain.PriorityImportant,
		Category: domain.CategoryBudget,
		Headline: fmt.Sprintf("Escalar investimento em %.0f%%: ROAS %.2fx com equilíbrio em %.2fx", marginScalingPercent, roas, breakEven),
		Explanation: fmt.Sprintf(
			"Com margem média de %.0f%%, cada real investido se paga a partir de ROAS %.2fx. O ROAS atual deixa folga para ampliar a verba.",
			margin*100, breakEven,
		),
		DataPoints: []string{
			fmt.Sprintf("Margem média: %.0f%%", margin*100),
			fmt.Sprintf("ROAS de equilíbrio: %.2fx", breakEven),
			fmt.Sprintf("ROAS 30d: %.2fx", roas),
		},
		Action: domain.BudgetChangeAction{
			Platform:      "all",
			ChangePercent: marginScalingPercent,
			Amount:        utils.RoundWithTwoDecimalPlace(dailySpend * marginScalingPercent / 100),
		},
		Confidence:      scoring.ScoreToInt(confidence.Score),
		EstimatedImpact: fmt.Sprintf("~%s/dia em receita adicional", formatCurrency(dailySpend*marginScalingPercent/100*roas)),
		Platform:        "all",
		Source:          StrategicAdvisorName,
		Tags:            []string{"margem", "escala"},
	}
}

// blendedMargin calcula a margem média ponderada pela receita dos itens com custo conhecido
func blendedMargin(orders []domain.Order, products []domain.Product) (float64, bool) {
	costs := make(map[string]float64, len(products))
	for _, p := range products {
		if p.Cost > 0 {
			costs[p.ID] = p.Cost
		}
	}

	var revenue, cost float64
	for _, order := range orders {
		for _, item := range order.Items {
			unitCost, ok := costs[item.ProductID]
			if !ok {
				continue
			}
			total := domain.Finite(item.Total)
			if total == 0 {
				total = domain.Finite(item.Quantity * item.Price)
			}
			revenue += total
			cost += unitCost * domain.Finite(item.Quantity)
		}
	}

	if revenue <= 0 {
		return 0, false
	}

	return (revenue - cost) / revenue, true
}

// acquisitionRetention compara a receita de clientes recorrentes com a receita total
func (a *StrategicAdvisor) acquisitionRetention(orders []domain.Order) *domain.ActionableRecommendation {
	ordersByCustomer := make(map[string]int)
	identified := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.CustomerID == "" {
			continue
		}
		ordersByCustomer[order.CustomerID]++
		identified = append(identified, order)
	}

	if len(identified) < retentionMinOrders {
		return nil
	}

	var totalRevenue, repeatRevenue float64
	for _, order := range identified {
		revenue := orderRevenue(order)
		totalRevenue += revenue
		if ordersByCustomer[order.CustomerID] > 1 {
			repeatRevenue += revenue
		}
	}
	if totalRevenue <= 0 {
		return nil
	}

	share := repeatRevenue / totalRevenue

	var (
		strategy string
		headline string
		steps    []string
	)

	switch {
	case share < retentionLowShare:
		strategy = "retention"
		headline = fmt.Sprintf("Investir em retenção: só %.0f%% da receita vem de clientes recorrentes", share*100)
		steps = []string{
			"Criar público personalizado com compradores dos últimos 90 dias",
			"Ativar campanha de remarketing com oferta de recompra",
			"Separar até 15% do orçamento para clientes existentes",
		}
	case share > acquisitionHighShare:
		strategy = "acquisition"
		headline = fmt.Sprintf("Investir em aquisição: %.0f%% da receita depende de clientes recorrentes", share*100)
		steps = []string{
			"Criar públicos semelhantes a partir dos melhores clientes",
			"Excluir compradores recentes das campanhas de prospecção",
			"Testar criativos voltados a quem ainda não conhece a marca",
		}
	default:
		return nil
	}

	confidence := scoring.RecommendationConfidence(scoring.RecommendationSignals{
		SampleSize:  len(identified),
		DaysCovered: customerHistoryDays,
	})

	return &domain.ActionableRecommendation{
		ID:       newRecommendationID("strat"),
		Priority: domain.PriorityInfo,
		Category: domain.CategoryStrategy,
		Headline: headline,
		Explanation: fmt.Sprintf(
			"Nos últimos %d dias, %d clientes identificados fizeram %d pedidos. Clientes recorrentes responderam por %.0f%% da receita.",
			customerHistoryDays, len(ordersByCustomer), len(identified), share*100,
		),
		DataPoints: []string{
			fmt.Sprintf("Pedidos identificados: %d", len(identified)),
			fmt.Sprintf("Clientes únicos: %d", len(ordersByCustomer)),
			fmt.Sprintf("Receita recorrente: %.0f%%", share*100),
		},
		Action: domain.StrategyAction{
			Strategy: strategy,
			Steps:    steps,
		},
		Confidence: scoring.ScoreToInt(confidence.Score),
		Platform:   "all",
		Source:     StrategicAdvisorName,
		Tags:       []string{"clientes", strategy},
	}
}

func orderRevenue(order domain.Order) float64 {
	if total := domain.Finite(order.Total); total > 0 {
		return total
	}

	var revenue float64
	for _, item := range order.Items {
		revenue += domain.Finite(item.Total)
	}
	return revenue
}

func ordersSince(orders []domain.Order, since time.Time) []domain.Order {
	recent := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if !order.CreatedAt.Before(since) {
			recent = append(recent, order)
		}
	}
	return recent
}
