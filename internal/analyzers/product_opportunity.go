package analyzers

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

const (
	minUnpromotedVelocity  = 0.5
	maxUnpromotedProducts  = 5
	minHighMarginVelocity  = 0.3
	minHighMargin          = 0.4
	maxHighMarginProducts  = 3
	highMarginConfidence   = 65
	maxProductConfidence   = 95
	minProductDailyBudget  = 5.0
	maxProductDailyBudget  = 50.0
	budgetRoundingStep     = 5.0
	expectedConversionRate = 0.3
	minExpectedConversions = 0.5
)

// productStats acumula as vendas de um produto na janela de velocidade
type productStats struct {
	product  domain.Product
	units    float64
	revenue  float64
	velocity float64
	avgPrice float64
	margin   float64
}

// ProductOpportunityAnalyzer encontra produtos que vendem bem mas não aparecem em nenhuma campanha ativa
type ProductOpportunityAnalyzer struct {
	reader DataReader
	opts   Options
}

// NewProductOpportunityAnalyzer cria uma nova instância do analisador de oportunidades de produto
func NewProductOpportunityAnalyzer(reader DataReader, opts Options) *ProductOpportunityAnalyzer {
	return &ProductOpportunityAnalyzer{
		reader: reader,
		opts:   opts.withDefaults(),
	}
}

func (a *ProductOpportunityAnalyzer) Name() string {
	return ProductOpportunityName
}

func (a *ProductOpportunityAnalyzer) Analyze(ctx context.Context, accountID string) (domain.AnalyzerOutput, error) {
	now := a.opts.Now()

	orders, err := a.reader.ListOrders(ctx, accountID, domain.OrderFilter{
		Statuses: a.opts.OrderStatuses,
		From:     now.AddDate(0, 0, -velocityWindowDays),
		To:       now,
	})
	if err != nil {
		return domain.NoData(), fmt.Errorf("product_opportunity: failed to list orders: %w", err)
	}

	if len(orders) == 0 {
		logrus.WithField("account_id", accountID).Debug("product_opportunity: no orders in window")
		return domain.NoData(), nil
	}

	products, err := a.reader.ListProducts(ctx, accountID)
	if err != nil {
		return domain.NoData(), fmt.Errorf("product_opportunity: failed to list products: %w", err)
	}

	identifiers, err := a.reader.ListAdvertisedProductIdentifiers(ctx, accountID)
	if err != nil {
		return domain.NoData(), fmt.Errorf("product_opportunity: failed to list advertised products: %w", err)
	}

	advertised := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		if normalized := normalizeIdentifier(id); normalized != "" {
			advertised[normalized] = struct{}{}
		}
	}

	stats := collectProductStats(orders, products)

	unpromoted := make([]*productStats, 0)
	for _, s := range stats {
		if !isAdvertised(s.product, advertised) {
			unpromoted = append(unpromoted, s)
		}
	}

	output := domain.AnalyzerOutput{HasData: true}
	flagged := make(map[string]struct{})

	for _, s := range topByVelocity(unpromoted, minUnpromotedVelocity, maxUnpromotedProducts) {
		flagged[s.product.ID] = struct{}{}
		output.ActionableRecommendations = append(output.ActionableRecommendations, a.unpromotedRecommendation(s))
	}

	highMargin := make([]*productStats, 0)
	for _, s := range unpromoted {
		if _, ok := flagged[s.product.ID]; ok {
			continue
		}
		if s.margin >= minHighMargin && s.velocity >= minHighMarginVelocity {
			highMargin = append(highMargin, s)
		}
	}
	sort.SliceStable(highMargin, func(i, j int) bool {
		if highMargin[i].margin != highMargin[j].margin {
			return highMargin[i].margin > highMargin[j].margin
		}
		return highMargin[i].velocity > highMargin[j].velocity
	})
	if len(highMargin) > maxHighMarginProducts {
		highMargin = highMargin[:maxHighMarginProducts]
	}
	for _, s := range highMargin {
		output.ActionableRecommendations = append(output.ActionableRecommendations, a.highMarginRecommendation(s))
	}

	output.Summary = fmt.Sprintf(
		"%d produtos vendidos em 30 dias, %d sem anúncio ativo, %d oportunidades",
		len(stats), len(unpromoted), len(output.ActionableRecommendations),
	)

	return output, nil
}

// collectProductStats soma as unidades e a receita de cada produto, em ordem de ID
func collectProductStats(orders []domain.Order, products []domain.Product) []*productStats {
	catalog := make(map[string]domain.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	byProduct := make(map[string]*productStats)
	for _, order := range orders {
		for _, item := range order.Items {
			if item.ProductID == "" {
				continue
			}

			s, ok := byProduct[item.ProductID]
			if !ok {
				product, found := catalog[item.ProductID]
				if !found {
					product = domain.Product{ID: item.ProductID, Name: item.ProductID}
				}
				s = &productStats{product: product}
				byProduct[item.ProductID] = s
			}

			quantity := domain.Finite(item.Quantity)
			total := domain.Finite(item.Total)
			if total == 0 {
				total = quantity * domain.Finite(item.Price)
			}

			s.units += quantity
			s.revenue += total
		}
	}

	stats := make([]*productStats, 0, len(byProduct))
	for _, s := range byProduct {
		s.velocity = s.units / velocityWindowDays
		s.avgPrice = s.product.Price
		if s.units > 0 && s.revenue > 0 {
			s.avgPrice = s.revenue / s.units
		}
		s.margin = s.product.Margin()
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].product.ID < stats[j].product.ID
	})

	return stats
}

func isAdvertised(product domain.Product, advertised map[string]struct{}) bool {
	for _, candidate := range []string{product.ID, product.SKU, product.Name} {
		normalized := normalizeIdentifier(candidate)
		if normalized == "" {
			continue
		}
		if _, ok := advertised[normalized]; ok {
			return true
		}
	}
	return false
}

func topByVelocity(stats []*productStats, minVelocity float64, limit int) []*productStats {
	selected := make([]*productStats, 0, limit)
	for _, s := range stats {
		if s.velocity >= minVelocity {
			selected = append(selected, s)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].velocity > selected[j].velocity
	})

	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

// suggestedDailyBudget estima o orçamento diário para atingir o ROAS alvo, arredondado para múltiplos de 5
func suggestedDailyBudget(velocity, avgPrice, margin, targetROAS float64) float64 {
	expectedConversions := math.Max(minExpectedConversions, velocity*expectedConversionRate)

	marginMultiplier := 1.0
	if margin > 0.3 {
		marginMultiplier = 1.2
	}

	budget := domain.Finite(expectedConversions * avgPrice / targetROAS * marginMultiplier)
	budget = math.Max(minProductDailyBudget, math.Min(maxProductDailyBudget, budget))

	return math.Round(budget/budgetRoundingStep) * budgetRoundingStep
}

func productConfidence(s *productStats) int {
	confidence := 50

	switch {
	case s.velocity >= 3:
		confidence += 20
	case s.velocity >= 1:
		confidence += 10
	}

	switch {
	case s.units >= 30:
		confidence += 15
	case s.units >= 10:
		confidence += 8
	}

	if s.margin > 0.2 {
		confidence += 10
	}

	return min(confidence, maxProductConfidence)
}

func (a *ProductOpportunityAnalyzer) unpromotedRecommendation(s *productStats) domain.ActionableRecommendation {
	budget := suggestedDailyBudget(s.velocity, s.avgPrice, s.margin, a.opts.TargetROAS)

	priority := domain.PriorityImportant
	if s.velocity >= 1 {
		priority = domain.PriorityUrgent
	}

	expectedConversions := math.Max(minExpectedConversions, s.velocity*expectedConversionRate)

	return domain.ActionableRecommendation{
		ID:       newRecommendationID("prod"),
		Priority: priority,
		Category: domain.CategoryProduct,
		Headline: fmt.Sprintf("Criar anúncio para \"%s\"", s.product.Name),
		Explanation: fmt.Sprintf(
			"O produto vendeu %.0f unidades nos últimos 30 dias (%.1f por dia) sem aparecer em nenhuma campanha ativa.",
			s.units, s.velocity,
		),
		DataPoints: productDataPoints(s),
		Action: domain.ProductAction{
			ProductID:            s.product.ID,
			ProductName:          s.product.Name,
			SKU:                  s.product.SKU,
			Operation:            domain.ProductOperationCreateCampaign,
			SuggestedDailyBudget: budget,
		},
		Confidence:      productConfidence(s),
		EstimatedImpact: fmt.Sprintf("~%s/dia em receita adicional", formatCurrency(expectedConversions*s.avgPrice)),
		Platform:        "all",
		Source:          ProductOpportunityName,
		Tags:            []string{"produto", "sem_anuncio"},
	}
}

func (a *ProductOpportunityAnalyzer) highMarginRecommendation(s *productStats) domain.ActionableRecommendation {
	budget := suggestedDailyBudget(s.velocity, s.avgPrice, s.margin, a.opts.TargetROAS)

	return domain.ActionableRecommendation{
		ID:       newRecommendationID("prod"),
		Priority: domain.PriorityImportant,
		Category: domain.CategoryProduct,
		Headline: fmt.Sprintf("Destacar \"%s\" pela margem de %.0f%%", s.product.Name, s.margin*100),
		Explanation: fmt.Sprintf(
			"Produto de margem alta com saída constante (%.1f por dia) e sem anúncio ativo. Cada venda rende mais que a média do catálogo.",
			s.velocity,
		),
		DataPoints: productDataPoints(s),
		Action: domain.ProductAction{
			ProductID:            s.product.ID,
			ProductName:          s.product.Name,
			SKU:                  s.product.SKU,
			Operation:            domain.ProductOperationHighlight,
			SuggestedDailyBudget: budget,
		},
		Confidence: highMarginConfidence,
		Platform:   "all",
		Source:     ProductOpportunityName,
		Tags:       []string{"produto", "margem_alta"},
	}
}

func productDataPoints(s *productStats) []string {
	margin := "n/d"
	if s.margin > 0 {
		margin = fmt.Sprintf("%.0f%%", s.margin*100)
	}

	return []string{
		fmt.Sprintf("Vendas 30d: %.0f un", s.units),
		fmt.Sprintf("Velocidade: %.1f un/dia", s.velocity),
		fmt.Sprintf("Preço médio: %s", formatCurrency(s.avgPrice)),
		fmt.Sprintf("Margem: %s", margin),
	}
}
