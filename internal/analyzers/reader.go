// Package analyzers contém os analisadores executados pelo pipeline de análise.
// Cada analisador apenas lê dados através de um DataReader e devolve sugestões e recomendações.
package analyzers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/pkg/utils"
)

const (
	MultiPeriodName        = "multi_period"
	ProductOpportunityName = "product_opportunity"
	StrategicAdvisorName   = "strategic_advisor"
)

const (
	defaultTargetROAS   = 3.0
	defaultLookbackDays = 90
	velocityWindowDays  = 30
)

// DataReader é o acesso somente leitura aos dados de uma conta
type DataReader interface {
	ListAdAccounts(ctx context.Context, accountID string) ([]domain.PlatformAdAccount, error)
	ListDailyPerformance(ctx context.Context, adAccount domain.PlatformAdAccount, since time.Time) ([]domain.DailyPerformance, error)
	ListOrders(ctx context.Context, accountID string, filter domain.OrderFilter) ([]domain.Order, error)
	ListProducts(ctx context.Context, accountID string) ([]domain.Product, error)
	ListAdvertisedProductIdentifiers(ctx context.Context, accountID string) ([]string, error)
}

// Options são os parâmetros compartilhados pelos analisadores
type Options struct {
	TargetROAS    float64
	OrderStatuses []string
	LookbackDays  int
	Now           func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TargetROAS <= 0 {
		o.TargetROAS = defaultTargetROAS
	}
	if len(o.OrderStatuses) == 0 {
		o.OrderStatuses = []string{domain.OrderStatusCompleted, domain.OrderStatusProcessing}
	}
	if o.LookbackDays <= 0 {
		o.LookbackDays = defaultLookbackDays
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// loadPlatformSeries busca as linhas diárias de todas as contas de anúncios da conta
func loadPlatformSeries(ctx context.Context, reader DataReader, accountID string, since time.Time) ([]domain.PlatformSeries, error) {
	adAccounts, err := reader.ListAdAccounts(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad accounts: %w", err)
	}

	series := make([]domain.PlatformSeries, 0, len(adAccounts))
	for _, adAccount := range adAccounts {
		rows, err := reader.ListDailyPerformance(ctx, adAccount, since)
		if err != nil {
			return nil, fmt.Errorf("failed to list daily performance for ad account %s: %w", adAccount.ID, err)
		}
		if len(rows) == 0 {
			continue
		}
		series = append(series, domain.PlatformSeries{AdAccount: adAccount, Rows: rows})
	}

	return series, nil
}

func newRecommendationID(prefix string) string {
	return utils.GeneratePrefixedID(prefix)
}

func normalizeIdentifier(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func platformLabel(platform string) string {
	switch platform {
	case domain.PlatformMeta:
		return "Meta Ads"
	case domain.PlatformGoogle:
		return "Google Ads"
	case domain.PlatformTikTok:
		return "TikTok Ads"
	default:
		return platform
	}
}

func formatCurrency(value float64) string {
	return utils.FormatBRL(value)
}
