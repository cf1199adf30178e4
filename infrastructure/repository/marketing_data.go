package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vfg2006/traffic-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

const (
	platformAdAccountsTable = "platform_ad_accounts pa"
	dailyPerformanceTable   = "ad_daily_performance dp"
	ordersTable             = "orders o"
	orderItemsTable         = "order_items oi"
	productsTable           = "products p"
	campaignsTable          = "campaigns c"
)

// MarketingDataRepository é a leitura dos dados de anúncios, pedidos e catálogo usados pelos analisadores
type MarketingDataRepository interface {
	ListAdAccounts(ctx context.Context, accountID string) ([]domain.PlatformAdAccount, error)
	ListDailyPerformance(ctx context.Context, adAccount domain.PlatformAdAccount, since time.Time) ([]domain.DailyPerformance, error)
	ListOrders(ctx context.Context, accountID string, filter domain.OrderFilter) ([]domain.Order, error)
	ListProducts(ctx context.Context, accountID string) ([]domain.Product, error)
	ListAdvertisedProductIdentifiers(ctx context.Context, accountID string) ([]string, error)
}

type marketingDataRepository struct {
	conn postgres.Queryer
}

func NewMarketingDataRepository(conn *postgres.Connection) MarketingDataRepository {
	return &marketingDataRepository{
		conn: conn,
	}
}

// float converte colunas numéricas anuláveis, tratando NULL como 0
func float(value sql.NullFloat64) float64 {
	if !value.Valid {
		return 0
	}
	return value.Float64
}
