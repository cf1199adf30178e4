package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

func (r *marketingDataRepository) ListAdAccounts(ctx context.Context, accountID string) ([]domain.PlatformAdAccount, error) {
	query, args, err := squirrel.
		Select("pa.id, pa.account_id, pa.platform, pa.external_id, pa.name").
		From(platformAdAccountsTable).
		Where(squirrel.Eq{"pa.account_id": accountID}).
		OrderBy("pa.platform ASC", "pa.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list ad accounts of account %s", accountID)
	}
	defer rows.Close()

	adAccounts := make([]domain.PlatformAdAccount, 0)
	for rows.Next() {
		var (
			adAccount domain.PlatformAdAccount
			name      sql.NullString
		)
		if err := rows.Scan(
			&adAccount.ID,
			&adAccount.AccountID,
			&adAccount.Platform,
			&adAccount.ExternalID,
			&name,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan ad account")
		}
		adAccount.Name = name.String

		adAccounts = append(adAccounts, adAccount)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate ad accounts")
	}

	return adAccounts, nil
}

// ListDailyPerformance retorna as linhas diárias da conta de anúncios a partir de since, em ordem crescente de data
func (r *marketingDataRepository) ListDailyPerformance(ctx context.Context, adAccount domain.PlatformAdAccount, since time.Time) ([]domain.DailyPerformance, error) {
	query, args, err := squirrel.
		Select("dp.date, dp.spend, dp.impressions, dp.clicks, dp.conversions, dp.revenue").
		From(dailyPerformanceTable).
		Where(squirrel.Eq{"dp.ad_account_id": adAccount.ID}).
		Where(squirrel.GtOrEq{"dp.date": since.Format("2006-01-02")}).
		OrderBy("dp.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list daily performance of ad account %s", adAccount.ID)
	}
	defer rows.Close()

	performance := make([]domain.DailyPerformance, 0)
	for rows.Next() {
		var row domain.DailyPerformance
		var spend, impressions, clicks, conversions, revenue sql.NullFloat64
		if err := rows.Scan(&row.Date, &spend, &impressions, &clicks, &conversions, &revenue); err != nil {
			return nil, errors.Wrap(err, "failed to scan daily performance")
		}

		row.Spend = float(spend)
		row.Impressions = float(impressions)
		row.Clicks = float(clicks)
		row.Conversions = float(conversions)
		row.Revenue = float(revenue)

		performance = append(performance, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate daily performance")
	}

	return performance, nil
}
