package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

const campaignStatusActive = "ACTIVE"

// ListAdvertisedProductIdentifiers retorna os identificadores de produto (id, sku ou nome)
// referenciados por campanhas ativas da conta
func (r *marketingDataRepository) ListAdvertisedProductIdentifiers(ctx context.Context, accountID string) ([]string, error) {
	query, args, err := squirrel.
		Select("DISTINCT cp.product_identifier").
		From(campaignsTable).
		Join("campaign_products cp ON cp.campaign_id = c.id").
		Where(squirrel.Eq{"c.account_id": accountID, "c.status": campaignStatusActive}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list advertised products of account %s", accountID)
	}
	defer rows.Close()

	identifiers := make([]string, 0)
	for rows.Next() {
		var identifier string
		if err := rows.Scan(&identifier); err != nil {
			return nil, errors.Wrap(err, "failed to scan product identifier")
		}
		identifiers = append(identifiers, identifier)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate product identifiers")
	}

	return identifiers, nil
}
