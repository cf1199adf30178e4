package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

const (
	accountsTable = "accounts a"
)

type AccountRepository interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error)
	ListAccounts(ctx context.Context, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select("a.id, a.external_id, a.name, a.nickname, a.status").
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	acc := &domain.AdAccount{}
	err = a.conn.QueryRowContext(ctx, accountsSQL, accountsArgs...).Scan(
		&acc.ID,
		&acc.ExternalID,
		&acc.Name,
		&acc.Nickname,
		&acc.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to get account %s", accountID)
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts(ctx context.Context, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	queryBuilder := squirrel.
		Select("a.id, a.external_id, a.name, a.nickname, a.status").
		From(accountsTable).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": availableStatus})
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := a.conn.QueryContext(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc := &domain.AdAccount{}
		if err := rows.Scan(
			&acc.ID,
			&acc.ExternalID,
			&acc.Name,
			&acc.Nickname,
			&acc.Status,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan account")
		}

		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate accounts")
	}

	return accounts, nil
}
