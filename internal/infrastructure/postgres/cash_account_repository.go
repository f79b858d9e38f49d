package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.CashAccountRepository = (*CashAccountRepo)(nil)

// CashAccountRepo caja única (fila id = 1).
type CashAccountRepo struct {
	q Querier
}

func NewCashAccountRepository(q Querier) *CashAccountRepo {
	return &CashAccountRepo{q: q}
}

func (r *CashAccountRepo) Get(ctx context.Context) (*entity.CashAccount, error) {
	var a entity.CashAccount
	err := r.q.QueryRow(ctx,
		`SELECT id, balance, updated_at FROM cash_account WHERE id = $1`, entity.CashAccountID,
	).Scan(&a.ID, &a.Balance, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash account: %w", err)
	}
	return &a, nil
}

// Credit crea la fila en la primera llamada y suma en la misma sentencia.
func (r *CashAccountRepo) Credit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.q.QueryRow(ctx, `
		INSERT INTO cash_account (id, balance, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET balance = cash_account.balance + EXCLUDED.balance, updated_at = now()
		RETURNING balance`, entity.CashAccountID, amount,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("credit cash account: %w", err)
	}
	return balance, nil
}
