package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/uptrace/bun"
)

func (svc *PettyCashService) Funds(ctx context.Context) ([]models.Fund, error) {
	funds := []models.Fund{}
	err := svc.DB.NewSelect().Model(&funds).OrderExpr("id ASC").Scan(ctx)
	return funds, err
}

func (svc *PettyCashService) FindFund(ctx context.Context, fundId int64) (*models.Fund, error) {
	var fund models.Fund

	err := svc.DB.NewSelect().Model(&fund).Where("id = ?", fundId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, ErrNotFound
	}
	return &fund, nil
}

// CreateFund allocates a new pool of money. The full allocation starts out
// spendable.
func (svc *PettyCashService) CreateFund(ctx context.Context, name string, totalAmount int64, actor Actor) (*models.Fund, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	fund := &models.Fund{
		Name:            name,
		TotalAmount:     totalAmount,
		RemainingAmount: totalAmount,
		CreatedByID:     sql.NullInt64{Int64: actor.ID, Valid: true},
	}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(fund).Exec(ctx); err != nil {
			return err
		}
		return svc.RecordAction(ctx, tx, actor, common.ActionFundCreate,
			fmt.Sprintf("Created fund %s with %s", fund.Name, formatAmount(fund.TotalAmount)))
	})
	if err != nil {
		return nil, err
	}
	return fund, nil
}

// TopUpFund adds to both the cumulative allocation and the spendable balance
// in a single UPDATE so the fund invariant can not be observed violated.
func (svc *PettyCashService) TopUpFund(ctx context.Context, fundId int64, amount int64, actor Actor) (*models.Fund, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	fund := &models.Fund{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().Model((*models.Fund)(nil)).
			Set("total_amount = total_amount + ?", amount).
			Set("remaining_amount = remaining_amount + ?", amount).
			Set("updated_at = now()").
			Where("id = ?", fundId).
			Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.NewSelect().Model(fund).Where("id = ?", fundId).Limit(1).Scan(ctx); err != nil {
			return err
		}

		return svc.RecordAction(ctx, tx, actor, common.ActionFundTopup,
			fmt.Sprintf("Topped up fund %s with %s", fund.Name, formatAmount(amount)))
	})
	if err != nil {
		return nil, err
	}
	return fund, nil
}

// DebitFund takes amount off a fund's spendable balance. The UPDATE carries
// the balance check in its WHERE clause, so two concurrent approvals can not
// both pass a stale check: the second one simply affects no row.
// Runs on the caller's transaction; the caller decides what commits with it.
func (svc *PettyCashService) DebitFund(ctx context.Context, tx bun.IDB, fundId int64, amount int64) error {
	res, err := tx.NewUpdate().Model((*models.Fund)(nil)).
		Set("remaining_amount = remaining_amount - ?", amount).
		Set("updated_at = now()").
		Where("id = ? AND remaining_amount >= ?", fundId, amount).
		Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		exists, err := tx.NewSelect().Model((*models.Fund)(nil)).Where("id = ?", fundId).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrInsufficientFunds
	}
	return nil
}

// DeleteFund removes a fund and, explicitly in the same transaction, every
// expense claimed against it.
func (svc *PettyCashService) DeleteFund(ctx context.Context, fundId int64, actor Actor) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var fund models.Fund
		if err := tx.NewSelect().Model(&fund).Where("id = ?", fundId).Limit(1).Scan(ctx); err != nil {
			return ErrNotFound
		}

		if _, err := tx.NewDelete().Model((*models.Expense)(nil)).Where("fund_id = ?", fundId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model(&fund).WherePK().Exec(ctx); err != nil {
			return err
		}

		return svc.RecordAction(ctx, tx, actor, common.ActionFundDelete,
			fmt.Sprintf("Deleted fund %s (ID %d)", fund.Name, fund.ID))
	})
}
