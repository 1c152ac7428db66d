package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/uptrace/bun"
)

// ExpenseRow is an expense joined with the submitter's name and the fund's
// name, the shape the dashboard renders.
type ExpenseRow struct {
	ID           int64         `json:"id" bun:"id"`
	UserID       int64         `json:"user_id" bun:"user_id"`
	FundID       int64         `json:"fund_id" bun:"fund_id"`
	Amount       int64         `json:"amount" bun:"amount"`
	Category     string        `json:"category" bun:"category"`
	Description  string        `json:"description,omitempty" bun:"description"`
	ReceiptURL   string        `json:"receipt_url,omitempty" bun:"receipt_url"`
	Status       string        `json:"status" bun:"status"`
	ApprovedByID sql.NullInt64 `json:"approved_by" bun:"approved_by"`
	CreatedAt    time.Time     `json:"created_at" bun:"created_at"`
	EmployeeName string        `json:"employee_name" bun:"employee_name"`
	FundName     string        `json:"fund_name" bun:"fund_name"`
}

// Expenses lists expenses newest first. Employees only ever see their own
// claims, accountants and admins see everything.
func (svc *PettyCashService) Expenses(ctx context.Context, actor Actor) ([]ExpenseRow, error) {
	rows := []ExpenseRow{}

	query := svc.DB.NewSelect().
		TableExpr("expenses AS expense").
		ColumnExpr("expense.*").
		ColumnExpr("u.name AS employee_name").
		ColumnExpr("f.fund_name AS fund_name").
		Join("JOIN users AS u ON u.id = expense.user_id").
		Join("JOIN funds AS f ON f.id = expense.fund_id")

	if actor.Role == string(common.RoleEmployee) {
		query = query.Where("expense.user_id = ?", actor.ID)
	}

	err := query.OrderExpr("expense.created_at DESC").Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (svc *PettyCashService) FindExpense(ctx context.Context, expenseId int64) (*models.Expense, error) {
	var expense models.Expense

	err := svc.DB.NewSelect().Model(&expense).Where("id = ?", expenseId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, ErrNotFound
	}
	return &expense, nil
}

// SubmitExpense files a new claim against a fund. The receipt (if any) has
// already been stored by the transport layer; only its reference is kept.
func (svc *PettyCashService) SubmitExpense(ctx context.Context, actor Actor, fundId int64, amount int64, category, description, receiptURL string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	expense := &models.Expense{
		UserID:      actor.ID,
		FundID:      fundId,
		Amount:      amount,
		Category:    category,
		Description: description,
		ReceiptURL:  receiptURL,
		Status:      common.ExpenseStatusPending,
	}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Fund)(nil)).Where("id = ?", fundId).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		if _, err := tx.NewInsert().Model(expense).Exec(ctx); err != nil {
			return err
		}
		return svc.RecordAction(ctx, tx, actor, common.ActionExpenseSubmit,
			fmt.Sprintf("Submitted expense of %s for %s", formatAmount(amount), category))
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// EditExpense replaces the claim details. Only the submitter may edit and
// only while the claim is still pending.
func (svc *PettyCashService) EditExpense(ctx context.Context, actor Actor, expenseId int64, amount int64, category, description string, receiptURL *string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	expense := &models.Expense{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(expense).Where("id = ?", expenseId).Limit(1).Scan(ctx); err != nil {
			return ErrNotFound
		}
		if expense.UserID != actor.ID {
			return ErrForbidden
		}
		if expense.Status != common.ExpenseStatusPending {
			return ErrInvalidState
		}

		expense.Amount = amount
		expense.Category = category
		expense.Description = description
		columns := []string{"amount", "category", "description", "updated_at"}
		if receiptURL != nil {
			expense.ReceiptURL = *receiptURL
			columns = append(columns, "receipt_url")
		}

		if _, err := tx.NewUpdate().Model(expense).Column(columns...).WherePK().Exec(ctx); err != nil {
			return err
		}
		return svc.RecordAction(ctx, tx, actor, common.ActionExpenseEdit,
			fmt.Sprintf("Edited expense ID %d", expense.ID))
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes a claim. Submitters can withdraw their own pending
// claims; admins can delete any claim, pending or not.
func (svc *PettyCashService) DeleteExpense(ctx context.Context, actor Actor, expenseId int64) error {
	isAdmin := actor.Role == string(common.RoleAdmin)

	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var expense models.Expense
		if err := tx.NewSelect().Model(&expense).Where("id = ?", expenseId).Limit(1).Scan(ctx); err != nil {
			return ErrNotFound
		}
		if expense.UserID != actor.ID && !isAdmin {
			return ErrForbidden
		}
		if expense.Status != common.ExpenseStatusPending && !isAdmin {
			return ErrInvalidState
		}

		if _, err := tx.NewDelete().Model(&expense).WherePK().Exec(ctx); err != nil {
			return err
		}
		return svc.RecordAction(ctx, tx, actor, common.ActionExpenseDelete,
			fmt.Sprintf("Deleted expense ID %d", expense.ID))
	})
}

// UpdateExpenseStatus settles a pending claim. Approval debits the fund and
// flips the status in one transaction: either both happen or neither does.
// The status flip itself is conditional on the row still being pending, so a
// settled claim can never be settled again.
func (svc *PettyCashService) UpdateExpenseStatus(ctx context.Context, actor Actor, expenseId int64, newStatus string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(expense).Where("id = ?", expenseId).Limit(1).Scan(ctx); err != nil {
			return ErrNotFound
		}

		res, err := tx.NewUpdate().Model((*models.Expense)(nil)).
			Set("status = ?", newStatus).
			Set("approved_by = ?", actor.ID).
			Set("updated_at = now()").
			Where("id = ? AND status = ?", expenseId, common.ExpenseStatusPending).
			Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrInvalidState
		}

		if newStatus == common.ExpenseStatusApproved {
			if err := svc.DebitFund(ctx, tx, expense.FundID, expense.Amount); err != nil {
				return err
			}
			return svc.RecordAction(ctx, tx, actor, common.ActionExpenseApprove,
				fmt.Sprintf("Approved expense ID %d of %s", expense.ID, formatAmount(expense.Amount)))
		}
		return svc.RecordAction(ctx, tx, actor, common.ActionExpenseReject,
			fmt.Sprintf("Rejected expense ID %d", expense.ID))
	})
	if err != nil {
		return nil, err
	}

	expense.Status = newStatus
	expense.ApprovedByID = sql.NullInt64{Int64: actor.ID, Valid: true}
	return expense, nil
}
