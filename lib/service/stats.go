package service

import (
	"context"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/db/models"
)

type CategoryStat struct {
	Category string `json:"category" bun:"category"`
	Total    int64  `json:"total" bun:"total"`
}

type Stats struct {
	TotalApprovedExpenses int64          `json:"totalApprovedExpenses"`
	PendingRequests       int            `json:"pendingRequests"`
	AvailableLiquidity    int64          `json:"availableLiquidity"`
	CategoryStats         []CategoryStat `json:"categoryStats"`
}

// GetStats aggregates the dashboard numbers. Read only, nothing is audited.
func (svc *PettyCashService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{CategoryStats: []CategoryStat{}}

	err := svc.DB.NewSelect().Model((*models.Expense)(nil)).
		ColumnExpr("COALESCE(SUM(amount), 0)").
		Where("status = ?", common.ExpenseStatusApproved).
		Scan(ctx, &stats.TotalApprovedExpenses)
	if err != nil {
		return nil, err
	}

	stats.PendingRequests, err = svc.DB.NewSelect().Model((*models.Expense)(nil)).
		Where("status = ?", common.ExpenseStatusPending).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	err = svc.DB.NewSelect().Model((*models.Fund)(nil)).
		ColumnExpr("COALESCE(SUM(remaining_amount), 0)").
		Scan(ctx, &stats.AvailableLiquidity)
	if err != nil {
		return nil, err
	}

	err = svc.DB.NewSelect().Model((*models.Expense)(nil)).
		ColumnExpr("category").
		ColumnExpr("SUM(amount) AS total").
		Where("status = ?", common.ExpenseStatusApproved).
		GroupExpr("category").
		OrderExpr("total DESC").
		Scan(ctx, &stats.CategoryStats)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
