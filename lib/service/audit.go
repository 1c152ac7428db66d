package service

import (
	"context"
	"database/sql"

	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/uptrace/bun"
)

// Actor identifies who is performing an operation. The fields come from the
// validated token so no extra user lookup is needed to write an audit entry.
type Actor struct {
	ID    int64
	Name  string
	Email string
	Role  string
}

// RecordAction appends one audit entry. It takes a bun.IDB so callers can
// hand in the transaction of the mutation the entry describes: the entry
// then commits or rolls back together with that mutation.
func (svc *PettyCashService) RecordAction(ctx context.Context, db bun.IDB, actor Actor, action string, details string) error {
	entry := models.AuditLog{
		UserID:    sql.NullInt64{Int64: actor.ID, Valid: actor.ID != 0},
		UserName:  actor.Name,
		UserEmail: actor.Email,
		Action:    action,
		Details:   details,
	}
	_, err := db.NewInsert().Model(&entry).Exec(ctx)
	return err
}

// AuditLogs returns the newest entries first. There is no write path besides
// RecordAction and no update or delete path at all.
func (svc *PettyCashService) AuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	err := svc.DB.NewSelect().Model(&logs).OrderExpr("created_at DESC").Limit(limit).Scan(ctx)
	return logs, err
}
