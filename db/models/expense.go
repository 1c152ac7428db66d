package models

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// Expense : Expense Model
//
// Status only ever moves pending -> approved or pending -> rejected.
type Expense struct {
	ID           int64         `json:"id" bun:",pk,autoincrement"`
	UserID       int64         `json:"user_id" bun:",notnull"`
	User         *User         `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	FundID       int64         `json:"fund_id" bun:",notnull"`
	Fund         *Fund         `json:"-" bun:"rel:belongs-to,join:fund_id=id"`
	Amount       int64         `json:"amount" bun:",notnull" validate:"gt=0"`
	Category     string        `json:"category" bun:",notnull"`
	Description  string        `json:"description,omitempty" bun:",nullzero"`
	ReceiptURL   string        `json:"receipt_url,omitempty" bun:"receipt_url,nullzero"`
	Status       string        `json:"status" bun:",notnull,default:'pending'"`
	ApprovedByID sql.NullInt64 `json:"approved_by" bun:"approved_by,nullzero"`
	CreatedAt    time.Time     `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    bun.NullTime  `json:"updated_at"`
}

func (e *Expense) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		e.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Expense)(nil)
