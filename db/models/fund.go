package models

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// Fund : Fund Model
//
// TotalAmount only ever grows (creation and top-ups), RemainingAmount moves
// down on approved expenses. Amounts are integer minor currency units.
type Fund struct {
	ID              int64         `json:"id" bun:",pk,autoincrement"`
	Name            string        `json:"fund_name" bun:"fund_name,notnull"`
	TotalAmount     int64         `json:"total_amount" bun:",notnull" validate:"gt=0"`
	RemainingAmount int64         `json:"remaining_amount" bun:",notnull"`
	CreatedByID     sql.NullInt64 `json:"created_by" bun:"created_by,nullzero"`
	CreatedBy       *User         `json:"-" bun:"rel:belongs-to,join:created_by=id"`
	CreatedAt       time.Time     `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt       bun.NullTime  `json:"updated_at"`
}

func (f *Fund) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		f.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Fund)(nil)
