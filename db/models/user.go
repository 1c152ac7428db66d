package models

import (
	"context"
	"time"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/uptrace/bun"
)

// User : User Model
type User struct {
	ID        int64        `json:"id" bun:",pk,autoincrement"`
	Name      string       `json:"name" bun:",notnull"`
	Email     string       `json:"email" bun:",unique,notnull"`
	Password  string       `json:"-" bun:",notnull"`
	Role      common.Role  `json:"role" bun:",notnull"`
	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at"`
}

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		u.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*User)(nil)
