package models

import (
	"database/sql"
	"time"
)

// AuditLog : Audit Log Model
//
// Append-only. The acting user's name and email are denormalized at write
// time so historical entries stay legible after the user row is gone.
type AuditLog struct {
	ID        int64         `json:"id" bun:",pk,autoincrement"`
	UserID    sql.NullInt64 `json:"user_id" bun:",nullzero"`
	User      *User         `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	UserName  string        `json:"user_name,omitempty" bun:",nullzero"`
	UserEmail string        `json:"user_email,omitempty" bun:",nullzero"`
	Action    string        `json:"action" bun:",notnull"`
	Details   string        `json:"details" bun:",notnull"`
	CreatedAt time.Time     `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
