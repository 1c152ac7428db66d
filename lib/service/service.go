package service

import (
	"errors"

	"github.com/cashdesk/pettycash.go/storage"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

// Errors the controllers translate into stable response codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("operation not allowed in the current status")
	ErrInsufficientFunds = errors.New("insufficient fund balance")
	ErrEmailTaken        = errors.New("email already exists")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSelfDeletion      = errors.New("cannot delete yourself")
)

type PettyCashService struct {
	Config   *Config
	DB       *bun.DB
	Logger   *lecho.Logger
	Receipts storage.ReceiptStore
}
