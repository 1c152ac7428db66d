package service

import (
	"context"
	"database/sql"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/cashdesk/pettycash.go/lib/security"
	"github.com/uptrace/bun"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     common.Role
}

var defaultUsers = []seedUser{
	{"System Admin", "admin@company.com", "admin123", common.RoleAdmin},
	{"John Accountant", "accountant@company.com", "acc123", common.RoleAccountant},
	{"Jane Employee", "employee@company.com", "emp123", common.RoleEmployee},
}

// SeedDefaultUsers provisions one account per role on a fresh database so
// the system is usable right after the first boot. Bootstrap convenience
// only: the default credentials are well known and must be rotated.
func (svc *PettyCashService) SeedDefaultUsers(ctx context.Context) error {
	count, err := svc.DB.NewSelect().Model((*models.User)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, seed := range defaultUsers {
			hashedPassword, err := security.HashPassword(seed.password)
			if err != nil {
				return err
			}
			user := models.User{
				Name:     seed.name,
				Email:    seed.email,
				Password: hashedPassword,
				Role:     seed.role,
			}
			if _, err := tx.NewInsert().Model(&user).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	svc.Logger.Warnf("Seeded %d default accounts with well-known credentials, rotate them before production use", len(defaultUsers))
	return nil
}
