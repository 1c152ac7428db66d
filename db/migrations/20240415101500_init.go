package migrations

import (
	"context"

	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on fresh db
make sure that when you add/remove columns in subsequent migrations IfNotExists/IfExists is used
otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().Model((*models.User)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Fund)(nil)).
			ForeignKey(`("created_by") REFERENCES "users" ("id") ON DELETE SET NULL`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Expense)(nil)).
			ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
			ForeignKey(`("fund_id") REFERENCES "funds" ("id") ON DELETE CASCADE`).
			ForeignKey(`("approved_by") REFERENCES "users" ("id") ON DELETE SET NULL`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.AuditLog)(nil)).
			ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE SET NULL`).
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, nil)
}
