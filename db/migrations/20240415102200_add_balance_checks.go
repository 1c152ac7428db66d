package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- a fund can never be overdrawn and can never hold more than was allocated
				alter table funds
				ADD CONSTRAINT check_fund_balance
				CHECK (remaining_amount >= 0 AND remaining_amount <= total_amount);

			-- expense claims are always for a positive amount
				alter table expenses
				ADD CONSTRAINT check_expense_amount
				CHECK (amount > 0);

			-- an expense only ever holds one of the known statuses
				alter table expenses
				ADD CONSTRAINT check_expense_status
				CHECK (status IN ('pending', 'approved', 'rejected'));
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
