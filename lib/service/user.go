package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/cashdesk/pettycash.go/lib/security"
	"github.com/cashdesk/pettycash.go/lib/tokens"
	"github.com/uptrace/bun"
)

// CreateUser registers a new account. When actor is nil this is a
// self-registration and the audit entry is attributed to the new user,
// otherwise it is attributed to the admin who created the account.
func (svc *PettyCashService) CreateUser(ctx context.Context, name, email, password string, role common.Role, actor *Actor) (*models.User, error) {
	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hashedPassword,
		Role:     role,
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				return ErrEmailTaken
			}
			return err
		}
		if actor == nil {
			registrant := Actor{ID: user.ID, Name: user.Name, Email: user.Email, Role: string(user.Role)}
			return svc.RecordAction(ctx, tx, registrant, common.ActionUserRegister,
				fmt.Sprintf("New user %s registered as %s", user.Email, user.Role))
		}
		return svc.RecordAction(ctx, tx, *actor, common.ActionUserCreate,
			fmt.Sprintf("Created user %s with role %s", user.Email, user.Role))
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// LoginUser verifies the credentials and issues an access token.
func (svc *PettyCashService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := svc.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrNotFound
	}
	if !security.VerifyPassword(password, user.Password) {
		return nil, "", ErrNotFound
	}

	accessToken, err := tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, user)
	if err != nil {
		return nil, "", err
	}

	// The login itself mutates nothing, so the audit entry is best effort:
	// a failure here must not fail the login.
	actor := Actor{ID: user.ID, Name: user.Name, Email: user.Email, Role: string(user.Role)}
	if err := svc.RecordAction(ctx, svc.DB, actor, common.ActionLogin, fmt.Sprintf("User %s logged in", user.Email)); err != nil {
		svc.Logger.Errorf("Failed to record login audit entry for user_id:%v error: %v", user.ID, err)
	}

	return user, accessToken, nil
}

func (svc *PettyCashService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (svc *PettyCashService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Limit(1).Scan(ctx)
	if err != nil {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (svc *PettyCashService) Users(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := svc.DB.NewSelect().Model(&users).OrderExpr("id ASC").Scan(ctx)
	return users, err
}

// DeleteUser removes an account and, explicitly in the same transaction,
// every expense the account submitted. Audit entries written by the user are
// kept; their user reference goes dangling but name and email were
// denormalized at write time.
func (svc *PettyCashService) DeleteUser(ctx context.Context, userId int64, actor Actor) error {
	if userId == actor.ID {
		return ErrSelfDeletion
	}

	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var user models.User
		if err := tx.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx); err != nil {
			return ErrNotFound
		}

		if _, err := tx.NewDelete().Model((*models.Expense)(nil)).Where("user_id = ?", userId).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model(&user).WherePK().Exec(ctx); err != nil {
			return err
		}

		return svc.RecordAction(ctx, tx, actor, common.ActionUserDelete,
			fmt.Sprintf("Deleted user %s (ID %d)", user.Email, user.ID))
	})
}

// ChangePassword lets a user rotate their own password after proving they
// know the current one.
func (svc *PettyCashService) ChangePassword(ctx context.Context, userId int64, currentPassword, newPassword string) error {
	user, err := svc.FindUser(ctx, userId)
	if err != nil {
		return err
	}
	if !security.VerifyPassword(currentPassword, user.Password) {
		return ErrForbidden
	}

	hashedPassword, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword

	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(user).Column("password", "updated_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		actor := Actor{ID: user.ID, Name: user.Name, Email: user.Email, Role: string(user.Role)}
		return svc.RecordAction(ctx, tx, actor, common.ActionPasswordChange, "User changed their password")
	})
}
