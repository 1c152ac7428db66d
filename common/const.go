package common

import "fmt"

// Role is a closed enumeration so authorization checks can be exhaustive.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAccountant Role = "accountant"
	RoleEmployee   Role = "employee"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleAccountant, RoleEmployee:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %s", s)
}

const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusRejected = "rejected"
)

const (
	ActionLogin          = "LOGIN"
	ActionUserRegister   = "USER_REGISTER"
	ActionUserCreate     = "USER_CREATE"
	ActionUserDelete     = "USER_DELETE"
	ActionPasswordChange = "PASSWORD_CHANGE"
	ActionFundCreate     = "FUND_CREATE"
	ActionFundTopup      = "FUND_TOPUP"
	ActionFundDelete     = "FUND_DELETE"
	ActionExpenseSubmit  = "EXPENSE_SUBMIT"
	ActionExpenseEdit    = "EXPENSE_EDIT"
	ActionExpenseDelete  = "EXPENSE_DELETE"
	ActionExpenseApprove = "EXPENSE_APPROVE"
	ActionExpenseReject  = "EXPENSE_REJECT"
)
