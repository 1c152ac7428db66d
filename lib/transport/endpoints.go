package transport

import (
	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/controllers"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/cashdesk/pettycash.go/lib/tokens"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.PettyCashService, e *echo.Echo, secured *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	adminOnly := tokens.RoleMiddleware(common.RoleAdmin)
	approvers := tokens.RoleMiddleware(common.RoleAdmin, common.RoleAccountant)

	// Public endpoints for authentication and account creation
	authCtrl := controllers.NewAuthController(svc)
	e.POST("/auth/login", authCtrl.Login, strictRateLimitMiddleware, logMw)
	if svc.Config.AllowAccountCreation {
		e.POST("/auth/register", authCtrl.Register, strictRateLimitMiddleware, logMw)
	}
	secured.GET("/auth/me", authCtrl.Me)

	// User administration
	userCtrl := controllers.NewUserController(svc)
	secured.GET("/users", userCtrl.ListUsers, adminOnly)
	secured.POST("/users", userCtrl.CreateUser, adminOnly)
	secured.DELETE("/users/:id", userCtrl.DeleteUser, adminOnly)
	secured.PATCH("/users/me/password", userCtrl.ChangePassword)

	// Fund ledger
	fundCtrl := controllers.NewFundController(svc)
	secured.GET("/funds", fundCtrl.ListFunds)
	secured.POST("/funds", fundCtrl.CreateFund, adminOnly)
	secured.PATCH("/funds/:id/topup", fundCtrl.TopUpFund, adminOnly)
	secured.DELETE("/funds/:id", fundCtrl.DeleteFund, adminOnly)

	// Expense workflow
	expenseCtrl := controllers.NewExpenseController(svc)
	secured.GET("/expenses", expenseCtrl.ListExpenses)
	secured.POST("/expenses", expenseCtrl.CreateExpense)
	secured.PATCH("/expenses/:id", expenseCtrl.UpdateExpense)
	secured.DELETE("/expenses/:id", expenseCtrl.DeleteExpense)
	secured.PATCH("/expenses/:id/status", expenseCtrl.UpdateExpenseStatus, approvers)

	// Read-only dashboard endpoints
	secured.GET("/stats", controllers.NewStatsController(svc).GetStats, CreateCacheClient().Middleware())
	secured.GET("/audit-logs", controllers.NewAuditLogController(svc).ListAuditLogs, adminOnly)

	// Stored receipts and the index page need no role beyond authentication
	e.Static("/uploads", svc.Config.UploadDir)
	e.GET("/", controllers.NewHomeController().Home)
}
