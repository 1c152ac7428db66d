package controllers

import (
	"net/http"
	"strconv"

	"github.com/cashdesk/pettycash.go/lib/responses"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/labstack/echo/v4"
)

// ExpenseController : ExpenseController struct
type ExpenseController struct {
	svc *service.PettyCashService
}

func NewExpenseController(svc *service.PettyCashService) *ExpenseController {
	return &ExpenseController{svc: svc}
}

type UpdateStatusRequestBody struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// expenseForm reads the multipart fields shared by create and update.
// Receipts come in as a file part; everything else is plain form values.
func (controller *ExpenseController) expenseForm(c echo.Context) (amount int64, category, description string, receiptURL *string, err error) {
	amount, err = strconv.ParseInt(c.FormValue("amount"), 10, 64)
	if err != nil {
		return 0, "", "", nil, err
	}
	category = c.FormValue("category")
	description = c.FormValue("description")

	file, err := c.FormFile("receipt")
	if err != nil {
		// no receipt attached
		return amount, category, description, nil, nil
	}
	src, err := file.Open()
	if err != nil {
		return 0, "", "", nil, err
	}
	defer src.Close()

	url, err := controller.svc.Receipts.Save(c.Request().Context(), src, file.Filename)
	if err != nil {
		return 0, "", "", nil, err
	}
	return amount, category, description, &url, nil
}

// ListExpenses godoc
// @Summary      List expenses
// @Description  Joined with submitter and fund names, newest first. Employees only see their own claims.
// @Produce      json
// @Tags         Expenses
// @Success      200  {array}  service.ExpenseRow
// @Router       /expenses [get]
// @Security     OAuth2Password
func (controller *ExpenseController) ListExpenses(c echo.Context) error {
	expenses, err := controller.svc.Expenses(c.Request().Context(), actorFromContext(c))
	if err != nil {
		c.Logger().Errorf("Failed to list expenses: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, expenses)
}

// CreateExpense godoc
// @Summary      Submit an expense claim
// @Description  Multipart form: fund_id, amount, category, optional description and receipt file
// @Accept       mpfd
// @Produce      json
// @Tags         Expenses
// @Success      200  {object}  models.Expense
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /expenses [post]
// @Security     OAuth2Password
func (controller *ExpenseController) CreateExpense(c echo.Context) error {
	fundId, err := strconv.ParseInt(c.FormValue("fund_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	amount, category, description, receiptURL, err := controller.expenseForm(c)
	if err != nil || category == "" {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	url := ""
	if receiptURL != nil {
		url = *receiptURL
	}

	expense, err := controller.svc.SubmitExpense(c.Request().Context(), actorFromContext(c), fundId, amount, category, description, url)
	if err != nil {
		c.Logger().Errorf("Failed to submit expense: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, expense)
}

// UpdateExpense godoc
// @Summary      Edit an expense claim
// @Description  Only the submitter may edit, and only while the claim is pending
// @Accept       mpfd
// @Produce      json
// @Tags         Expenses
// @Param        id  path  int  true  "Expense ID"
// @Success      200  {object}  models.Expense
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /expenses/{id} [patch]
// @Security     OAuth2Password
func (controller *ExpenseController) UpdateExpense(c echo.Context) error {
	expenseId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	amount, category, description, receiptURL, err := controller.expenseForm(c)
	if err != nil || category == "" {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	expense, err := controller.svc.EditExpense(c.Request().Context(), actorFromContext(c), expenseId, amount, category, description, receiptURL)
	if err != nil {
		c.Logger().Errorf("Failed to edit expense_id:%v error: %v", expenseId, err)
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense godoc
// @Summary      Delete an expense claim
// @Description  Submitters withdraw their own pending claims; admins can delete any claim
// @Produce      json
// @Tags         Expenses
// @Param        id  path  int  true  "Expense ID"
// @Success      200  {object}  nil
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /expenses/{id} [delete]
// @Security     OAuth2Password
func (controller *ExpenseController) DeleteExpense(c echo.Context) error {
	expenseId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := controller.svc.DeleteExpense(c.Request().Context(), actorFromContext(c), expenseId); err != nil {
		c.Logger().Errorf("Failed to delete expense_id:%v error: %v", expenseId, err)
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UpdateExpenseStatus godoc
// @Summary      Approve or reject an expense claim
// @Description  Approval debits the fund and flips the status in one transaction
// @Accept       json
// @Produce      json
// @Tags         Expenses
// @Param        id      path      int                      true  "Expense ID"
// @Param        status  body      UpdateStatusRequestBody  true  "New status"
// @Success      200     {object}  models.Expense
// @Failure      400     {object}  responses.ErrorResponse
// @Router       /expenses/{id}/status [patch]
// @Security     OAuth2Password
func (controller *ExpenseController) UpdateExpenseStatus(c echo.Context) error {
	expenseId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body UpdateStatusRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load status request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	expense, err := controller.svc.UpdateExpenseStatus(c.Request().Context(), actorFromContext(c), expenseId, body.Status)
	if err != nil {
		c.Logger().Errorf("Failed to update status of expense_id:%v error: %v", expenseId, err)
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, expense)
}
