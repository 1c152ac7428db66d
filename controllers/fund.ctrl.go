package controllers

import (
	"net/http"
	"strconv"

	"github.com/cashdesk/pettycash.go/lib/responses"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/labstack/echo/v4"
)

// FundController : FundController struct
type FundController struct {
	svc *service.PettyCashService
}

func NewFundController(svc *service.PettyCashService) *FundController {
	return &FundController{svc: svc}
}

type CreateFundRequestBody struct {
	Name        string `json:"fund_name" validate:"required"`
	TotalAmount int64  `json:"total_amount" validate:"required,gt=0"`
}

type TopUpRequestBody struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// ListFunds godoc
// @Summary      List funds
// @Produce      json
// @Tags         Funds
// @Success      200  {array}  models.Fund
// @Router       /funds [get]
// @Security     OAuth2Password
func (controller *FundController) ListFunds(c echo.Context) error {
	funds, err := controller.svc.Funds(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list funds: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, funds)
}

// CreateFund godoc
// @Summary      Create a fund
// @Description  Allocates a new pool of money; the full allocation starts out spendable
// @Accept       json
// @Produce      json
// @Tags         Funds
// @Param        fund  body      CreateFundRequestBody  true  "New fund"
// @Success      200   {object}  models.Fund
// @Failure      400   {object}  responses.ErrorResponse
// @Router       /funds [post]
// @Security     OAuth2Password
func (controller *FundController) CreateFund(c echo.Context) error {
	var body CreateFundRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create fund request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	fund, err := controller.svc.CreateFund(c.Request().Context(), body.Name, body.TotalAmount, actorFromContext(c))
	if err != nil {
		c.Logger().Errorf("Failed to create fund: %v", err)
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, fund)
}

// TopUpFund godoc
// @Summary      Top up a fund
// @Description  Adds to both the total allocation and the spendable balance
// @Accept       json
// @Produce      json
// @Tags         Funds
// @Param        id      path      int               true  "Fund ID"
// @Param        topup   body      TopUpRequestBody  true  "Top-up amount"
// @Success      200     {object}  models.Fund
// @Failure      404     {object}  responses.ErrorResponse
// @Router       /funds/{id}/topup [patch]
// @Security     OAuth2Password
func (controller *FundController) TopUpFund(c echo.Context) error {
	fundId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body TopUpRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load topup request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	fund, err := controller.svc.TopUpFund(c.Request().Context(), fundId, body.Amount, actorFromContext(c))
	if err != nil {
		c.Logger().Errorf("Failed to top up fund_id:%v error: %v", fundId, err)
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, fund)
}

// DeleteFund godoc
// @Summary      Delete a fund
// @Description  Removes the fund and every expense claimed against it
// @Produce      json
// @Tags         Funds
// @Param        id   path      int  true  "Fund ID"
// @Success      200  {object}  nil
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /funds/{id} [delete]
// @Security     OAuth2Password
func (controller *FundController) DeleteFund(c echo.Context) error {
	fundId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := controller.svc.DeleteFund(c.Request().Context(), fundId, actorFromContext(c)); err != nil {
		c.Logger().Errorf("Failed to delete fund_id:%v error: %v", fundId, err)
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
