package controllers

import (
	"errors"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/lib/responses"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/labstack/echo/v4"
)

// actorFromContext rebuilds the caller identity the token middleware put on
// the request context.
func actorFromContext(c echo.Context) service.Actor {
	actor := service.Actor{}
	if id, ok := c.Get("UserID").(int64); ok {
		actor.ID = id
	}
	if name, ok := c.Get("UserName").(string); ok {
		actor.Name = name
	}
	if email, ok := c.Get("UserEmail").(string); ok {
		actor.Email = email
	}
	if role := c.Get("UserRole"); role != nil {
		actor.Role = string(role.(common.Role))
	}
	return actor
}

// respondServiceError maps service errors onto the stable error responses.
func respondServiceError(c echo.Context, err error) error {
	var resp responses.ErrorResponse
	switch {
	case errors.Is(err, service.ErrNotFound):
		resp = responses.NotFoundError
	case errors.Is(err, service.ErrForbidden):
		resp = responses.ForbiddenError
	case errors.Is(err, service.ErrInvalidState):
		resp = responses.InvalidStateError
	case errors.Is(err, service.ErrInsufficientFunds):
		resp = responses.InsufficientFundsError
	case errors.Is(err, service.ErrEmailTaken):
		resp = responses.EmailTakenError
	case errors.Is(err, service.ErrInvalidAmount):
		resp = responses.BadArgumentsError
	case errors.Is(err, service.ErrSelfDeletion):
		resp = responses.SelfDeletionError
	default:
		resp = responses.GeneralServerError
	}
	return c.JSON(resp.HttpStatusCode, resp)
}
