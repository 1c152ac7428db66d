package controllers

import (
	"net/http"
	"strconv"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/lib/responses"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/labstack/echo/v4"
)

// UserController : UserController struct
type UserController struct {
	svc *service.PettyCashService
}

func NewUserController(svc *service.PettyCashService) *UserController {
	return &UserController{svc: svc}
}

type CreateUserRequestBody struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

type ChangePasswordRequestBody struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ListUsers godoc
// @Summary      List accounts
// @Produce      json
// @Tags         Users
// @Success      200  {array}  models.User
// @Router       /users [get]
// @Security     OAuth2Password
func (controller *UserController) ListUsers(c echo.Context) error {
	users, err := controller.svc.Users(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list users: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary      Create an account
// @Description  Admin-provisioned account with a fixed role
// @Accept       json
// @Produce      json
// @Tags         Users
// @Param        account  body      CreateUserRequestBody  true  "New account"
// @Success      200      {object}  models.User
// @Failure      409      {object}  responses.ErrorResponse
// @Router       /users [post]
// @Security     OAuth2Password
func (controller *UserController) CreateUser(c echo.Context) error {
	var body CreateUserRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	role, err := common.ParseRole(body.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	actor := actorFromContext(c)
	user, err := controller.svc.CreateUser(c.Request().Context(), body.Name, body.Email, body.Password, role, &actor)
	if err != nil {
		c.Logger().Errorf("Failed to create user: %v", err)
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete an account
// @Description  Removes the account and its expenses. Admins can not delete themselves.
// @Produce      json
// @Tags         Users
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  nil
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /users/{id} [delete]
// @Security     OAuth2Password
func (controller *UserController) DeleteUser(c echo.Context) error {
	userId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := controller.svc.DeleteUser(c.Request().Context(), userId, actorFromContext(c)); err != nil {
		c.Logger().Errorf("Failed to delete user_id:%v error: %v", userId, err)
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ChangePassword godoc
// @Summary      Change own password
// @Accept       json
// @Produce      json
// @Tags         Users
// @Param        passwords  body      ChangePasswordRequestBody  true  "Current and new password"
// @Success      200        {object}  nil
// @Failure      400        {object}  responses.ErrorResponse
// @Router       /users/me/password [patch]
// @Security     OAuth2Password
func (controller *UserController) ChangePassword(c echo.Context) error {
	var body ChangePasswordRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load change password request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	userId := c.Get("UserID").(int64)
	if err := controller.svc.ChangePassword(c.Request().Context(), userId, body.CurrentPassword, body.NewPassword); err != nil {
		// a wrong current password surfaces as a bad request, not forbidden
		if err == service.ErrForbidden {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
