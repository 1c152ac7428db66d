package controllers

import (
	"net/http"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/cashdesk/pettycash.go/lib/responses"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/labstack/echo/v4"
)

// AuthController : AuthController struct
type AuthController struct {
	svc *service.PettyCashService
}

func NewAuthController(svc *service.PettyCashService) *AuthController {
	return &AuthController{
		svc: svc,
	}
}

type LoginRequestBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
type LoginResponseBody struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type RegisterRequestBody struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// Login godoc
// @Summary      Log in
// @Description  Exchange email and password for a signed access token
// @Accept       json
// @Produce      json
// @Tags         Auth
// @Param        credentials  body      LoginRequestBody  true  "Credentials"
// @Success      200          {object}  LoginResponseBody
// @Failure      401          {object}  responses.ErrorResponse
// @Router       /auth/login [post]
func (controller *AuthController) Login(c echo.Context) error {
	var body LoginRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load login request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user, token, err := controller.svc.LoginUser(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
	}

	return c.JSON(http.StatusOK, &LoginResponseBody{
		Token: token,
		User:  user,
	})
}

// Register godoc
// @Summary      Create an account
// @Description  Self-service registration with a chosen role
// @Accept       json
// @Produce      json
// @Tags         Auth
// @Param        account  body      RegisterRequestBody  true  "New account"
// @Success      200      {object}  models.User
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      409      {object}  responses.ErrorResponse
// @Router       /auth/register [post]
func (controller *AuthController) Register(c echo.Context) error {
	var body RegisterRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load register request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	role, err := common.ParseRole(body.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user, err := controller.svc.CreateUser(c.Request().Context(), body.Name, body.Email, body.Password, role, nil)
	if err != nil {
		c.Logger().Errorf("Failed to register user: %v", err)
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// Me godoc
// @Summary      Current identity
// @Description  The identity carried by the presented token
// @Produce      json
// @Tags         Auth
// @Success      200  {object}  models.User
// @Router       /auth/me [get]
// @Security     OAuth2Password
func (controller *AuthController) Me(c echo.Context) error {
	user, err := controller.svc.FindUser(c.Request().Context(), c.Get("UserID").(int64))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
