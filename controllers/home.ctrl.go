package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeController : HomeController struct
type HomeController struct{}

func NewHomeController() *HomeController {
	return &HomeController{}
}

// Home godoc
// @Summary      Service banner
// @Produce      json
// @Tags         Info
// @Success      200  {object}  echo.Map
// @Router       / [get]
func (controller *HomeController) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"name": "pettycash", "status": "ok"})
}
