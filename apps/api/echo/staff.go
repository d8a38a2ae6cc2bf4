package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core/staff"
)

type staffApi struct {
	svc      *staff.Service
	validate *validator.Validate
}

func registerStaffAPI(g *echo.Group, svc *staff.Service, validate *validator.Validate) {
	api := staffApi{svc: svc, validate: validate}

	sg := g.Group("/staff")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/:username", api.retrieve)
	sg.PUT("/:username/status", api.setStatus)
}

func (api *staffApi) query(ctx echo.Context) error {
	all, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying staff")
	}
	return ctx.JSON(http.StatusOK, all)
}

func (api *staffApi) retrieve(ctx echo.Context) error {
	st, err := api.svc.GetByUsername(ctx.Request().Context(), ctx.Param("username"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *staffApi) create(ctx echo.Context) error {
	var data staff.NewStaff
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStaff")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	st, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *staffApi) setStatus(ctx echo.Context) error {
	var data struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding status")
	}

	st, err := api.svc.SetStatus(ctx.Request().Context(), ctx.Param("username"), data.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}
