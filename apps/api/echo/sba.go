package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/sba"
)

type sbaApi struct {
	svc      *sba.Service
	validate *validator.Validate
}

func registerSBAAPI(g *echo.Group, svc *sba.Service, validate *validator.Validate) {
	api := sbaApi{svc: svc, validate: validate}

	bg := g.Group("/sba")
	bg.GET("/:class", api.queryClass)
	bg.GET("/:class/:studentID", api.queryStudent)
	bg.POST("", api.save)
}

func (api *sbaApi) queryClass(ctx echo.Context) error {
	recs, err := api.svc.QueryByClass(ctx.Request().Context(), ctx.Param("class"))
	if err != nil {
		return errors.Wrap(err, "querying class records")
	}
	return ctx.JSON(http.StatusOK, recs)
}

// queryStudent lists one student's records; ?term= narrows to one term.
func (api *sbaApi) queryStudent(ctx echo.Context) error {
	recs, err := api.svc.QueryByStudent(ctx.Request().Context(), ctx.Param("class"), ctx.Param("studentID"), ctx.QueryParam("term"))
	if err != nil {
		return errors.Wrap(err, "querying student records")
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *sbaApi) save(ctx echo.Context) error {
	var data sba.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	rec, outcome, err := api.svc.Save(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving record")
	}

	status := http.StatusOK
	if outcome == core.Created {
		status = http.StatusCreated
	}
	return ctx.JSON(status, echo.Map{"outcome": outcome.String(), "record": rec})
}
