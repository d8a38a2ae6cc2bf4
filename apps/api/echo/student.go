package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core/student"
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.GET("/owing", api.queryOwing)
	sg.GET("/:id", api.retrieve)
}

// query lists students; ?class= narrows to one class.
func (api *studentApi) query(ctx echo.Context) error {
	var (
		students []student.Student
		err      error
	)
	if class := ctx.QueryParam("class"); class != "" {
		students, err = api.svc.QueryByClass(ctx.Request().Context(), class)
	} else {
		students, err = api.svc.QueryAll(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) queryOwing(ctx echo.Context) error {
	students, err := api.svc.QueryOwing(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying owing students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}
