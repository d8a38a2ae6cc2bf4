package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mensahq/sukuu/core/smstpl"
)

type templateApi struct {
	svc *smstpl.Service
}

func registerTemplateAPI(g *echo.Group, svc *smstpl.Service) {
	api := templateApi{svc: svc}

	tg := g.Group("/templates")
	tg.GET("", api.query)
	tg.POST("/refresh", api.refresh)
}

func (api *templateApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Get(ctx.Request().Context()))
}

// refresh drops the cached set so the next read hits the sheet. Called after
// an admin edits the Templates tab.
func (api *templateApi) refresh(ctx echo.Context) error {
	api.svc.Clear()
	return ctx.JSON(http.StatusOK, api.svc.Get(ctx.Request().Context()))
}
