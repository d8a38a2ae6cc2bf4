package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
)

type claimApi struct {
	svc      *claim.Service
	validate *validator.Validate
}

func registerClaimAPI(g *echo.Group, svc *claim.Service, validate *validator.Validate) {
	api := claimApi{svc: svc, validate: validate}

	cg := g.Group("/claims")
	cg.GET("", api.query)
	cg.POST("", api.save)
	cg.DELETE("", api.destroyMultiple)
	cg.GET("/:invoice", api.retrieve)
	cg.POST("/:invoice/pay", api.markPaid)
}

// query lists claims; ?status=unpaid|overdue narrows the set.
func (api *claimApi) query(ctx echo.Context) error {
	var (
		claims []claim.Claim
		err    error
	)
	switch ctx.QueryParam("status") {
	case "unpaid":
		claims, err = api.svc.QueryUnpaid(ctx.Request().Context())
	case "overdue":
		claims, err = api.svc.QueryOverdue(ctx.Request().Context())
	default:
		claims, err = api.svc.QueryAll(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying claims")
	}
	return ctx.JSON(http.StatusOK, claims)
}

func (api *claimApi) retrieve(ctx echo.Context) error {
	c, err := api.svc.GetByInvoice(ctx.Request().Context(), ctx.Param("invoice"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

// save upserts an invoice; the response says whether it was created or
// updated so the dashboard can word its toast accordingly.
func (api *claimApi) save(ctx echo.Context) error {
	var data claim.NewClaim
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClaim")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	c, outcome, err := api.svc.Save(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving claim")
	}

	status := http.StatusOK
	if outcome == core.Created {
		status = http.StatusCreated
	}
	return ctx.JSON(status, echo.Map{"outcome": outcome.String(), "claim": c})
}

func (api *claimApi) markPaid(ctx echo.Context) error {
	var data struct {
		Reference string `json:"reference"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding payment data")
	}

	c, err := api.svc.MarkPaid(ctx.Request().Context(), ctx.Param("invoice"), data.Reference)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *claimApi) destroyMultiple(ctx echo.Context) error {
	var data struct {
		InvoiceNumbers []string `json:"invoice_numbers"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding invoice numbers")
	}
	if len(data.InvoiceNumbers) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "invoice_numbers", Error: "at least one invoice number is required"})
	}

	n, err := api.svc.Delete(ctx.Request().Context(), data.InvoiceNumbers...)
	if err != nil {
		return errors.Wrap(err, "deleting claims")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"deleted": n})
}
