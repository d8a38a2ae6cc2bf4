package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
	"github.com/mensahq/sukuu/core/otp"
)

type verifyApi struct {
	svc      *otp.Service
	claimSvc *claim.Service
}

// registerVerifyAPI wires the payment verification flow: a code is issued
// against an invoice and texted to the guardian, then checked back before
// the payment is recorded.
func registerVerifyAPI(g *echo.Group, svc *otp.Service, claimSvc *claim.Service) {
	api := verifyApi{svc: svc, claimSvc: claimSvc}

	vg := g.Group("/verify")
	vg.POST("/issue", api.issue)
	vg.POST("/check", api.check)
	vg.POST("/phone", api.sendPhone)
	vg.POST("/phone/check", api.checkPhone)
}

func (api *verifyApi) issue(ctx echo.Context) error {
	var data struct {
		InvoiceNumber string `json:"invoice_number"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding invoice number")
	}
	if data.InvoiceNumber == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "invoice_number", Error: "this field is required"})
	}

	c, err := api.claimSvc.GetByInvoice(ctx.Request().Context(), data.InvoiceNumber)
	if err != nil {
		return err
	}
	// SendMessages drops recipient-less messages silently; a 201 here would
	// claim a text went out that never could
	if c.GuardianPhone == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "guardian_phone", Error: "no guardian phone on file for this invoice"})
	}

	code, err := api.svc.Issue(ctx.Request().Context(), c.InvoiceNumber, c.StudentName, c.GuardianPhone, c.Balance)
	if err != nil {
		return errors.Wrap(err, "issuing verification code")
	}
	// the code itself never leaves over HTTP; it travels by SMS only
	return ctx.JSON(http.StatusCreated, echo.Map{
		"invoice_number": code.InvoiceID,
		"expires_at":     code.ExpiresAt,
	})
}

func (api *verifyApi) check(ctx echo.Context) error {
	var data struct {
		InvoiceNumber string `json:"invoice_number"`
		Code          string `json:"code"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding verification data")
	}

	if err := api.svc.Verify(ctx.Request().Context(), data.InvoiceNumber, data.Code); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"verified": true})
}

// sendPhone confirms ownership of an arbitrary number through the gateway's
// own OTP flow: the gateway generates, texts and later verifies the code.
func (api *verifyApi) sendPhone(ctx echo.Context) error {
	var data struct {
		Phone string `json:"phone"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding phone number")
	}

	if err := api.svc.SendPhoneVerification(ctx.Request().Context(), data.Phone); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"sent": true})
}

func (api *verifyApi) checkPhone(ctx echo.Context) error {
	var data struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding verification data")
	}

	if err := api.svc.VerifyPhone(ctx.Request().Context(), data.Phone, data.Code); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"verified": true})
}
