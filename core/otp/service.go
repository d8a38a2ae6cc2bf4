package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/smstpl"
)

var (
	// errors
	ErrNotFound = errors.New("no verification code for this invoice")
	ErrExpired  = errors.New("verification code has expired")
	ErrMismatch = errors.New("verification code does not match")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		GetCodeByInvoice(ctx context.Context, invoiceID string) (Code, error)
		// SaveCode upserts on InvoiceID.
		SaveCode(ctx context.Context, c Code) error
		// ClearCode blanks the row in place (index-preserving soft delete).
		ClearCode(ctx context.Context, invoiceID string) error
		// SweepExpired clears every row whose expiry is before now and
		// returns how many were swept.
		SweepExpired(ctx context.Context, now time.Time) (int, error)
	}

	// Templates supplies the current SMS template set; the admin edits the
	// otp_message body in the Templates sheet.
	Templates interface {
		Get(ctx context.Context) smstpl.TemplateSet
	}

	Service struct {
		repo   Repository
		sms    core.SmsService
		tpl    Templates
		logger core.Logger
		ttl    time.Duration
	}
)

func NewService(repo Repository, sms core.SmsService, tpl Templates, logger core.Logger, ttl time.Duration) *Service {
	return &Service{repo: repo, sms: sms, tpl: tpl, logger: logger, ttl: ttl}
}

// Issue generates a fresh code for the invoice, stores it (replacing any
// previous one) and texts it to the guardian. Expired rows are swept on the
// way in; nothing else ever deletes them.
func (svc *Service) Issue(ctx context.Context, invoiceID, studentName, phone string, amount float64) (Code, error) {
	svc.sweep(ctx)

	raw, err := generateCode()
	if err != nil {
		return Code{}, err
	}
	c := Code{
		ID:          uuid.NewString(),
		InvoiceID:   core.CleanString(invoiceID),
		Code:        raw,
		Amount:      amount,
		StudentName: core.CleanString(studentName),
		ExpiresAt:   NowFunc().UTC().Add(svc.ttl),
	}
	if err := svc.repo.SaveCode(ctx, c); err != nil {
		return Code{}, err
	}

	svc.sms.SendMessages(&core.SmsMessage{
		To:   []string{phone},
		Body: renderOTPBody(svc.tpl.Get(ctx).OTPMessage, c.Code, svc.ttl),
		TemplateData: map[string]string{
			"student":        c.StudentName,
			"amount":         core.FormatAmount(c.Amount),
			"invoice_number": c.InvoiceID,
		},
	})
	return c, nil
}

// renderOTPBody fills the %OTPCODE% and %EXPIRY% tokens locally. This
// message goes out as a plain SMS rather than through the gateway's OTP
// endpoint, but the template keeps the %PLACEHOLDER% convention so the one
// otp_message body serves both paths. Any {placeholder} tokens are left for
// SmsMessage.Render.
func renderOTPBody(tpl, code string, ttl time.Duration) string {
	return strings.NewReplacer(
		"%OTPCODE%", code,
		"%EXPIRY%", strconv.Itoa(int(ttl.Minutes())),
	).Replace(tpl)
}

// SendPhoneVerification has the gateway generate and text its own code to
// the number; the gateway holds that code and VerifyPhone checks it back.
// Used to confirm a guardian owns the number on file before a payment link
// or receipt goes out.
func (svc *Service) SendPhoneVerification(ctx context.Context, phone string) error {
	phone = core.CleanString(phone)
	if phone == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "phone", Error: "this field is required"})
	}
	return svc.sms.SendOTP(ctx, core.OTPRequest{
		Phone:     phone,
		Template:  svc.tpl.Get(ctx).OTPMessage,
		ExpiryMin: int(svc.ttl.Minutes()),
	})
}

// VerifyPhone checks a gateway-issued code for the number.
func (svc *Service) VerifyPhone(ctx context.Context, phone, code string) error {
	return svc.sms.VerifyOTP(ctx, core.CleanString(phone), core.CleanString(code))
}

// Verify checks the code for an invoice and consumes it on success.
func (svc *Service) Verify(ctx context.Context, invoiceID, code string) error {
	svc.sweep(ctx)

	c, err := svc.repo.GetCodeByInvoice(ctx, core.CleanString(invoiceID))
	if err != nil {
		return err
	}
	if c.Expired(NowFunc().UTC()) {
		// lazily clear the spent row; the sweep will get it anyway
		if cerr := svc.repo.ClearCode(ctx, c.InvoiceID); cerr != nil {
			svc.logger.Warn("clearing expired verification code", cerr)
		}
		return ErrExpired
	}
	if subtle.ConstantTimeCompare([]byte(c.Code), []byte(core.CleanString(code))) == 0 {
		return ErrMismatch
	}
	return svc.repo.ClearCode(ctx, c.InvoiceID)
}

func (svc *Service) sweep(ctx context.Context) {
	if n, err := svc.repo.SweepExpired(ctx, NowFunc().UTC()); err != nil {
		svc.logger.Warn("sweeping expired verification codes", err)
	} else if n > 0 {
		svc.logger.Debug(fmt.Sprintf("swept %d expired verification codes", n))
	}
}
