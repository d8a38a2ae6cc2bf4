package core

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ErrOTPRejected is returned by VerifyOTP when the gateway rejects the code.
var ErrOTPRejected = errors.New("verification code rejected")

type (
	// SmsMessage is a single text message to one or more recipients.
	// Body may contain {placeholder} tokens resolved from TemplateData
	// before sending.
	SmsMessage struct {
		To   []string
		Body string

		TemplateData map[string]string
	}

	// OTPRequest asks the gateway to generate and deliver a one-time code.
	// The message template uses the gateway's own %PLACEHOLDER% token
	// convention (%OTPCODE%, %EXPIRY%); these are substituted gateway-side
	// and deliberately kept separate from our {placeholder} syntax.
	OTPRequest struct {
		Phone     string
		Template  string
		ExpiryMin int
		Length    int
	}

	// SmsService is any service that can deliver SMS and one-time codes.
	SmsService interface {
		// SendMessages sends messages concurrently; failures are logged,
		// not returned. Use the OTP methods when the caller must know.
		SendMessages(messages ...*SmsMessage)
		SendOTP(ctx context.Context, req OTPRequest) error
		VerifyOTP(ctx context.Context, phone, code string) error
	}
)

// Render resolves {placeholder} tokens in the message body from TemplateData.
// Unknown tokens are left in place so a truncated template is visible in the
// delivered message rather than silently blanked.
func (m *SmsMessage) Render() {
	if len(m.TemplateData) == 0 {
		return
	}
	pairs := make([]string, 0, len(m.TemplateData)*2)
	for k, v := range m.TemplateData {
		pairs = append(pairs, "{"+k+"}", v)
	}
	m.Body = strings.NewReplacer(pairs...).Replace(m.Body)
}

func (m *SmsMessage) HasRecipients() bool {
	for _, to := range m.To {
		if strings.TrimSpace(to) != "" {
			return true
		}
	}
	return false
}

func (m *SmsMessage) HasContent() bool {
	return strings.TrimSpace(m.Body) != ""
}
