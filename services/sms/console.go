package smssvc

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core"
)

var (
	SentMessages = make([]core.SmsMessage, 0)
	mu           sync.Mutex
)

// consoleService prints messages instead of sending them and records them in
// SentMessages so tests can assert on deliveries.
type consoleService struct {
	disableOutput bool
	issuedOTPs    map[string]bool
}

var _ core.SmsService = (*consoleService)(nil)

func NewConsoleService() *consoleService {
	return &consoleService{issuedOTPs: make(map[string]bool)}
}

// NewSilentConsoleService suppresses stdout; for tests.
func NewSilentConsoleService() *consoleService {
	return &consoleService{disableOutput: true, issuedOTPs: make(map[string]bool)}
}

func (svc *consoleService) SendMessages(messages ...*core.SmsMessage) {
	// synchronous on purpose: tests assert on SentMessages right after
	for _, msg := range messages {
		msg.Render()
		if !(msg.HasRecipients() && msg.HasContent()) {
			continue
		}
		svc.print(msg)
		mu.Lock()
		SentMessages = append(SentMessages, *msg)
		mu.Unlock()
	}
}

func (svc *consoleService) SendOTP(_ context.Context, req core.OTPRequest) error {
	mu.Lock()
	svc.issuedOTPs[req.Phone] = true
	mu.Unlock()
	if !svc.disableOutput {
		log.Printf("sms: OTP to %s: %s", req.Phone, req.Template)
	}
	return nil
}

func (svc *consoleService) VerifyOTP(_ context.Context, phone, code string) error {
	mu.Lock()
	issued := svc.issuedOTPs[phone]
	mu.Unlock()
	if !issued || strings.TrimSpace(code) == "" {
		return errors.Wrapf(core.ErrOTPRejected, "no pending otp for %s", phone)
	}
	return nil
}

func (svc *consoleService) print(msg *core.SmsMessage) {
	if svc.disableOutput {
		return
	}
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", strings.Join(msg.To, ", "))
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "%s\r\n", msg.Body)
	log.Printf("sms:\n%s", body.String())
}

// ClearSentMessages resets the recorded deliveries between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}

// LastMessage returns the most recent delivery, if any.
func LastMessage() (core.SmsMessage, bool) {
	mu.Lock()
	defer mu.Unlock()
	if len(SentMessages) == 0 {
		return core.SmsMessage{}, false
	}
	return SentMessages[len(SentMessages)-1], true
}
