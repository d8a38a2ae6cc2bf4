// Package smssvc provides core.SmsService implementations: the production
// HTTP gateway client and a console service for DEV and tests.
package smssvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/mensahq/sukuu/core"
)

const (
	sendEndpoint      = "/sms/send"
	otpGenEndpoint    = "/otp/generate"
	otpVerifyEndpoint = "/otp/verify"
)

type gatewayService struct {
	base     string
	apiKey   string
	username string
	sender   string
	client   *http.Client
	logger   core.Logger
}

var _ core.SmsService = (*gatewayService)(nil)

func NewGatewayService(logger core.Logger) *gatewayService {
	sender := core.Conf.SMS.SenderID
	if sender == "" {
		// the gateway rejects messages without a sender ID outright
		sender = core.Conf.SMS.FallbackSenderID
	}
	return &gatewayService{
		base:     core.Conf.SMS.BaseURL,
		apiKey:   core.Conf.SMS.APIKey,
		username: core.Conf.SMS.Username,
		sender:   sender,
		client:   &http.Client{Timeout: core.Conf.Sheet.RequestTimeout},
		logger:   logger,
	}
}

func (svc *gatewayService) SendMessages(messages ...*core.SmsMessage) {
	for _, msg := range messages {
		msg := msg
		go func() {
			msg.Render()
			if msg.HasRecipients() && msg.HasContent() {
				svc.send(msg)
			}
		}()
	}
}

func (svc *gatewayService) send(msg *core.SmsMessage) {
	payload := map[string]interface{}{
		"sender":     svc.sender,
		"message":    msg.Body,
		"recipients": msg.To,
	}
	if err := svc.post(context.Background(), sendEndpoint, payload, nil); err != nil {
		svc.logger.Error(fmt.Sprintf("sending sms to %v", msg.To), err)
	}
}

// SendOTP asks the gateway to generate and deliver a one-time code. The
// message template keeps the gateway's %PLACEHOLDER% tokens verbatim; the
// substitution happens on their side.
func (svc *gatewayService) SendOTP(ctx context.Context, req core.OTPRequest) error {
	if req.Length == 0 {
		req.Length = 6
	}
	if req.ExpiryMin == 0 {
		req.ExpiryMin = 5
	}
	payload := map[string]interface{}{
		"number":    req.Phone,
		"message":   req.Template,
		"sender_id": svc.sender,
		"medium":    "sms",
		"type":      "numeric",
		"length":    req.Length,
		"expiry":    req.ExpiryMin,
	}
	return svc.post(ctx, otpGenEndpoint, payload, nil)
}

func (svc *gatewayService) VerifyOTP(ctx context.Context, phone, code string) error {
	payload := map[string]interface{}{
		"number": phone,
		"code":   code,
	}
	var res struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := svc.post(ctx, otpVerifyEndpoint, payload, &res); err != nil {
		return err
	}
	if res.Code != "1100" { // gateway's "verification successful"
		return errors.Wrap(core.ErrOTPRejected, res.Message)
	}
	return nil
}

func (svc *gatewayService) post(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encoding gateway payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.base+endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", svc.apiKey)
	req.Header.Set("username", svc.username)

	res, err := svc.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "calling gateway %s", endpoint)
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("gateway %s: status %d", endpoint, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decoding gateway %s response", endpoint)
		}
	}
	return nil
}
