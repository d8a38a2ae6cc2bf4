package smstpl

// TemplateSet is the singleton set of SMS template strings kept in the
// Templates sheet. Bodies use {placeholder} tokens; OTPMessage is the one
// exception, written in the gateway's %PLACEHOLDER% convention because the
// gateway substitutes those itself.
type TemplateSet struct {
	FeeReminder    string `json:"fee_reminder"`
	InvoiceNotice  string `json:"invoice_notice"`
	PaymentReceipt string `json:"payment_receipt"`
	OTPMessage     string `json:"otp_message"`
}

// Defaults are the compiled-in templates served when the sheet was never
// reachable. They are intentionally plain; the admin customizes the real
// ones in the sheet.
var Defaults = TemplateSet{
	FeeReminder:    "Dear {guardian}, {student} of {class} has an outstanding fee balance of {balance}. Kindly settle by {due_date}. Thank you.",
	InvoiceNotice:  "Dear {guardian}, invoice {invoice_number} for {student} has been issued. Amount due: {balance}.",
	PaymentReceipt: "Dear {guardian}, we received your payment for invoice {invoice_number}. Reference: {reference}. Thank you.",
	OTPMessage:     "Your payment verification code is %OTPCODE%. It expires in %EXPIRY% minutes.",
}

// Names of the template rows in the sheet, first column.
const (
	KeyFeeReminder    = "fee_reminder"
	KeyInvoiceNotice  = "invoice_notice"
	KeyPaymentReceipt = "payment_receipt"
	KeyOTPMessage     = "otp_message"
)

// Merge fills any blank entries from the defaults so a half-filled sheet
// never blanks a message.
func (ts TemplateSet) Merge(defaults TemplateSet) TemplateSet {
	if ts.FeeReminder == "" {
		ts.FeeReminder = defaults.FeeReminder
	}
	if ts.InvoiceNotice == "" {
		ts.InvoiceNotice = defaults.InvoiceNotice
	}
	if ts.PaymentReceipt == "" {
		ts.PaymentReceipt = defaults.PaymentReceipt
	}
	if ts.OTPMessage == "" {
		ts.OTPMessage = defaults.OTPMessage
	}
	return ts
}
