package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/staff"
)

// RollbarLogger reports to both the local std logger and rollbar. Every
// report carries the spreadsheet ID so outages can be matched to the sheet
// that was being read.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetCustom(map[string]interface{}{"spreadsheet_id": conf.Sheet.SpreadsheetID})
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// report forwards to rollbar and mirrors to the std logger. Args may carry a
// staff.Staff to tag the acting admin on the report; the contact number is
// scrubbed since guardian and staff phones must not end up in a third-party
// dashboard.
func (l RollbarLogger) report(send func(...interface{}), msg string, args []interface{}) {
	fwd := make([]interface{}, 0, len(args)+1)
	fwd = append(fwd, msg)

	var tagged bool
	for _, arg := range args {
		st, ok := arg.(staff.Staff)
		if !ok {
			fwd = append(fwd, arg)
			continue
		}
		if !tagged {
			rollbar.SetPerson(st.Username, st.Name, "")
			tagged = true
		}
	}
	if !tagged {
		rollbar.ClearPerson()
	}
	send(fwd...)

	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.report(rollbar.Debug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.report(rollbar.Info, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.Warning, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.report(rollbar.Error, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.Critical, msg, args)
	l.std.Fatal(msg)
}
