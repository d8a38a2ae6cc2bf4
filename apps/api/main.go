package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"time"

	echoapi "github.com/mensahq/sukuu/apps/api/echo"
	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
	"github.com/mensahq/sukuu/core/otp"
	"github.com/mensahq/sukuu/core/sba"
	"github.com/mensahq/sukuu/core/smstpl"
	"github.com/mensahq/sukuu/core/staff"
	"github.com/mensahq/sukuu/core/student"
	logsvc "github.com/mensahq/sukuu/services/logger"
	smssvc "github.com/mensahq/sukuu/services/sms"
	"github.com/mensahq/sukuu/storage/sheetdb"
	googlesheet "github.com/mensahq/sukuu/storage/sheetdb/google"
)

const shutdownTimeout = 20 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.Conf

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	sheetLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "SHEET : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	sheetLogger.Enable(!conf.Debug)

	// set up the sheet store
	store, err := googlesheet.Open(context.Background(), conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening spreadsheet: %v", err), err)
	}
	csv := sheetdb.NewCSVClient(conf.Sheet.CSVExportBase, conf.Sheet.SpreadsheetID, nil)
	db := sheetdb.NewDB(store, csv, sheetLogger, conf)

	// set up services
	var smsSvc core.SmsService
	if conf.Debug {
		smsSvc = smssvc.NewConsoleService()
	} else {
		smsSvc = smssvc.NewGatewayService(logger)
	}

	studentSvc := student.NewService(sheetdb.NewStudentRepository(db))
	claimSvc := claim.NewService(sheetdb.NewClaimRepository(db))
	staffSvc := staff.NewService(sheetdb.NewStaffRepository(db))
	sbaSvc := sba.NewService(sheetdb.NewSBARepository(db))
	templateSvc := smstpl.NewService(sheetdb.NewTemplateRepository(db), sheetLogger, conf.TemplateCacheTTL)
	otpSvc := otp.NewService(sheetdb.NewCodeRepository(db), smsSvc, templateSvc, logger, conf.VerificationCodeTTL)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidators()

	// expose build info under /debug/vars
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			Validate:    validate,
			Translator:  translator,
			StudentSvc:  studentSvc,
			ClaimSvc:    claimSvc,
			StaffSvc:    staffSvc,
			SBASvc:      sbaSvc,
			TemplateSvc: templateSvc,
			OTPSvc:      otpSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
