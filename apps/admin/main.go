package main

import (
	"context"
	"log"
	"os"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
	"github.com/mensahq/sukuu/core/smstpl"
	"github.com/mensahq/sukuu/core/staff"
	smssvc "github.com/mensahq/sukuu/services/sms"
	"github.com/mensahq/sukuu/storage/sheetdb"
	googlesheet "github.com/mensahq/sukuu/storage/sheetdb/google"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.Conf
	appLogger := core.NewStdLogger(logger)

	// set up the sheet store
	store, err := googlesheet.Open(context.Background(), conf)
	errAndDie(err)
	csv := sheetdb.NewCSVClient(conf.Sheet.CSVExportBase, conf.Sheet.SpreadsheetID, nil)
	db := sheetdb.NewDB(store, csv, appLogger, conf)

	var smsSvc core.SmsService
	if conf.Debug {
		smsSvc = smssvc.NewConsoleService()
	} else {
		smsSvc = smssvc.NewGatewayService(appLogger)
	}

	// start CLI
	cli := commandLine{
		db:          db,
		staffSvc:    staff.NewService(sheetdb.NewStaffRepository(db)),
		claimSvc:    claim.NewService(sheetdb.NewClaimRepository(db)),
		templateSvc: smstpl.NewService(sheetdb.NewTemplateRepository(db), appLogger, conf.TemplateCacheTTL),
		smsSvc:      smsSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
