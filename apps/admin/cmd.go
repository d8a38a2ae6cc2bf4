package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
	"github.com/mensahq/sukuu/core/smstpl"
	"github.com/mensahq/sukuu/core/staff"
	"github.com/mensahq/sukuu/storage/sheetdb"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db          *sheetdb.DB
	staffSvc    *staff.Service
	claimSvc    *claim.Service
	templateSvc *smstpl.Service
	smsSvc      core.SmsService
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addstaff -name NAME -username USERNAME -role ROLE [-contact PHONE] [-class CLASS] - add a staff member; the password will be prompted")
	fmt.Println("  resetpassword -username USERNAME - reset a staff member's password")
	fmt.Println("  remind [-overdue] - text a fee reminder to guardians of unpaid invoices")
	fmt.Println("  seedsheets [-classes CLASS,CLASS,...] - create any missing sheets with their header rows")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStaffCmd := flag.NewFlagSet("addstaff", flag.ExitOnError)
	addStaffName := addStaffCmd.String("name", "", "The staff member's full name.")
	addStaffUname := addStaffCmd.String("username", "", "The staff member's username.")
	addStaffRole := addStaffCmd.String("role", "", "One of: admin, teacher, non-teaching.")
	addStaffContact := addStaffCmd.String("contact", "", "The staff member's phone number.")
	addStaffClass := addStaffCmd.String("class", "", "The class taught, for teachers.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The staff member's username. The password will be prompted next.")

	remindCmd := flag.NewFlagSet("remind", flag.ExitOnError)
	remindOverdue := remindCmd.Bool("overdue", false, "Only remind invoices past their due date.")

	seedSheetsCmd := flag.NewFlagSet("seedsheets", flag.ExitOnError)
	seedSheetsClasses := seedSheetsCmd.String("classes", "", "Comma-separated class names needing assessment sheets.")

	switch args[1] {
	case "addstaff":
		if err := addStaffCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStaffName == "" || *addStaffUname == "" || *addStaffRole == "" {
			addStaffCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addStaffCmd.Usage()
			return errHelp
		}
		return cli.addStaff(*addStaffName, *addStaffUname, *addStaffRole, *addStaffContact, *addStaffClass, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)
	case "remind":
		if err := remindCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.remind(*remindOverdue)
	case "seedsheets":
		if err := seedSheetsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seedSheets(*seedSheetsClasses)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
