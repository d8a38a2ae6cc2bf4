package main

import (
	"context"
	"fmt"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
)

const dueDateLayout = "2006-01-02"

// remind texts a fee reminder to the guardian of every unpaid invoice, or
// only the past-due ones with -overdue.
func (cli *commandLine) remind(overdueOnly bool) error {
	ctx := context.Background()

	var (
		claims []claim.Claim
		err    error
	)
	if overdueOnly {
		claims, err = cli.claimSvc.QueryOverdue(ctx)
	} else {
		claims, err = cli.claimSvc.QueryUnpaid(ctx)
	}
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		logger.Println("no invoices to remind")
		return nil
	}

	body := cli.templateSvc.Get(ctx).FeeReminder

	msgs := make([]*core.SmsMessage, 0, len(claims))
	for _, c := range claims {
		if c.GuardianPhone == "" {
			logger.Printf("skipping %s: no guardian phone", c.InvoiceNumber)
			continue
		}
		dueDate := ""
		if !c.DueDate.IsZero() {
			dueDate = c.DueDate.Format(dueDateLayout)
		}
		msgs = append(msgs, &core.SmsMessage{
			To:   []string{c.GuardianPhone},
			Body: body,
			TemplateData: map[string]string{
				"guardian":       c.GuardianName,
				"student":        c.StudentName,
				"class":          c.Class,
				"balance":        core.FormatAmount(c.Balance),
				"due_date":       dueDate,
				"invoice_number": c.InvoiceNumber,
			},
		})
	}

	cli.smsSvc.SendMessages(msgs...)
	logger.Println(fmt.Sprintf("queued %d reminders", len(msgs)))
	return nil
}
