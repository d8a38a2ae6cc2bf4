package main

import (
	"context"

	"github.com/mensahq/sukuu/core/staff"
)

func (cli *commandLine) addStaff(name, uname, role, contact, class, pwd string) error {
	_, err := cli.staffSvc.Create(context.Background(), staff.NewStaff{
		Name:     name,
		Username: uname,
		Role:     role,
		Contact:  contact,
		Class:    class,
		Password: pwd,
	})
	return err
}

func (cli *commandLine) resetPassword(uname, pwd string) error {
	return cli.staffSvc.ResetPassword(context.Background(), uname, pwd)
}
