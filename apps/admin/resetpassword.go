package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) resetPassword(ctx context.Context, id, pwd string) error {
	if err := cli.svcs.User.ResetPassword(ctx, id, pwd); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "password of %q reset\n", id)
	return nil
}
