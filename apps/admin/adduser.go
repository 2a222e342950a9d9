package main

import (
	"context"
	"fmt"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(ctx context.Context, id, name, pwd string, isAdmin bool) error {
	usr, err := cli.svcs.User.Save(ctx, id, name, pwd, isAdmin)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "user %q saved (role: %s)\n", usr.ID, usr.Role)
	return nil
}
