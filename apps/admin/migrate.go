package main

import (
	"context"

	"github.com/saraswati/sdms/storage/database"
)

var gooseRunFunc = database.RunMigration // mockable

func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(ctx, cli.db, cli.svcs.Logger, args[0], arguments...)
}

func (cli *commandLine) createDB(ctx context.Context) error {
	if err := database.CreateIfNotExist(ctx, cli.svcs.Conf); err != nil {
		return err
	}
	return database.Initialize(ctx, cli.db, cli.svcs.Conf, cli.svcs.Logger)
}
