package main

import (
	"context"
	"fmt"
	"os"

	"github.com/saraswati/sdms/apps"
	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/services/idcard"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	logger := apps.NewLogger(conf)

	// set up DB
	db, err := apps.SetUpDB(context.Background(), conf, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("setting up database: %v", err), err)
		os.Exit(1)
	}
	idcard.CheckAssets(conf, logger)

	// start CLI
	cli := newCommandLine(db, apps.NewServices(db, conf, logger), os.Stdout)
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		switch {
		case err == errHelp:
		case apps.IsArgumentError(err):
			fmt.Fprintf(os.Stderr, "invalid argument: %s\n", err)
		default:
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
