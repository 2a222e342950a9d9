package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/saraswati/sdms/apps"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db   *sqlx.DB
	svcs *apps.Services
	out  io.Writer
}

func newCommandLine(db *sqlx.DB, svcs *apps.Services, out io.Writer) *commandLine {
	return &commandLine{db: db, svcs: svcs, out: out}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...]                       - run a goose command (up, down, status, version, ...)")
	fmt.Fprintln(cli.out, "  createdb                                        - create the postgres role and database if missing")
	fmt.Fprintln(cli.out, "  adduser -id ID -name NAME [-admin]              - create or update a user; the password is prompted")
	fmt.Fprintln(cli.out, "  resetpassword -id ID                            - reset a user's password; the password is prompted")
	fmt.Fprintln(cli.out, "  idcard -roll ROLL [-out FILE.png|FILE.jpg]      - render a student's ID card")
	fmt.Fprintln(cli.out, "  marksreport -roll ROLL [-out FILE.pdf]          - export a student's marks as PDF")
	fmt.Fprintln(cli.out, "  report -name NAME [-course C -semester S] [-out FILE.xlsx] - print or export a report")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// checkExt rejects an output file whose extension is not one of exts. No file means the default one.
func checkExt(out string, exts ...string) error {
	if out == "" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(out))
	for _, e := range exts {
		if ext == e {
			return nil
		}
	}
	return apps.NewArgumentError("out", fmt.Sprintf("unsupported file extension %q, want one of %s", ext, strings.Join(exts, " ")))
}

// promptPassword reads a password from the terminal without echo.
func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	addUserCmd := cli.newFlagSet("adduser")
	addUserID := addUserCmd.String("id", "", "The user id (login).")
	addUserName := addUserCmd.String("name", "", "The user's display name.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Give the administrator role.")

	resetPasswordCmd := cli.newFlagSet("resetpassword")
	resetPasswordID := resetPasswordCmd.String("id", "", "The user id. The password will be prompted next.")

	idCardCmd := cli.newFlagSet("idcard")
	idCardRoll := idCardCmd.String("roll", "", "The student's roll number.")
	idCardOut := idCardCmd.String("out", "", "Output file (.png, .jpg). Defaults to ID_Card_<roll>.png")

	marksReportCmd := cli.newFlagSet("marksreport")
	marksReportRoll := marksReportCmd.String("roll", "", "The student's roll number.")
	marksReportOut := marksReportCmd.String("out", "", "Output file. Defaults to <roll>_marks_report.pdf")

	reportCmd := cli.newFlagSet("report")
	reportName := reportCmd.String("name", "", "The report name.")
	reportCourse := reportCmd.String("course", "", "Course name (marks report).")
	reportSemester := reportCmd.String("semester", "", "Semester (marks report).")
	reportOut := reportCmd.String("out", "", "Export to this .xlsx file instead of printing.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(ctx, args[2:])
	case "createdb":
		return cli.createDB(ctx)
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserID == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(ctx, *addUserID, *addUserName, pwd, *addUserAdmin)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordID == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(ctx, *resetPasswordID, pwd)
	case "idcard":
		if err := idCardCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *idCardRoll == "" {
			idCardCmd.Usage()
			return errHelp
		}
		if err := checkExt(*idCardOut, ".png", ".jpg", ".jpeg"); err != nil {
			return err
		}
		return cli.idCard(ctx, *idCardRoll, *idCardOut)
	case "marksreport":
		if err := marksReportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *marksReportRoll == "" {
			marksReportCmd.Usage()
			return errHelp
		}
		if err := checkExt(*marksReportOut, ".pdf"); err != nil {
			return err
		}
		return cli.marksReport(ctx, *marksReportRoll, *marksReportOut)
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *reportName == "" {
			reportCmd.Usage()
			return errHelp
		}
		if err := checkExt(*reportOut, ".xlsx"); err != nil {
			return err
		}
		return cli.report(ctx, *reportName, *reportCourse, *reportSemester, *reportOut)
	default:
		cli.printUsage()
		return errHelp
	}
}
