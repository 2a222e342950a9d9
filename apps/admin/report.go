package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core/report"
)

func (cli *commandLine) report(ctx context.Context, name, course, semester, out string) error {
	tbl, err := cli.svcs.Report.Generate(ctx, name, report.Params{Course: course, Semester: semester})
	if err != nil {
		return err
	}
	if out == "" {
		_, err = fmt.Fprint(cli.out, tbl.Text())
		return err
	}

	if err := writeFile(out, tbl.WriteXLSX); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "report saved to %s\n", out)
	return nil
}

// writeFile creates path and fills it with write; a failed write leaves no file behind.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}
