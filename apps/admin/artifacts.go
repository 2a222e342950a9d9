package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/services/idcard"
	"github.com/saraswati/sdms/services/pdfreport"
)

func (cli *commandLine) idCard(ctx context.Context, roll, out string) error {
	card, err := cli.svcs.IDCard.Generate(ctx, roll)
	if err != nil {
		return err
	}
	if out == "" {
		out = idcard.DefaultFilename(core.CleanString(roll))
	}
	if err := card.Save(out); err != nil {
		return err
	}
	for _, w := range card.Warnings {
		fmt.Fprintf(cli.out, "warning: %v\n", w)
	}
	fmt.Fprintf(cli.out, "ID card saved to %s\n", out)
	return nil
}

func (cli *commandLine) marksReport(ctx context.Context, roll, out string) error {
	s, err := cli.svcs.Student.GetByRoll(ctx, roll)
	if err != nil {
		if core.IsNotFound(err) {
			return core.NewReferenceError("student", "roll_number", core.CleanString(roll))
		}
		return errors.Wrap(err, "finding student by roll number")
	}
	if out == "" {
		out = pdfreport.DefaultFilename(s.RollNumber)
	}
	if _, err := cli.svcs.PDFReport.GenerateFile(ctx, filepath.Clean(out), s.ID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "marks report saved to %s\n", out)
	return nil
}
