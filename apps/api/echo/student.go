package echoapi

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/apps"
	"github.com/saraswati/sdms/core/academic"
	"github.com/saraswati/sdms/core/student"
	"github.com/saraswati/sdms/services/idcard"
	"github.com/saraswati/sdms/services/pdfreport"
)

type studentApi struct {
	svc       *student.Service
	academic  *academic.Service
	idCard    *idcard.Generator
	pdfReport *pdfreport.Generator
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svcs *apps.Services) {
	api := studentApi{
		svc:       svcs.Student,
		academic:  svcs.Academic,
		idCard:    svcs.IDCard,
		pdfReport: svcs.PDFReport,
	}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	dg := sg.Group("/:id", ctxStudentMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/marks", api.marks)
	dg.GET("/marks.pdf", api.marksPDF)
	dg.GET("/id-card", api.idCardImage)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	q := bindStudentQuery(ctx)
	students, err := api.svc.Search(ctx.Request().Context(), q.Search, q.Orderings...)
	if err != nil {
		return err
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.Form
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to student.Form")
	}

	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) update(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	var data student.Form
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to student.Form")
	}

	s, err = api.svc.Update(ctx.Request().Context(), s.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), s.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) marks(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	marks, err := api.academic.MarksForStudent(ctx.Request().Context(), s.ID)
	if err != nil {
		return err
	}
	if marks == nil {
		marks = []academic.Mark{}
	}
	return ctx.JSON(http.StatusOK, marks)
}

func (api *studentApi) marksPDF(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := api.pdfReport.Generate(ctx.Request().Context(), &buf, s.ID); err != nil {
		return err
	}
	setAttachment(ctx, pdfreport.DefaultFilename(s.RollNumber))
	return ctx.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

func (api *studentApi) idCardImage(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	format := ctx.QueryParam("format")
	if format == "" {
		format = "png"
	}
	contentType := "image/png"
	if format == "jpg" || format == "jpeg" {
		contentType = "image/jpeg"
	} else if format != "png" {
		return echo.NewHTTPError(http.StatusBadRequest, "format must be png or jpg")
	}

	card := api.idCard.Render(s)
	var buf bytes.Buffer
	if err := card.Encode(&buf, format); err != nil {
		return err
	}
	for _, w := range card.Warnings {
		ctx.Response().Header().Add("Warning", `199 - "`+w.Error()+`"`)
	}
	return ctx.Blob(http.StatusOK, contentType, buf.Bytes())
}

func setAttachment(ctx echo.Context, filename string) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	ctx.Response().Header().Set(echo.HeaderContentDisposition, disposition)
}
