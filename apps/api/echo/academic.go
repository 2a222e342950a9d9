package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/academic"
)

type academicApi struct {
	svc *academic.Service
}

func registerAcademicAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *academic.Service) {
	api := academicApi{svc: svc}

	mg := g.Group("/marks", jwt)
	mg.POST("", api.create)
	mg.GET("", api.query)
}

func (api *academicApi) create(ctx echo.Context) error {
	var data academic.MarkForm
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkForm")
	}

	m, err := api.svc.AddMark(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, m)
}

// query lists the marks of the student given by `?roll=`.
func (api *academicApi) query(ctx echo.Context) error {
	roll := ctx.QueryParam("roll")
	if core.CleanString(roll) == "" {
		return core.NewFieldError("roll", "this field is required")
	}
	marks, err := api.svc.MarksFor(ctx.Request().Context(), roll)
	if err != nil {
		return err
	}
	if marks == nil {
		marks = []academic.Mark{}
	}
	return ctx.JSON(http.StatusOK, marks)
}
