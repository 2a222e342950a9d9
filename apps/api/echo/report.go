package echoapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core/report"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports", jwt)
	rg.GET("", api.names)
	rg.GET("/:name", api.generate)
}

func (api *reportApi) names(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, report.Names)
}

// generate renders the report as `?format=text` (default), `json` or `xlsx`.
func (api *reportApi) generate(ctx echo.Context) error {
	var params report.Params
	if err := ctx.Bind(&params); err != nil {
		return errors.Wrap(err, "binding to report.Params")
	}

	name := ctx.Param("name")
	format := ctx.QueryParam("format")
	switch format {
	case "", "text", "json", "xlsx":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "format must be text, json or xlsx")
	}

	tbl, err := api.svc.Generate(ctx.Request().Context(), name, params)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		if tbl.Rows == nil {
			tbl.Rows = [][]interface{}{}
		}
		return ctx.JSON(http.StatusOK, tbl)
	case "xlsx":
		var buf bytes.Buffer
		if err := tbl.WriteXLSX(&buf); err != nil {
			return err
		}
		setAttachment(ctx, name+".xlsx")
		return ctx.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
	}
	return ctx.String(http.StatusOK, tbl.Text())
}
