package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core/finance"
)

type financeApi struct {
	svc *finance.Service
}

func registerFinanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *finance.Service) {
	api := financeApi{svc: svc}

	pg := g.Group("/payments", jwt)
	pg.POST("", api.create)
	pg.GET("", api.history)
}

type PaymentResponse struct {
	finance.Receipt
	Text string `json:"text"`
}

func (api *financeApi) create(ctx echo.Context) error {
	var data finance.PaymentForm
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PaymentForm")
	}

	receipt, err := api.svc.RecordPayment(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, PaymentResponse{Receipt: receipt, Text: receipt.Text()})
}

func (api *financeApi) history(ctx echo.Context) error {
	rows, err := api.svc.History(ctx.Request().Context())
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []finance.HistoryRow{}
	}
	return ctx.JSON(http.StatusOK, rows)
}
