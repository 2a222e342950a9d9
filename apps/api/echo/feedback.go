package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core/feedback"
)

type feedbackApi struct {
	svc *feedback.Service
}

func registerFeedbackAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *feedback.Service) {
	api := feedbackApi{svc: svc}

	fg := g.Group("/feedback")
	fg.POST("", api.create) // anyone may leave feedback
	fg.GET("", api.query, jwt, adminMiddleware())
}

func (api *feedbackApi) create(ctx echo.Context) error {
	var data feedback.Form
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to feedback.Form")
	}

	fb, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, fb)
}

func (api *feedbackApi) query(ctx echo.Context) error {
	items, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []feedback.Feedback{}
	}
	return ctx.JSON(http.StatusOK, items)
}
