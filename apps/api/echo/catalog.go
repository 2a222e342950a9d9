package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saraswati/sdms/core/catalog"
)

type catalogApi struct {
	svc *catalog.Service
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *catalog.Service) {
	api := catalogApi{svc: svc}

	cg := g.Group("/catalog", jwt)
	cg.GET("/courses", api.courses)
	cg.GET("/years", api.years)
	cg.GET("/faculties", api.faculties)
}

func (api *catalogApi) courses(ctx echo.Context) error {
	courses, err := api.svc.Courses(ctx.Request().Context())
	if err != nil {
		return err
	}
	if courses == nil {
		courses = []catalog.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) years(ctx echo.Context) error {
	years, err := api.svc.AcademicYears(ctx.Request().Context())
	if err != nil {
		return err
	}
	if years == nil {
		years = []catalog.AcademicYear{}
	}
	return ctx.JSON(http.StatusOK, years)
}

func (api *catalogApi) faculties(ctx echo.Context) error {
	faculties, err := api.svc.Faculties(ctx.Request().Context())
	if err != nil {
		return err
	}
	if faculties == nil {
		faculties = []catalog.Faculty{}
	}
	return ctx.JSON(http.StatusOK, faculties)
}
