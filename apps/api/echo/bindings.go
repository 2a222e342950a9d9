package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/saraswati/sdms/core"
)

// studentQuery is bound from `?search=bca&ordering=name,-enrollment_date`.
// Unknown ordering fields are dropped by the repository.
type studentQuery struct {
	Search    string
	Orderings []core.DBOrdering
}

func bindStudentQuery(ctx echo.Context) studentQuery {
	q := studentQuery{Search: ctx.QueryParam("search")}
	for _, field := range strings.Split(ctx.QueryParam("ordering"), ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "-" {
			continue
		}
		if strings.HasPrefix(field, "-") {
			q.Orderings = append(q.Orderings, core.DBOrdering{Field: field[1:]})
		} else {
			q.Orderings = append(q.Orderings, core.DBOrdering{Field: field, Ascending: true})
		}
	}
	return q
}
