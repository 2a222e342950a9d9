package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saraswati/sdms/core/catalog"
	"github.com/saraswati/sdms/tests"
)

func TestService_lookups(t *testing.T) {
	svcs, _ := testutil.Services(t)
	ctx := context.Background()

	years, err := svcs.Catalog.AcademicYears(ctx)
	require.NoError(t, err)
	var names []string
	for _, y := range years {
		names = append(names, y.Name)
	}
	assert.Equal(t, []string{"First Year", "Second Year", "Third Year", "Fourth Year", "Fifth Year"}, names)

	faculties, err := svcs.Catalog.Faculties(ctx)
	require.NoError(t, err)
	names = names[:0]
	for _, f := range faculties {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"BCA", "BBA", "MCA", "IBCA", "IMCA"}, names)

	courses, err := svcs.Catalog.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 6)
	assert.Equal(t, catalog.Course{
		ID:         courses[0].ID,
		Name:       "Master of Computer Applications",
		Code:       "MCA",
		Duration:   "2 Years",
		Department: "Computer Science",
	}, courses[0])
}
