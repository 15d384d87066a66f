package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventsDefaults(t *testing.T) {
	q, err := ParseEvents(url.Values{})
	require.NoError(t, err)
	assert.Empty(t, q.Conditions)
	assert.Empty(t, q.Search)
	require.Len(t, q.Sort, 1)
	assert.Equal(t, "start_date", q.Sort[0].Column)
	assert.True(t, q.Sort[0].Desc)
}

func TestParseEventsStripsControlKeys(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("limit", "50")
	values.Set("fields", "title")
	values.Set("category", "workshop")

	q, err := ParseEvents(values)
	require.NoError(t, err)
	require.Len(t, q.Conditions, 1)
	assert.Equal(t, "category", q.Conditions[0].Column)
	assert.Equal(t, OpEq, q.Conditions[0].Op)
	assert.Equal(t, "workshop", q.Conditions[0].Value)
}

func TestParseEventsRangeOperators(t *testing.T) {
	values := url.Values{}
	values.Set("startDate[gte]", "2026-01-01")
	values.Set("endDate[lt]", "2026-06-01")

	q, err := ParseEvents(values)
	require.NoError(t, err)
	require.Len(t, q.Conditions, 2)

	assert.Equal(t, "end_date", q.Conditions[0].Column)
	assert.Equal(t, OpLt, q.Conditions[0].Op)
	assert.Equal(t, "start_date", q.Conditions[1].Column)
	assert.Equal(t, OpGte, q.Conditions[1].Op)
}

func TestParseEventsRejectsUnknownOperator(t *testing.T) {
	values := url.Values{}
	values.Set("startDate[regex]", ".*")

	_, err := ParseEvents(values)
	require.Error(t, err)
}

func TestParseEventsRejectsInjectionKey(t *testing.T) {
	values := url.Values{}
	values.Set("title; DROP TABLE events", "x")

	_, err := ParseEvents(values)
	require.Error(t, err)
}

func TestParseEventsUnknownKeyPassesThrough(t *testing.T) {
	values := url.Values{}
	values.Set("organizerBadge", "gold")

	q, err := ParseEvents(values)
	require.NoError(t, err)
	require.Len(t, q.Conditions, 1)
	assert.Equal(t, "organizer_badge", q.Conditions[0].Column)
	assert.Equal(t, OpEq, q.Conditions[0].Op)
}

func TestParseEventsSearchCombinesWithFilters(t *testing.T) {
	values := url.Values{}
	values.Set("search", "hackathon")
	values.Set("category", "workshop")

	q, err := ParseEvents(values)
	require.NoError(t, err)
	assert.Equal(t, "hackathon", q.Search)
	require.Len(t, q.Conditions, 1)
	assert.Equal(t, "category", q.Conditions[0].Column)
}

func TestParseEventsSortLeadingMinus(t *testing.T) {
	values := url.Values{}
	values.Set("sort", "startDate,-createdAt")

	q, err := ParseEvents(values)
	require.NoError(t, err)
	require.Len(t, q.Sort, 2)
	assert.Equal(t, SortKey{Column: "start_date"}, q.Sort[0])
	assert.Equal(t, SortKey{Column: "created_at", Desc: true}, q.Sort[1])
}

func TestOpSQL(t *testing.T) {
	assert.Equal(t, "=", OpEq.SQL())
	assert.Equal(t, ">=", OpGte.SQL())
	assert.Equal(t, ">", OpGt.SQL())
	assert.Equal(t, "<=", OpLte.SQL())
	assert.Equal(t, "<", OpLt.SQL())
}
