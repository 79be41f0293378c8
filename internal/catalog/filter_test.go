package catalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campushub/internal/domain"
)

func TestFilterText(t *testing.T) {
	entities := seededEntities()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"title case-insensitive", "TECH", []string{"evt-1"}},
		{"description", "placement", []string{"evt-5"}},
		{"tag", "dance", []string{"evt-2"}},
		{"page field", "media lab", []string{"evt-4"}},
		{"any field across entities", "ar", []string{"evt-4", "evt-5"}},
		{"whitespace only is inactive", "   ", []string{"evt-1", "evt-2", "evt-3", "evt-4", "evt-5"}},
		{"no match", "robotics", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(eventSchema(), entities, Criteria{Text: tt.text}, wednesday)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterCategory(t *testing.T) {
	entities := seededEntities()

	got := Filter(eventSchema(), entities, Criteria{Category: "Sports"}, wednesday)
	assert.Equal(t, []string{"evt-3"}, ids(got))

	got = Filter(eventSchema(), entities, Criteria{Category: "sports"}, wednesday)
	assert.Empty(t, got, "category match is exact")
}

func TestCategorySentinelIsNoOp(t *testing.T) {
	entities := seededEntities()

	for _, sentinel := range []string{"all", "ALL", ""} {
		got := Filter(eventSchema(), entities, Criteria{Category: sentinel}, wednesday)
		if diff := cmp.Diff(entities, got); diff != "" {
			t.Errorf("category %q changed the result (-want +got):\n%s", sentinel, diff)
		}
	}
}

func TestFilterThreshold(t *testing.T) {
	entities := seededEntities()

	atMost := 50.0
	got := Filter(eventSchema(), entities, Criteria{Threshold: &atMost}, wednesday)
	assert.Equal(t, []string{"evt-1", "evt-2", "evt-3", "evt-5"}, ids(got), "upper bound is inclusive")

	schema := eventSchema()
	schema.Bound = AtLeast
	got = Filter(schema, entities, Criteria{Threshold: &atMost}, wednesday)
	assert.Equal(t, []string{"evt-2", "evt-4"}, ids(got), "lower bound is inclusive")

	schema.Numeric = nil
	got = Filter(schema, entities, Criteria{Threshold: &atMost}, wednesday)
	assert.Len(t, got, 5, "pages without a numeric field ignore the threshold")
}

func TestFilterThresholdExcludesMissingValues(t *testing.T) {
	schema := eventSchema()
	schema.Numeric = func(e *domain.Entity[eventFields]) (float64, bool) {
		return e.Fields.Price, e.Fields.Price > 0
	}
	limit := 1000.0

	got := Filter(schema, seededEntities(), Criteria{Threshold: &limit}, wednesday)
	assert.Equal(t, []string{"evt-2", "evt-4"}, ids(got))
}

func TestFilterFlags(t *testing.T) {
	entities := seededEntities()

	got := Filter(eventSchema(), entities, Criteria{}.WithFlag(domain.FlagSaved, true), wednesday)
	assert.Equal(t, []string{"evt-3"}, ids(got))

	got = Filter(eventSchema(), entities, Criteria{}.WithFlag(domain.FlagRegistered, false), wednesday)
	assert.Equal(t, []string{"evt-1", "evt-2", "evt-3", "evt-4"}, ids(got))
}

func TestFilterDateBuckets(t *testing.T) {
	entities := seededEntities()

	tests := []struct {
		bucket DateBucket
		want   []string
	}{
		{BucketToday, []string{"evt-2"}},
		{BucketThisWeek, []string{"evt-2", "evt-3"}},
		{BucketThisMonth, []string{"evt-2", "evt-3", "evt-4"}},
		{DateBucket("next-decade"), []string{"evt-1", "evt-2", "evt-3", "evt-4", "evt-5"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			got := Filter(eventSchema(), entities, Criteria{DateBucket: tt.bucket}, wednesday)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestDateBucketBoundaries(t *testing.T) {
	require.Equal(t, time.Wednesday, wednesday.Weekday())

	monday := time.Date(2023, time.November, 13, 8, 0, 0, 0, time.UTC)
	sunday := time.Date(2023, time.November, 12, 0, 0, 0, 0, time.UTC)
	saturdayNight := time.Date(2023, time.November, 18, 23, 59, 59, 0, time.UTC)
	nextSunday := time.Date(2023, time.November, 19, 0, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2023, time.November, 20, 9, 0, 0, 0, time.UTC)
	firstOfNextMonth := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := time.Date(2023, time.November, 30, 23, 0, 0, 0, time.UTC)

	entities := []*domain.Entity[eventFields]{
		{ID: "monday", Dates: []time.Time{monday}},
		{ID: "sunday", Dates: []time.Time{sunday}},
		{ID: "saturday", Dates: []time.Time{saturdayNight}},
		{ID: "next-sunday", Dates: []time.Time{nextSunday}},
		{ID: "next-monday", Dates: []time.Time{nextMonday}},
		{ID: "next-month", Dates: []time.Time{firstOfNextMonth}},
		{ID: "end-of-month", Dates: []time.Time{lastOfMonth}},
		{ID: "undated"},
	}
	schema := eventSchema()

	week := ids(Filter(schema, entities, Criteria{DateBucket: BucketThisWeek}, wednesday))
	assert.Equal(t, []string{"monday", "sunday", "saturday"}, week)
	// Weeks run Sunday to Saturday, so the following Monday is next week
	assert.NotContains(t, week, "next-monday")

	today := ids(Filter(schema, entities, Criteria{DateBucket: BucketToday}, wednesday))
	assert.NotContains(t, today, "monday")

	month := ids(Filter(schema, entities, Criteria{DateBucket: BucketThisMonth}, wednesday))
	assert.Equal(t, []string{"monday", "sunday", "saturday", "next-sunday", "next-monday", "end-of-month"}, month)
	assert.NotContains(t, month, "next-month")
}

func TestDateBucketUsesClockLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2023, time.November, 15, 1, 0, 0, 0, loc)
	// 20:00 UTC on the 14th is 01:30 on the 15th in IST
	late := time.Date(2023, time.November, 14, 20, 0, 0, 0, time.UTC)

	entities := []*domain.Entity[eventFields]{{ID: "late", Dates: []time.Time{late}}}
	got := Filter(eventSchema(), entities, Criteria{DateBucket: BucketToday}, now)
	assert.Equal(t, []string{"late"}, ids(got))
}

func TestCriteriaAreANDed(t *testing.T) {
	entities := seededEntities()
	limit := 0.0

	got := Filter(eventSchema(), entities, Criteria{
		Text:      "f",
		Threshold: &limit,
	}, wednesday)
	// "f" alone matches evt-1, evt-2 and evt-3; evt-2 costs 50
	assert.Equal(t, []string{"evt-1", "evt-2", "evt-3"}, ids(Filter(eventSchema(), entities, Criteria{Text: "f"}, wednesday)))
	assert.Equal(t, []string{"evt-1", "evt-3"}, ids(got))
}

func TestFilterComposition(t *testing.T) {
	entities := seededEntities()
	schema := eventSchema()
	limit := 100.0

	criteria := []Criteria{
		{},
		{Text: "o"},
		{Category: "Sports"},
		{Category: AllCategories},
		{DateBucket: BucketThisMonth},
		{Threshold: &limit},
		Criteria{}.WithFlag(domain.FlagSaved, true),
		{Text: "a", DateBucket: BucketThisWeek},
	}

	for i, c1 := range criteria {
		for j, c2 := range criteria {
			sequential := Build(schema, c2, wednesday).Apply(Build(schema, c1, wednesday).Apply(entities))
			combined := Build(schema, c1, wednesday).And(Build(schema, c2, wednesday)).Apply(entities)
			if diff := cmp.Diff(ids(sequential), ids(combined)); diff != "" {
				t.Errorf("criteria %d then %d differs from conjunction (-seq +and):\n%s", i, j, diff)
			}
		}
	}
}

func TestFilterIsPure(t *testing.T) {
	entities := seededEntities()
	before := ids(entities)
	c := Criteria{Text: "e", DateBucket: BucketThisMonth}

	first := Filter(eventSchema(), entities, c, wednesday)
	second := Filter(eventSchema(), entities, c, wednesday)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, before, ids(entities))
}

func TestBuildSkipsInactiveCriteria(t *testing.T) {
	schema := eventSchema()
	assert.Equal(t, 0, Build(schema, Criteria{Category: "all", DateBucket: "someday"}, wednesday).Len())
	assert.Equal(t, 2, Build(schema, Criteria{Text: "x", Category: "Sports"}, wednesday).Len())
}

func TestParseCriteria(t *testing.T) {
	c := ParseCriteria(RawCriteria{
		Text:      "tech",
		Category:  " Technical ",
		Bucket:    "This-Week",
		Threshold: "250",
		Flags:     []string{"saved", "!registered", "starred"},
	})

	assert.Equal(t, "tech", c.Text)
	assert.Equal(t, "Technical", c.Category)
	assert.Equal(t, BucketThisWeek, c.DateBucket)
	require.NotNil(t, c.Threshold)
	assert.Equal(t, 250.0, *c.Threshold)
	assert.Equal(t, map[domain.Flag]bool{domain.FlagSaved: true, domain.FlagRegistered: false}, c.Flags)

	malformed := ParseCriteria(RawCriteria{Bucket: "fortnight", Threshold: "cheap"})
	assert.True(t, malformed.IsZero())
}
