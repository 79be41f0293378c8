package catalog

import (
	"strconv"
	"strings"

	"campushub/internal/domain"
)

// AllCategories is the category sentinel meaning "no filtering by category"
const AllCategories = "all"

// DateBucket selects entities by calendar period relative to now
type DateBucket string

const (
	BucketAny       DateBucket = ""
	BucketToday     DateBucket = "today"
	BucketThisWeek  DateBucket = "this-week"
	BucketThisMonth DateBucket = "this-month"
)

// DateBuckets lists the valid non-empty buckets in cycling order
func DateBuckets() []DateBucket {
	return []DateBucket{BucketToday, BucketThisWeek, BucketThisMonth}
}

// ParseDateBucket resolves a bucket name. Unknown names map to BucketAny.
func ParseDateBucket(s string) (DateBucket, bool) {
	switch b := DateBucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketAny, BucketToday, BucketThisWeek, BucketThisMonth:
		return b, true
	default:
		return BucketAny, false
	}
}

// Valid reports whether b is one of the known buckets
func (b DateBucket) Valid() bool {
	_, ok := ParseDateBucket(string(b))
	return ok
}

// Bound tells how a threshold applies to a page's numeric field
type Bound int

const (
	// AtMost keeps entities whose value is <= the threshold ("budget at most N")
	AtMost Bound = iota
	// AtLeast keeps entities whose value is >= the threshold ("stipend at least N")
	AtLeast
)

func (b Bound) String() string {
	if b == AtLeast {
		return "at least"
	}
	return "at most"
}

// Criteria is the current filter input for one page. The zero value
// matches everything.
type Criteria struct {
	Text       string
	Category   string
	DateBucket DateBucket
	Threshold  *float64
	Flags      map[domain.Flag]bool
}

// IsZero reports whether no criterion is active
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Text) == "" &&
		!categoryActive(c.Category) &&
		c.DateBucket == BucketAny &&
		c.Threshold == nil &&
		len(c.Flags) == 0
}

// WithFlag returns a copy of c requiring flag to have the given state
func (c Criteria) WithFlag(flag domain.Flag, state bool) Criteria {
	flags := make(map[domain.Flag]bool, len(c.Flags)+1)
	for f, v := range c.Flags {
		flags[f] = v
	}
	flags[flag] = state
	c.Flags = flags
	return c
}

func categoryActive(category string) bool {
	category = strings.TrimSpace(category)
	return category != "" && !strings.EqualFold(category, AllCategories)
}

// RawCriteria is criteria as typed into a form or passed on the command line
type RawCriteria struct {
	Text      string
	Category  string
	Bucket    string
	Threshold string
	Flags     []string // "saved" requires the flag, "!saved" requires it unset
}

// ParseCriteria converts raw input into Criteria. Malformed parts are
// dropped so that they filter nothing.
func ParseCriteria(raw RawCriteria) Criteria {
	c := Criteria{
		Text:     raw.Text,
		Category: strings.TrimSpace(raw.Category),
	}

	if bucket, ok := ParseDateBucket(raw.Bucket); ok {
		c.DateBucket = bucket
	}

	if t := strings.TrimSpace(raw.Threshold); t != "" {
		if v, err := strconv.ParseFloat(t, 64); err == nil {
			c.Threshold = &v
		}
	}

	for _, name := range raw.Flags {
		state := true
		if strings.HasPrefix(name, "!") {
			state = false
			name = name[1:]
		}
		if flag, ok := domain.ParseFlag(name); ok {
			c = c.WithFlag(flag, state)
		}
	}

	return c
}
