// Package view computes the derived table view: search, range filters,
// stable sort, pagination and per-row alert flags over the in-memory
// proposal collection. Everything here is a pure function of its inputs
// and the supplied instant; the input slice is never mutated.
package view

import (
	"sort"
	"strings"
	"time"

	dom "propboard/internal/domain"
)

// SortKey selects the column a projection is ordered by.
type SortKey string

const (
	SortClientName         SortKey = "client_name"
	SortSentDate           SortKey = "sent_date"
	SortValue              SortKey = "value"
	SortStatus             SortKey = "status"
	SortLastFollowUp       SortKey = "last_follow_up"
	SortExpectedReturnDate SortKey = "expected_return_date"
)

// ParseSortKey maps a query-string value to a SortKey, falling back to
// sent_date for anything unknown.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortClientName, SortSentDate, SortValue, SortStatus,
		SortLastFollowUp, SortExpectedReturnDate:
		return SortKey(s)
	}
	return SortSentDate
}

// DefaultPageSize is used when the caller asks for a non-positive size.
const DefaultPageSize = 10

// Controls is the current table UI state. Absent bounds are nil and always
// pass the filter.
type Controls struct {
	Search   string
	SentFrom *time.Time
	SentTo   *time.Time
	ValueMin *float64
	ValueMax *float64

	SortKey  SortKey
	SortDesc bool

	Page     int // 1-indexed; clamped into range by Project
	PageSize int
}

// Alerts are advisory presentation flags, recomputed on every projection
// because they depend on wall-clock now.
type Alerts struct {
	NeedsFollowUp     bool `json:"needs_follow_up"`
	ReturnOverdue     bool `json:"return_overdue"`
	ReturnSoon        bool `json:"return_soon"`
	DaysSinceFollowUp int  `json:"days_since_follow_up"`
	DaysUntilReturn   int  `json:"days_until_return"`
	HasReturnDate     bool `json:"has_return_date"`
}

// Projection is what the table renders.
type Projection struct {
	Items         []dom.Proposal
	Page          int
	PageCount     int
	TotalFiltered int
	Alerts        map[int64]Alerts
}

const followUpStaleAfterDays = 7
const returnSoonWithinDays = 3

// Project runs the full pipeline: filter -> sort -> clamp page -> slice,
// then classifies alerts for the visible rows.
func Project(records []dom.Proposal, c Controls, now time.Time) Projection {
	filtered := Filter(records, c)
	Sort(filtered, c.SortKey, c.SortDesc)

	size := c.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	pageCount := (len(filtered) + size - 1) / size

	maxPage := pageCount
	if maxPage < 1 {
		maxPage = 1
	}
	page := c.Page
	if page > maxPage {
		page = maxPage
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	visible := filtered[start:end]

	alerts := make(map[int64]Alerts, len(visible))
	for _, p := range visible {
		alerts[p.ID] = Classify(p, now)
	}

	return Projection{
		Items:         visible,
		Page:          page,
		PageCount:     pageCount,
		TotalFiltered: len(filtered),
		Alerts:        alerts,
	}
}

// Filter returns a new slice with the records matching the search string
// and the optional sent-date / value bounds. Bounds are inclusive.
func Filter(records []dom.Proposal, c Controls) []dom.Proposal {
	q := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]dom.Proposal, 0, len(records))
	for _, p := range records {
		if q != "" && !strings.Contains(strings.ToLower(p.ClientName), q) {
			continue
		}
		if c.SentFrom != nil && p.SentDate.Before(*c.SentFrom) {
			continue
		}
		if c.SentTo != nil && p.SentDate.After(*c.SentTo) {
			continue
		}
		if c.ValueMin != nil && p.Value < *c.ValueMin {
			continue
		}
		if c.ValueMax != nil && p.Value > *c.ValueMax {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort orders records in place, stably: ties keep their relative order.
// A missing expected return date sorts as infinitely distant.
func Sort(records []dom.Proposal, key SortKey, desc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		c := compare(records[i], records[j], key)
		if desc {
			c = -c
		}
		return c < 0
	})
}

func compare(a, b dom.Proposal, key SortKey) int {
	switch key {
	case SortClientName:
		return strings.Compare(strings.ToLower(a.ClientName), strings.ToLower(b.ClientName))
	case SortValue:
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	case SortStatus:
		return a.Status.Rank() - b.Status.Rank()
	case SortLastFollowUp:
		return compareTime(a.LastFollowUp, b.LastFollowUp)
	case SortExpectedReturnDate:
		switch {
		case a.ExpectedReturnDate == nil && b.ExpectedReturnDate == nil:
			return 0
		case a.ExpectedReturnDate == nil:
			return 1
		case b.ExpectedReturnDate == nil:
			return -1
		}
		return compareTime(*a.ExpectedReturnDate, *b.ExpectedReturnDate)
	default: // SortSentDate
		return compareTime(a.SentDate, b.SentDate)
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// Classify computes the alert flags for one proposal at the given instant.
func Classify(p dom.Proposal, now time.Time) Alerts {
	a := Alerts{
		DaysSinceFollowUp: daysCeil(now.Sub(p.LastFollowUp)),
	}
	a.NeedsFollowUp = p.Status == dom.StatusPending && a.DaysSinceFollowUp > followUpStaleAfterDays
	if p.ExpectedReturnDate != nil {
		a.HasReturnDate = true
		a.DaysUntilReturn = ceilDays(p.ExpectedReturnDate.Sub(now))
		a.ReturnOverdue = a.DaysUntilReturn < 0
		a.ReturnSoon = a.DaysUntilReturn >= 0 && a.DaysUntilReturn <= returnSoonWithinDays
	}
	return a
}

// daysCeil returns ceil(|d| / 24h).
func daysCeil(d time.Duration) int {
	if d < 0 {
		d = -d
	}
	return ceilDays(d)
}

// ceilDays returns ceil(d / 24h), preserving sign for negative durations.
func ceilDays(d time.Duration) int {
	const day = 24 * time.Hour
	n := d / day
	if d%day > 0 {
		n++
	}
	return int(n)
}

// Selection is the set of checked row ids. Bulk actions consume it and
// then clear it.
type Selection map[int64]bool

// Toggle flips one id in the set.
func (s Selection) Toggle(id int64) {
	if s[id] {
		delete(s, id)
		return
	}
	s[id] = true
}

// SelectPage adds exactly the visible page's ids. Ids selected on other
// pages stay selected; select-all is page-scoped and additive.
func (s Selection) SelectPage(visible []dom.Proposal) {
	for _, p := range visible {
		s[p.ID] = true
	}
}

// DeselectPage removes the visible page's ids, leaving other pages alone.
func (s Selection) DeselectPage(visible []dom.Proposal) {
	for _, p := range visible {
		delete(s, p.ID)
	}
}

// IDs returns the selected ids in ascending order.
func (s Selection) IDs() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear empties the set.
func (s Selection) Clear() {
	for id := range s {
		delete(s, id)
	}
}
