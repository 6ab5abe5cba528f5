package view

import (
	"strings"
	"testing"
	"time"

	dom "propboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func mkProposal(id int64, client string, status dom.Status, value float64) dom.Proposal {
	return dom.Proposal{
		ID:           id,
		ClientName:   client,
		Status:       status,
		Value:        value,
		SentDate:     testNow.AddDate(0, 0, -int(id)),
		LastFollowUp: testNow.AddDate(0, 0, -1),
	}
}

func daysAgo(n int) time.Time   { return testNow.AddDate(0, 0, -n) }
func daysAhead(n int) time.Time { return testNow.AddDate(0, 0, n) }

func TestFilterSearchCaseInsensitive(t *testing.T) {
	records := []dom.Proposal{
		mkProposal(1, "Acme Corp", dom.StatusPending, 100),
		mkProposal(2, "Globex", dom.StatusPending, 200),
		mkProposal(3, "ACME Industries", dom.StatusPending, 300),
	}

	got := Filter(records, Controls{Search: "acme"})

	require.Len(t, got, 2)
	for _, p := range got {
		assert.Contains(t, strings.ToLower(p.ClientName), "acme")
	}
}

func TestFilterEmptySearchPassesAll(t *testing.T) {
	records := []dom.Proposal{
		mkProposal(1, "Acme", dom.StatusPending, 100),
		mkProposal(2, "Globex", dom.StatusApproved, 200),
	}
	got := Filter(records, Controls{})
	assert.Len(t, got, 2)
}

func TestFilterValueBoundsInclusive(t *testing.T) {
	records := []dom.Proposal{
		mkProposal(1, "A", dom.StatusPending, 100),
		mkProposal(2, "B", dom.StatusPending, 200),
		mkProposal(3, "C", dom.StatusPending, 300),
	}
	min, max := 100.0, 200.0

	got := Filter(records, Controls{ValueMin: &min, ValueMax: &max})

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestFilterSentDateRange(t *testing.T) {
	records := []dom.Proposal{
		{ID: 1, ClientName: "A", SentDate: daysAgo(10)},
		{ID: 2, ClientName: "B", SentDate: daysAgo(5)},
		{ID: 3, ClientName: "C", SentDate: daysAgo(1)},
	}
	from, to := daysAgo(6), daysAgo(2)

	got := Filter(records, Controls{SentFrom: &from, SentTo: &to})

	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestSortStatusRank(t *testing.T) {
	records := []dom.Proposal{
		mkProposal(1, "A", dom.StatusRejected, 0),
		mkProposal(2, "B", dom.StatusPending, 0),
		mkProposal(3, "C", dom.StatusApproved, 0),
	}

	Sort(records, SortStatus, false)

	assert.Equal(t, dom.StatusPending, records[0].Status)
	assert.Equal(t, dom.StatusApproved, records[1].Status)
	assert.Equal(t, dom.StatusRejected, records[2].Status)
}

func TestSortIdempotentAndReversible(t *testing.T) {
	records := []dom.Proposal{
		mkProposal(1, "A", dom.StatusPending, 300),
		mkProposal(2, "B", dom.StatusPending, 100),
		mkProposal(3, "C", dom.StatusPending, 200),
		mkProposal(4, "D", dom.StatusPending, 400),
	}

	Sort(records, SortValue, false)
	once := append([]dom.Proposal(nil), records...)
	Sort(records, SortValue, false)
	assert.Equal(t, once, records, "re-sorting with the same key must not change order")

	Sort(records, SortValue, true)
	for i := range records {
		assert.Equal(t, once[len(once)-1-i].ID, records[i].ID)
	}
}

func TestSortStableOnTies(t *testing.T) {
	records := []dom.Proposal{
		mkProposal(1, "A", dom.StatusPending, 100),
		mkProposal(2, "B", dom.StatusPending, 100),
		mkProposal(3, "C", dom.StatusPending, 100),
	}

	Sort(records, SortValue, false)

	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(2), records[1].ID)
	assert.Equal(t, int64(3), records[2].ID)
}

func TestSortMissingReturnDateLast(t *testing.T) {
	d1, d2 := daysAhead(1), daysAhead(5)
	records := []dom.Proposal{
		{ID: 1, ClientName: "A"},
		{ID: 2, ClientName: "B", ExpectedReturnDate: &d2},
		{ID: 3, ClientName: "C", ExpectedReturnDate: &d1},
	}

	Sort(records, SortExpectedReturnDate, false)

	assert.Equal(t, int64(3), records[0].ID)
	assert.Equal(t, int64(2), records[1].ID)
	assert.Equal(t, int64(1), records[2].ID, "missing date sorts as infinitely distant")
}

func TestPagination(t *testing.T) {
	records := make([]dom.Proposal, 250)
	for i := range records {
		records[i] = mkProposal(int64(i+1), "Client", dom.StatusPending, float64(i))
	}
	// Keep insertion order to make page boundaries predictable.
	controls := Controls{SortKey: SortValue, PageSize: 100}

	controls.Page = 1
	p1 := Project(records, controls, testNow)
	require.Equal(t, 3, p1.PageCount)
	require.Equal(t, 250, p1.TotalFiltered)
	require.Len(t, p1.Items, 100)
	assert.Equal(t, int64(1), p1.Items[0].ID)
	assert.Equal(t, int64(100), p1.Items[99].ID)

	controls.Page = 3
	p3 := Project(records, controls, testNow)
	require.Len(t, p3.Items, 50)
	assert.Equal(t, int64(201), p3.Items[0].ID)
	assert.Equal(t, int64(250), p3.Items[49].ID)
}

func TestPaginationClampsPage(t *testing.T) {
	records := []dom.Proposal{
		mkProposal(1, "A", dom.StatusPending, 1),
		mkProposal(2, "B", dom.StatusPending, 2),
	}

	p := Project(records, Controls{Page: 99, PageSize: 10}, testNow)
	assert.Equal(t, 1, p.Page)
	assert.Len(t, p.Items, 2)

	empty := Project(nil, Controls{Page: 5, PageSize: 10}, testNow)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.PageCount)
	assert.Empty(t, empty.Items)
}

func TestClassifyNeedsFollowUp(t *testing.T) {
	stale := dom.Proposal{ID: 1, Status: dom.StatusPending, LastFollowUp: daysAgo(8)}
	assert.True(t, Classify(stale, testNow).NeedsFollowUp)

	fresh := dom.Proposal{ID: 2, Status: dom.StatusPending, LastFollowUp: daysAgo(7)}
	assert.False(t, Classify(fresh, testNow).NeedsFollowUp, "exactly 7 days is not stale")

	approved := dom.Proposal{ID: 3, Status: dom.StatusApproved, LastFollowUp: daysAgo(30)}
	assert.False(t, Classify(approved, testNow).NeedsFollowUp, "only pending proposals need follow-up")
}

func TestClassifyReturnDate(t *testing.T) {
	past := daysAgo(1)
	a := Classify(dom.Proposal{ID: 1, ExpectedReturnDate: &past}, testNow)
	assert.True(t, a.ReturnOverdue)
	assert.False(t, a.ReturnSoon)

	soon := daysAhead(2)
	a = Classify(dom.Proposal{ID: 2, ExpectedReturnDate: &soon}, testNow)
	assert.False(t, a.ReturnOverdue)
	assert.True(t, a.ReturnSoon)

	far := daysAhead(10)
	a = Classify(dom.Proposal{ID: 3, ExpectedReturnDate: &far}, testNow)
	assert.False(t, a.ReturnOverdue)
	assert.False(t, a.ReturnSoon)

	a = Classify(dom.Proposal{ID: 4}, testNow)
	assert.False(t, a.HasReturnDate)
	assert.False(t, a.ReturnOverdue)
	assert.False(t, a.ReturnSoon)
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	records := []dom.Proposal{
		mkProposal(2, "B", dom.StatusPending, 200),
		mkProposal(1, "A", dom.StatusPending, 100),
	}
	orig := append([]dom.Proposal(nil), records...)

	Project(records, Controls{SortKey: SortValue, Page: 1, PageSize: 10}, testNow)

	assert.Equal(t, orig, records)
}

func TestProjectAlertsCoverVisiblePage(t *testing.T) {
	records := []dom.Proposal{
		{ID: 1, ClientName: "A", Status: dom.StatusPending, LastFollowUp: daysAgo(10), SentDate: daysAgo(10)},
		{ID: 2, ClientName: "B", Status: dom.StatusPending, LastFollowUp: daysAgo(1), SentDate: daysAgo(1)},
	}

	p := Project(records, Controls{SortKey: SortSentDate, Page: 1, PageSize: 10}, testNow)

	require.Len(t, p.Alerts, 2)
	assert.True(t, p.Alerts[1].NeedsFollowUp)
	assert.False(t, p.Alerts[2].NeedsFollowUp)
}

func TestSelectionToggle(t *testing.T) {
	s := Selection{}
	s.Toggle(1)
	assert.True(t, s[1])
	s.Toggle(1)
	assert.False(t, s[1])
}

func TestSelectPageIsAdditiveAcrossPages(t *testing.T) {
	records := make([]dom.Proposal, 4)
	for i := range records {
		records[i] = mkProposal(int64(i+1), "Client", dom.StatusPending, float64(i))
	}
	controls := Controls{SortKey: SortValue, PageSize: 2}

	s := Selection{}
	controls.Page = 1
	p1 := Project(records, controls, testNow)
	s.SelectPage(p1.Items)
	assert.Equal(t, []int64{1, 2}, s.IDs())

	controls.Page = 2
	p2 := Project(records, controls, testNow)
	s.SelectPage(p2.Items)
	assert.Equal(t, []int64{1, 2, 3, 4}, s.IDs(), "page-1 selections survive select-all on page 2")

	s.DeselectPage(p1.Items)
	assert.Equal(t, []int64{3, 4}, s.IDs(), "deselecting one page leaves other pages alone")

	s.Clear()
	assert.Empty(t, s.IDs())
}

func TestParseSortKeyFallback(t *testing.T) {
	assert.Equal(t, SortClientName, ParseSortKey("client_name"))
	assert.Equal(t, SortSentDate, ParseSortKey("bogus"))
	assert.Equal(t, SortSentDate, ParseSortKey(""))
}
