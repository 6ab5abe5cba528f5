package service

import (
	"context"
	"testing"
	"time"

	dom "propboard/internal/domain"
	"propboard/internal/view"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProposalRepo is an in-memory ProposalRepo for service tests.
type fakeProposalRepo struct {
	nextID    int64
	proposals map[int64]dom.Proposal
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{nextID: 1, proposals: map[int64]dom.Proposal{}}
}

func (f *fakeProposalRepo) Create(_ context.Context, p dom.Proposal) (dom.Proposal, error) {
	p.ID = f.nextID
	f.nextID++
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	f.proposals[p.ID] = p
	return p, nil
}

func (f *fakeProposalRepo) GetByID(_ context.Context, userID, id int64) (dom.Proposal, error) {
	p, ok := f.proposals[id]
	if !ok || p.UserID != userID || p.DeletedAt != nil {
		return dom.Proposal{}, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakeProposalRepo) List(_ context.Context, userID int64) ([]dom.Proposal, error) {
	var out []dom.Proposal
	for id := int64(1); id < f.nextID; id++ {
		p, ok := f.proposals[id]
		if ok && p.UserID == userID && p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProposalRepo) Update(_ context.Context, userID, id int64, patch dom.Proposal) (dom.Proposal, error) {
	p, ok := f.proposals[id]
	if !ok || p.UserID != userID || p.DeletedAt != nil {
		return dom.Proposal{}, pgx.ErrNoRows
	}
	patch.ID = id
	patch.UserID = userID
	patch.CreatedAt = p.CreatedAt
	patch.UpdatedAt = time.Now().UTC()
	f.proposals[id] = patch
	return patch, nil
}

func (f *fakeProposalRepo) SoftDelete(_ context.Context, userID, id int64) error {
	p, ok := f.proposals[id]
	if !ok || p.UserID != userID || p.DeletedAt != nil {
		return nil
	}
	now := time.Now().UTC()
	p.DeletedAt = &now
	f.proposals[id] = p
	return nil
}

func (f *fakeProposalRepo) SetStatus(_ context.Context, userID, id int64, status dom.Status) (dom.Proposal, error) {
	p, ok := f.proposals[id]
	if !ok || p.UserID != userID || p.DeletedAt != nil {
		return dom.Proposal{}, pgx.ErrNoRows
	}
	p.Status = status
	f.proposals[id] = p
	return p, nil
}

func (f *fakeProposalRepo) BulkSetStatus(_ context.Context, userID int64, ids []int64, status dom.Status) (int64, error) {
	var n int64
	for _, id := range ids {
		p, ok := f.proposals[id]
		if !ok || p.UserID != userID || p.DeletedAt != nil {
			continue
		}
		p.Status = status
		f.proposals[id] = p
		n++
	}
	return n, nil
}

func (f *fakeProposalRepo) Search(_ context.Context, userID int64, q string) ([]dom.Proposal, error) {
	return f.List(context.Background(), userID)
}

func (f *fakeProposalRepo) Overdue(_ context.Context, userID int64) ([]dom.Proposal, error) {
	list, _ := f.List(context.Background(), userID)
	now := time.Now().UTC()
	var out []dom.Proposal
	for _, p := range list {
		if p.Status == dom.StatusPending && p.ExpectedReturnDate != nil && p.ExpectedReturnDate.Before(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

const testUserID int64 = 7

func newTestService() (*ProposalService, *fakeProposalRepo) {
	repo := newFakeProposalRepo()
	return NewProposalService(repo, nil), repo
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, testUserID, dom.Proposal{ClientName: "   "})
	assert.ErrorIs(t, err, ErrEmptyClientName)

	_, err = svc.Create(ctx, testUserID, dom.Proposal{ClientName: "Acme", Value: -1})
	assert.ErrorIs(t, err, ErrNegativeValue)

	_, err = svc.Create(ctx, testUserID, dom.Proposal{ClientName: "Acme", Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), testUserID, dom.Proposal{ClientName: "  Acme  ", Value: 100})
	require.NoError(t, err)

	assert.Equal(t, "Acme", p.ClientName)
	assert.Equal(t, dom.StatusPending, p.Status)
	assert.False(t, p.SentDate.IsZero())
	assert.Equal(t, p.SentDate, p.LastFollowUp, "last follow-up defaults to sent date")
	assert.Equal(t, testUserID, p.UserID)
}

func TestSentViaChannelNormalized(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, testUserID, dom.Proposal{ClientName: "Acme", SentVia: "  Email "})
	require.NoError(t, err)
	assert.Equal(t, dom.ChannelEmail, p.SentVia, "known channels fold to canonical form")

	p, err = svc.Create(ctx, testUserID, dom.Proposal{ClientName: "Acme", SentVia: "carrier pigeon"})
	require.NoError(t, err)
	assert.Equal(t, "carrier pigeon", p.SentVia, "free text passes through")

	via := "MESSENGER"
	p, err = svc.Update(ctx, testUserID, p.ID, UpdatePatch{SentVia: &via})
	require.NoError(t, err)
	assert.Equal(t, dom.ChannelMessenger, p.SentVia)
}

func TestCreateThenViewRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, testUserID, dom.Proposal{ClientName: "Acme", Value: 500})
	require.NoError(t, err)

	proj, err := svc.View(ctx, testUserID, view.Controls{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, proj.Items, 1, "empty search and no bounds must include the record exactly once")
	assert.Equal(t, created.ID, proj.Items[0].ID)
	assert.Equal(t, 1, proj.TotalFiltered)
}

func TestViewIsScopedToUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, testUserID, dom.Proposal{ClientName: "Mine"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, testUserID+1, dom.Proposal{ClientName: "Theirs"})
	require.NoError(t, err)

	proj, err := svc.View(ctx, testUserID, view.Controls{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, proj.Items, 1)
	assert.Equal(t, "Mine", proj.Items[0].ClientName)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService()
	name := "Acme"
	_, err := svc.Update(context.Background(), testUserID, 42, UpdatePatch{ClientName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateClearsReturnDate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	ret := time.Now().UTC().AddDate(0, 0, 5)
	created, err := svc.Create(ctx, testUserID, dom.Proposal{ClientName: "Acme", ExpectedReturnDate: &ret})
	require.NoError(t, err)
	require.NotNil(t, created.ExpectedReturnDate)

	updated, err := svc.Update(ctx, testUserID, created.ID, UpdatePatch{ClearReturnDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.ExpectedReturnDate)
}

func TestSetStatusOpenTransitions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, testUserID, dom.Proposal{ClientName: "Acme"})
	require.NoError(t, err)

	// No transition graph: any status may follow any other.
	for _, st := range []dom.Status{dom.StatusRejected, dom.StatusApproved, dom.StatusPending, dom.StatusApproved} {
		p, err := svc.SetStatus(ctx, testUserID, created.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, p.Status)
	}

	_, err = svc.SetStatus(ctx, testUserID, created.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBulkSetStatus(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		p, err := svc.Create(ctx, testUserID, dom.Proposal{ClientName: name})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	other, err := svc.Create(ctx, testUserID+1, dom.Proposal{ClientName: "Other"})
	require.NoError(t, err)

	n, err := svc.BulkSetStatus(ctx, testUserID, append(ids, other.ID), dom.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n, "rows owned by another user are skipped")

	for _, id := range ids {
		assert.Equal(t, dom.StatusApproved, repo.proposals[id].Status)
	}
	assert.Equal(t, dom.StatusPending, repo.proposals[other.ID].Status)

	_, err = svc.BulkSetStatus(ctx, testUserID, ids, "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	n, err = svc.BulkSetStatus(ctx, testUserID, nil, dom.StatusRejected)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteRemovesFromView(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, testUserID, dom.Proposal{ClientName: "Acme"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, testUserID, created.ID))

	proj, err := svc.View(ctx, testUserID, view.Controls{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, proj.Items)

	_, err = svc.GetByID(ctx, testUserID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	now := svc.now()

	seed := []dom.Proposal{
		{ClientName: "A", Value: 100, Status: dom.StatusApproved, SentDate: now, LastFollowUp: now},
		{ClientName: "B", Value: 200, Status: dom.StatusApproved, SentDate: now, LastFollowUp: now},
		{ClientName: "C", Value: 300, Status: dom.StatusRejected, SentDate: now, LastFollowUp: now},
		{ClientName: "D", Value: 400, Status: dom.StatusPending, SentDate: now, LastFollowUp: now.AddDate(0, 0, -10)},
	}
	for _, p := range seed {
		_, err := svc.Create(ctx, testUserID, p)
		require.NoError(t, err)
	}

	st, err := svc.Stats(ctx, testUserID)
	require.NoError(t, err)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, 2, st.Approved)
	assert.Equal(t, 1, st.Rejected)
	assert.Equal(t, 1000.0, st.TotalValue)
	assert.Equal(t, 300.0, st.ApprovedValue)
	assert.InDelta(t, 2.0/3.0, st.ApprovalRate, 1e-9)
	assert.Equal(t, 1, st.NeedsFollowUp, "pending proposal 10 days stale")
}
