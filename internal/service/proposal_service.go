package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"propboard/internal/cache"
	dom "propboard/internal/domain"
	"propboard/internal/repo"
	"propboard/internal/utils"
	"propboard/internal/view"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyClientName = errors.New("client_name is required")
	ErrNegativeValue   = errors.New("value must be >= 0")
	ErrInvalidStatus   = errors.New("status must be pending, approved or rejected")
	ErrConstraint      = errors.New("proposal violates a data constraint")
)

// Stats is the dashboard aggregate over the user's full collection.
type Stats struct {
	Total         int
	Pending       int
	Approved      int
	Rejected      int
	TotalValue    float64
	ApprovedValue float64
	ApprovalRate  float64
	NeedsFollowUp int
	ReturnOverdue int
}

type ProposalService struct {
	repo  repo.ProposalRepo
	cache *cache.ProposalCache
	sf    singleflight.Group
	now   func() time.Time
}

// NewProposalService creates a ProposalService. If c is nil, caching is
// disabled.
func NewProposalService(r repo.ProposalRepo, c *cache.ProposalCache) *ProposalService {
	return &ProposalService{repo: r, cache: c, now: time.Now}
}

func (s *ProposalService) Create(ctx context.Context, userID int64, p dom.Proposal) (dom.Proposal, error) {
	p.UserID = userID
	p.ClientName = strings.TrimSpace(p.ClientName)
	p.SentVia = normalizeChannel(p.SentVia)
	p.Notes = strings.TrimSpace(p.Notes)

	if p.ClientName == "" {
		return dom.Proposal{}, ErrEmptyClientName
	}
	if p.Value < 0 {
		return dom.Proposal{}, ErrNegativeValue
	}
	if p.Status == "" {
		p.Status = dom.StatusPending
	}
	if !p.Status.Valid() {
		return dom.Proposal{}, ErrInvalidStatus
	}

	now := s.now().UTC()
	if p.SentDate.IsZero() {
		p.SentDate = now
	}
	if p.LastFollowUp.IsZero() {
		p.LastFollowUp = p.SentDate
	}

	out, err := s.repo.Create(ctx, p)
	if err != nil {
		if utils.IsPGCheckViolation(err) {
			return dom.Proposal{}, ErrConstraint
		}
		return dom.Proposal{}, err
	}
	s.invalidateCache(ctx, userID)
	return out, nil
}

func (s *ProposalService) List(ctx context.Context, userID int64) ([]dom.Proposal, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Proposal), nil
	}
	return s.repo.List(ctx, userID)
}

func (s *ProposalService) GetByID(ctx context.Context, userID, id int64) (dom.Proposal, error) {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Proposal{}, ErrNotFound
		}
		return dom.Proposal{}, err
	}
	return p, nil
}

// UpdatePatch carries the optional fields of a partial update. Nil means
// leave unchanged; ClearReturnDate clears the optional return date.
type UpdatePatch struct {
	ClientName         *string
	SentDate           *time.Time
	Value              *float64
	Status             *dom.Status
	LastFollowUp       *time.Time
	ExpectedReturnDate *time.Time
	ClearReturnDate    bool
	SentVia            *string
	Notes              *string
}

func (s *ProposalService) Update(ctx context.Context, userID, id int64, patch UpdatePatch) (dom.Proposal, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Proposal{}, ErrNotFound
		}
		return dom.Proposal{}, err
	}

	next := existing
	if patch.ClientName != nil {
		next.ClientName = strings.TrimSpace(*patch.ClientName)
		if next.ClientName == "" {
			return dom.Proposal{}, ErrEmptyClientName
		}
	}
	if patch.SentDate != nil {
		next.SentDate = *patch.SentDate
	}
	if patch.Value != nil {
		if *patch.Value < 0 {
			return dom.Proposal{}, ErrNegativeValue
		}
		next.Value = *patch.Value
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return dom.Proposal{}, ErrInvalidStatus
		}
		next.Status = *patch.Status
	}
	if patch.LastFollowUp != nil {
		next.LastFollowUp = *patch.LastFollowUp
	}
	if patch.ClearReturnDate {
		next.ExpectedReturnDate = nil
	} else if patch.ExpectedReturnDate != nil {
		next.ExpectedReturnDate = patch.ExpectedReturnDate
	}
	if patch.SentVia != nil {
		next.SentVia = normalizeChannel(*patch.SentVia)
	}
	if patch.Notes != nil {
		next.Notes = strings.TrimSpace(*patch.Notes)
	}

	out, err := s.repo.Update(ctx, userID, id, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Proposal{}, ErrNotFound
		}
		if utils.IsPGCheckViolation(err) {
			return dom.Proposal{}, ErrConstraint
		}
		return dom.Proposal{}, err
	}
	s.invalidateCache(ctx, userID)
	return out, nil
}

func (s *ProposalService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.SoftDelete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// SetStatus changes one proposal's status. Any status may follow any other.
func (s *ProposalService) SetStatus(ctx context.Context, userID, id int64, status dom.Status) (dom.Proposal, error) {
	if !status.Valid() {
		return dom.Proposal{}, ErrInvalidStatus
	}
	p, err := s.repo.SetStatus(ctx, userID, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Proposal{}, ErrNotFound
		}
		return dom.Proposal{}, err
	}
	s.invalidateCache(ctx, userID)
	return p, nil
}

// BulkSetStatus applies one status to every given id owned by the user and
// returns the number of rows updated.
func (s *ProposalService) BulkSetStatus(ctx context.Context, userID int64, ids []int64, status dom.Status) (int64, error) {
	if !status.Valid() {
		return 0, ErrInvalidStatus
	}
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.repo.BulkSetStatus(ctx, userID, ids, status)
	if err != nil {
		return 0, err
	}
	s.invalidateCache(ctx, userID)
	return n, nil
}

// View computes the derived table view over the user's full collection.
func (s *ProposalService) View(ctx context.Context, userID int64, controls view.Controls) (view.Projection, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return view.Projection{}, err
	}
	return view.Project(list, controls, s.now()), nil
}

func (s *ProposalService) Search(ctx context.Context, userID int64, q string) ([]dom.Proposal, error) {
	q = strings.TrimSpace(q)
	if s.cache != nil {
		key := "search:" + strconv.FormatInt(userID, 10) + ":" + strings.ToLower(q)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetSearch(ctx, userID, q); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.Search(ctx, userID, q)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetSearch(ctx, userID, q, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Proposal), nil
	}
	return s.repo.Search(ctx, userID, q)
}

// Overdue lists pending proposals whose expected return date has passed.
func (s *ProposalService) Overdue(ctx context.Context, userID int64) ([]dom.Proposal, error) {
	if s.cache != nil {
		key := "overdue:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetOverdue(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.Overdue(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetOverdue(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Proposal), nil
	}
	return s.repo.Overdue(ctx, userID)
}

// Stats aggregates the user's full collection for the dashboard header.
// Alert counters use the same classification as the table view.
func (s *ProposalService) Stats(ctx context.Context, userID int64) (Stats, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	now := s.now()
	st := Stats{Total: len(list)}
	for _, p := range list {
		switch p.Status {
		case dom.StatusPending:
			st.Pending++
		case dom.StatusApproved:
			st.Approved++
			st.ApprovedValue += p.Value
		case dom.StatusRejected:
			st.Rejected++
		}
		st.TotalValue += p.Value
		a := view.Classify(p, now)
		if a.NeedsFollowUp {
			st.NeedsFollowUp++
		}
		if a.ReturnOverdue {
			st.ReturnOverdue++
		}
	}
	decided := st.Approved + st.Rejected
	if decided > 0 {
		st.ApprovalRate = float64(st.Approved) / float64(decided)
	}
	return st, nil
}

// normalizeChannel folds the known sent-via channels to their canonical
// lowercase form; any other value is kept verbatim as free text.
func normalizeChannel(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case dom.ChannelEmail:
		return dom.ChannelEmail
	case dom.ChannelMessenger:
		return dom.ChannelMessenger
	case dom.ChannelOther:
		return dom.ChannelOther
	}
	return s
}

func (s *ProposalService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx, userID)
	}
}
