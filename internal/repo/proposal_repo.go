package repo

import (
	"context"
	"time"

	dom "propboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProposalRepo interface {
	Create(ctx context.Context, p dom.Proposal) (dom.Proposal, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Proposal, error)
	List(ctx context.Context, userID int64) ([]dom.Proposal, error)
	Update(ctx context.Context, userID, id int64, patch dom.Proposal) (dom.Proposal, error)
	SoftDelete(ctx context.Context, userID, id int64) error
	SetStatus(ctx context.Context, userID, id int64, status dom.Status) (dom.Proposal, error)
	BulkSetStatus(ctx context.Context, userID int64, ids []int64, status dom.Status) (int64, error)
	Search(ctx context.Context, userID int64, q string) ([]dom.Proposal, error)
	Overdue(ctx context.Context, userID int64) ([]dom.Proposal, error)
}

type PGProposalRepo struct {
	db *pgxpool.Pool
}

func NewPGProposalRepo(db *pgxpool.Pool) *PGProposalRepo {
	return &PGProposalRepo{db: db}
}

const proposalColumns = `id, user_id, client_name, sent_date, value, status,
	last_follow_up, expected_return_date, sent_via, notes,
	created_at, updated_at, deleted_at`

func (r *PGProposalRepo) Create(ctx context.Context, p dom.Proposal) (dom.Proposal, error) {
	query := `
		INSERT INTO proposals (user_id, client_name, sent_date, value, status, last_follow_up, expected_return_date, sent_via, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + proposalColumns
	row := r.db.QueryRow(ctx, query,
		p.UserID, p.ClientName, p.SentDate, p.Value, p.Status,
		p.LastFollowUp, p.ExpectedReturnDate, p.SentVia, p.Notes,
	)
	return scanProposal(row)
}

func (r *PGProposalRepo) GetByID(ctx context.Context, userID, id int64) (dom.Proposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM proposals WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	return scanProposal(r.db.QueryRow(ctx, query, id, userID))
}

func (r *PGProposalRepo) List(ctx context.Context, userID int64) ([]dom.Proposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM proposals WHERE user_id = $1 AND deleted_at IS NULL ORDER BY sent_date DESC, id DESC`
	return r.queryList(ctx, query, userID)
}

func (r *PGProposalRepo) Update(ctx context.Context, userID, id int64, patch dom.Proposal) (dom.Proposal, error) {
	query := `
		UPDATE proposals
		SET client_name = $3, sent_date = $4, value = $5, status = $6,
			last_follow_up = $7, expected_return_date = $8, sent_via = $9, notes = $10,
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING ` + proposalColumns
	row := r.db.QueryRow(ctx, query, id, userID,
		patch.ClientName, patch.SentDate, patch.Value, patch.Status,
		patch.LastFollowUp, patch.ExpectedReturnDate, patch.SentVia, patch.Notes,
	)
	return scanProposal(row)
}

func (r *PGProposalRepo) SoftDelete(ctx context.Context, userID, id int64) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`UPDATE proposals SET deleted_at = $3, updated_at = $3 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		id, userID, now)
	return err
}

func (r *PGProposalRepo) SetStatus(ctx context.Context, userID, id int64, status dom.Status) (dom.Proposal, error) {
	query := `
		UPDATE proposals SET status = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING ` + proposalColumns
	return scanProposal(r.db.QueryRow(ctx, query, id, userID, status))
}

// BulkSetStatus applies one status to every given id owned by the user and
// returns how many rows changed. Ids belonging to other users are skipped
// by the WHERE clause, not reported as errors.
func (r *PGProposalRepo) BulkSetStatus(ctx context.Context, userID int64, ids []int64, status dom.Status) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE proposals SET status = $3, updated_at = NOW()
		 WHERE user_id = $1 AND id = ANY($2) AND deleted_at IS NULL`,
		userID, ids, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGProposalRepo) Search(ctx context.Context, userID int64, q string) ([]dom.Proposal, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT ` + proposalColumns + `
		FROM proposals WHERE user_id = $1 AND deleted_at IS NULL AND client_name ILIKE $2
		ORDER BY sent_date DESC, id DESC`
	return r.queryList(ctx, query, userID, pattern)
}

func (r *PGProposalRepo) Overdue(ctx context.Context, userID int64) ([]dom.Proposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM proposals
		WHERE user_id = $1 AND deleted_at IS NULL AND status = 'pending'
			AND expected_return_date IS NOT NULL AND expected_return_date < NOW()
		ORDER BY expected_return_date ASC`
	return r.queryList(ctx, query, userID)
}

func (r *PGProposalRepo) queryList(ctx context.Context, query string, args ...any) ([]dom.Proposal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProposal(row rowScanner) (dom.Proposal, error) {
	var p dom.Proposal
	err := row.Scan(
		&p.ID, &p.UserID, &p.ClientName, &p.SentDate, &p.Value, &p.Status,
		&p.LastFollowUp, &p.ExpectedReturnDate, &p.SentVia, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	return p, err
}
