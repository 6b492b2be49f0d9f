package postgres

import (
	"context"
	"database/sql"

	tourconnect "github.com/himaSH97/tc-servey"
	"github.com/lib/pq"
)

// SubmissionService journals every response relayed to the record store.
type SubmissionService struct {
	db *sql.DB
}

func NewSubmissionService(db *sql.DB) tourconnect.SubmissionService {
	return &SubmissionService{
		db: db,
	}
}

func (ss SubmissionService) Create(ctx context.Context, s tourconnect.Submission) error {
	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO submissions (
		id, record_id, email, name, user_type, interested, features, willing_to_pay, likelihood, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
	)`

	r := s.Response
	_, err = tx.ExecContext(ctx, query,
		s.ID,
		s.RecordID,
		r.Email,
		r.Name,
		r.UserType,
		r.Interested,
		pq.Array(r.Features),
		r.WillingToPay,
		int(r.Likelihood),
		s.CreatedAt,
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Count returns how many people joined the waitlist.
func (ss SubmissionService) Count(ctx context.Context) (int, error) {
	const query = `SELECT count(*) FROM submissions`

	var n int
	if err := ss.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
