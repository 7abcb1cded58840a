package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/unclebandit/leadleopard-backend/internal/errors"
	"github.com/unclebandit/leadleopard-backend/internal/model"
)

type AccountRepositoryInterface interface {
	Find(username string) (*model.TargetAccount, error)
	// Upsert inserts a new pending account; existing rows are left untouched.
	// Returns true when a row was actually inserted.
	Upsert(a *model.TargetAccount) (bool, error)
	ListPending(industry, location string, limit int) ([]*model.TargetAccount, error)
	MarkContacted(username string, when time.Time) error
	// MarkResponded reports whether it transitioned the account; an account
	// that already responded returns false, nil.
	MarkResponded(username string) (bool, error)
	UpdateStatus(username string, status model.AccountStatus) error
	CountByStatus(industry string) (map[model.AccountStatus]int, error)
}

type AccountRepository struct {
	DB *sql.DB
}

const accountColumns = `id, username, full_name, bio, follower_count, following_count, post_count,
		   is_verified, is_business, is_private, category, location,
		   last_contacted, contact_attempts, status, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (*model.TargetAccount, error) {
	var a model.TargetAccount
	err := row.Scan(
		&a.ID, &a.Username, &a.FullName, &a.Bio, &a.FollowerCount, &a.FollowingCount,
		&a.PostCount, &a.IsVerified, &a.IsBusiness, &a.IsPrivate, &a.Category,
		&a.Location, &a.LastContacted, &a.ContactAttempts, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Find(username string) (*model.TargetAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM target_accounts WHERE username=$1`
	a, err := scanAccount(r.DB.QueryRow(query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) Upsert(a *model.TargetAccount) (bool, error) {
	if a.Status == "" {
		a.Status = model.AccountPending
	}
	a.CreatedAt = time.Now()

	// Insert-or-ignore: discovery must never overwrite an existing record's
	// status or attempt counter.
	query := `
		INSERT INTO target_accounts
			(username, full_name, bio, follower_count, following_count, post_count,
			 is_verified, is_business, is_private, category, location,
			 contact_attempts, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, $13)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRow(query,
		a.Username, a.FullName, a.Bio, a.FollowerCount, a.FollowingCount, a.PostCount,
		a.IsVerified, a.IsBusiness, a.IsPrivate, a.Category, a.Location,
		a.Status, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil // already known
		}
		return false, err
	}
	return true, nil
}

// ListPending returns pending accounts oldest-first so the executor is fair.
func (r *AccountRepository) ListPending(industry, location string, limit int) ([]*model.TargetAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM target_accounts
		WHERE status=$1 AND category=$2 AND ($3 = '' OR location ILIKE '%' || $3 || '%')
		ORDER BY id ASC
		LIMIT $4
	`
	rows, err := r.DB.Query(query, model.AccountPending, industry, location, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*model.TargetAccount{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// MarkContacted stamps last_contacted and bumps the attempt counter in a
// single statement, so the cooldown survives process restarts.
func (r *AccountRepository) MarkContacted(username string, when time.Time) error {
	query := `
		UPDATE target_accounts
		SET status=$1, last_contacted=$2, contact_attempts=contact_attempts+1, updated_at=NOW()
		WHERE username=$3 AND status IN ($4, $5)
	`
	res, err := r.DB.Exec(query, model.AccountContacted, when, username,
		model.AccountPending, model.AccountContacted)
	if err != nil {
		return err
	}
	return r.checkTransitionResult(res, username, model.AccountContacted)
}

// MarkResponded flips a contacted account to responded. The bool reports
// whether this call performed the transition; an account that already
// responded (or converted) returns false with no error, so callers can keep
// statistics idempotent under re-polled DMs.
func (r *AccountRepository) MarkResponded(username string) (bool, error) {
	query := `
		UPDATE target_accounts
		SET status=$1, updated_at=NOW()
		WHERE username=$2 AND status=$3
	`
	res, err := r.DB.Exec(query, model.AccountResponded, username, model.AccountContacted)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	// Already responded or converted counts as done, anything else is invalid.
	a, err := r.Find(username)
	if err != nil {
		return false, err
	}
	if a == nil {
		return false, appErrors.NewAccountNotFound(username)
	}
	if a.Status == model.AccountResponded || a.Status == model.AccountConverted {
		return false, nil
	}
	return false, appErrors.NewInvalidTransition("account", string(a.Status), string(model.AccountResponded))
}

// UpdateStatus validates against the transition table before writing.
func (r *AccountRepository) UpdateStatus(username string, status model.AccountStatus) error {
	a, err := r.Find(username)
	if err != nil {
		return err
	}
	if a == nil {
		return appErrors.NewAccountNotFound(username)
	}
	if !model.ValidAccountTransition(a.Status, status) {
		return appErrors.NewInvalidTransition("account", string(a.Status), string(status))
	}

	// Optimistic: the row must still hold the status we validated against.
	query := `UPDATE target_accounts SET status=$1, updated_at=NOW() WHERE username=$2 AND status=$3`
	res, err := r.DB.Exec(query, status, username, a.Status)
	if err != nil {
		return err
	}
	return r.checkTransitionResult(res, username, status)
}

func (r *AccountRepository) checkTransitionResult(res sql.Result, username string, to model.AccountStatus) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	a, err := r.Find(username)
	if err != nil {
		return err
	}
	if a == nil {
		return appErrors.NewAccountNotFound(username)
	}
	return appErrors.NewInvalidTransition("account", string(a.Status), string(to))
}

func (r *AccountRepository) CountByStatus(industry string) (map[model.AccountStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM target_accounts WHERE $1 = '' OR category=$1 GROUP BY status`
	rows, err := r.DB.Query(query, industry)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[model.AccountStatus]int{
		model.AccountPending:       0,
		model.AccountContacted:     0,
		model.AccountResponded:     0,
		model.AccountConverted:     0,
		model.AccountBlocked:       0,
		model.AccountNotInterested: 0,
	}
	for rows.Next() {
		var status model.AccountStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

var _ AccountRepositoryInterface = (*AccountRepository)(nil)
