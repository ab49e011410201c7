package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kmorishita/tasklane/internal/db"
	"github.com/kmorishita/tasklane/internal/domain"
)

// SQLiteInviteRepo implements InviteRepo using a SQLite database.
type SQLiteInviteRepo struct {
	conn db.DBTX
}

// NewSQLiteInviteRepo creates a new SQLiteInviteRepo.
func NewSQLiteInviteRepo(conn db.DBTX) *SQLiteInviteRepo {
	return &SQLiteInviteRepo{conn: conn}
}

func (r *SQLiteInviteRepo) Create(ctx context.Context, i *domain.Invite) error {
	query := `INSERT INTO invites (code, team_id, created_by, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		i.Code,
		i.TeamID,
		i.CreatedBy,
		i.CreatedAt.Format(time.RFC3339),
		nullableTimeToString(i.ExpiresAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting invite: %w", err)
	}
	return nil
}

func (r *SQLiteInviteRepo) GetByCode(ctx context.Context, code string) (*domain.Invite, error) {
	query := `SELECT code, team_id, created_by, created_at, expires_at FROM invites WHERE code = ?`
	row := r.conn.QueryRowContext(ctx, query, code)

	var i domain.Invite
	var createdAtStr string
	var expiresAtStr sql.NullString
	err := row.Scan(&i.Code, &i.TeamID, &i.CreatedBy, &createdAtStr, &expiresAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("invite: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning invite: %w", err)
	}
	i.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	i.ExpiresAt = parseNullableTime(expiresAtStr, time.RFC3339)
	return &i, nil
}

func (r *SQLiteInviteRepo) Delete(ctx context.Context, code string) error {
	query := `DELETE FROM invites WHERE code = ?`
	_, err := r.conn.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("deleting invite: %w", err)
	}
	return nil
}
