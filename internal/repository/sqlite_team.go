package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kmorishita/tasklane/internal/db"
	"github.com/kmorishita/tasklane/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo using a SQLite database.
type SQLiteTeamRepo struct {
	conn db.DBTX
}

// NewSQLiteTeamRepo creates a new SQLiteTeamRepo.
func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{conn: conn}
}

func (r *SQLiteTeamRepo) Create(ctx context.Context, t *domain.Team) error {
	query := `INSERT INTO teams (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	query := `SELECT id, name, created_at, updated_at FROM teams WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanTeam(row)
}

func (r *SQLiteTeamRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Team, error) {
	query := `SELECT t.id, t.name, t.created_at, t.updated_at
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = ?
		ORDER BY m.joined_at, t.id`
	rows, err := r.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing teams by user: %w", err)
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		var t domain.Team
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&t.ID, &t.Name, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		if err := parseTeamTimes(&t, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}
	return teams, nil
}

func (r *SQLiteTeamRepo) Update(ctx context.Context, t *domain.Team) error {
	query := `UPDATE teams SET name = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, t.Name, t.UpdatedAt.Format(time.RFC3339), t.ID)
	if err != nil {
		return fmt.Errorf("updating team: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM teams WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) scanTeam(row *sql.Row) (*domain.Team, error) {
	var t domain.Team
	var createdAtStr, updatedAtStr string
	err := row.Scan(&t.ID, &t.Name, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("team: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning team: %w", err)
	}
	if err := parseTeamTimes(&t, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTeamTimes(t *domain.Team, createdAtStr, updatedAtStr string) error {
	var err error
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
