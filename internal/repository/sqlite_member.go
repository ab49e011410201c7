package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kmorishita/tasklane/internal/db"
	"github.com/kmorishita/tasklane/internal/domain"
)

// SQLiteMemberRepo implements MemberRepo using a SQLite database.
type SQLiteMemberRepo struct {
	conn db.DBTX
}

// NewSQLiteMemberRepo creates a new SQLiteMemberRepo.
func NewSQLiteMemberRepo(conn db.DBTX) *SQLiteMemberRepo {
	return &SQLiteMemberRepo{conn: conn}
}

func (r *SQLiteMemberRepo) Add(ctx context.Context, m *domain.TeamMember) error {
	// (team_id, user_id) is the primary key; re-joining is a no-op.
	query := `INSERT OR IGNORE INTO team_members (team_id, user_id, role, joined_at)
		VALUES (?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		m.TeamID,
		m.UserID,
		string(m.Role),
		m.JoinedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting team member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) Remove(ctx context.Context, teamID, userID string) error {
	query := `DELETE FROM team_members WHERE team_id = ? AND user_id = ?`
	_, err := r.conn.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return fmt.Errorf("removing team member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) Get(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	query := `SELECT team_id, user_id, role, joined_at
		FROM team_members WHERE team_id = ? AND user_id = ?`
	row := r.conn.QueryRowContext(ctx, query, teamID, userID)

	var m domain.TeamMember
	var roleStr, joinedAtStr string
	err := row.Scan(&m.TeamID, &m.UserID, &roleStr, &joinedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("team member: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning team member: %w", err)
	}
	m.Role = domain.Role(roleStr)
	m.JoinedAt, err = time.Parse(time.RFC3339, joinedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing joined_at: %w", err)
	}
	return &m, nil
}

func (r *SQLiteMemberRepo) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	query := `SELECT COUNT(*) FROM team_members WHERE team_id = ? AND user_id = ?`
	var count int
	if err := r.conn.QueryRowContext(ctx, query, teamID, userID).Scan(&count); err != nil {
		return false, fmt.Errorf("checking membership: %w", err)
	}
	return count > 0, nil
}

func (r *SQLiteMemberRepo) ListByTeam(ctx context.Context, teamID string) ([]*domain.TeamMember, error) {
	query := `SELECT team_id, user_id, role, joined_at
		FROM team_members WHERE team_id = ?
		ORDER BY joined_at, user_id`
	return r.list(ctx, query, teamID)
}

func (r *SQLiteMemberRepo) ListByUser(ctx context.Context, userID string) ([]*domain.TeamMember, error) {
	query := `SELECT team_id, user_id, role, joined_at
		FROM team_members WHERE user_id = ?
		ORDER BY joined_at, team_id`
	return r.list(ctx, query, userID)
}

func (r *SQLiteMemberRepo) list(ctx context.Context, query string, arg string) ([]*domain.TeamMember, error) {
	rows, err := r.conn.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var members []*domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		var roleStr, joinedAtStr string
		if err := rows.Scan(&m.TeamID, &m.UserID, &roleStr, &joinedAtStr); err != nil {
			return nil, fmt.Errorf("scanning team member row: %w", err)
		}
		m.Role = domain.Role(roleStr)
		m.JoinedAt, err = time.Parse(time.RFC3339, joinedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing joined_at: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team members: %w", err)
	}
	return members, nil
}
