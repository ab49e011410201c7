package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kmorishita/tasklane/internal/db"
	"github.com/kmorishita/tasklane/internal/domain"
)

// routineColumns is the canonical SELECT column list for routines.
const routineColumns = `id, team_id, client_id, title, rule, default_assignee_id,
		active, created_by, created_at, updated_at`

// SQLiteRoutineRepo implements RoutineRepo using a SQLite database.
type SQLiteRoutineRepo struct {
	conn db.DBTX
}

// NewSQLiteRoutineRepo creates a new SQLiteRoutineRepo.
func NewSQLiteRoutineRepo(conn db.DBTX) *SQLiteRoutineRepo {
	return &SQLiteRoutineRepo{conn: conn}
}

func (r *SQLiteRoutineRepo) Create(ctx context.Context, rt *domain.Routine) error {
	rule, err := json.Marshal(rt.Rule)
	if err != nil {
		return fmt.Errorf("encoding recurrence rule: %w", err)
	}
	query := `INSERT INTO routines (id, team_id, client_id, title, rule, default_assignee_id,
		active, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.conn.ExecContext(ctx, query,
		rt.ID,
		rt.TeamID,
		nullableStr(rt.ClientID),
		rt.Title,
		string(rule),
		nullableStr(rt.DefaultAssigneeID),
		boolToInt(rt.Active),
		rt.CreatedBy,
		rt.CreatedAt.Format(time.RFC3339),
		rt.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting routine: %w", err)
	}
	return nil
}

func (r *SQLiteRoutineRepo) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanRoutine(row)
}

func (r *SQLiteRoutineRepo) ListByTeam(ctx context.Context, teamID string, activeOnly bool) ([]*domain.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines WHERE team_id = ? ORDER BY created_at, id`
	if activeOnly {
		query = `SELECT ` + routineColumns + ` FROM routines
			WHERE team_id = ? AND active = 1 ORDER BY created_at, id`
	}
	rows, err := r.conn.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing routines by team: %w", err)
	}
	defer rows.Close()

	var routines []*domain.Routine
	for rows.Next() {
		rt, err := r.scanRoutineRow(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating routines: %w", err)
	}
	return routines, nil
}

func (r *SQLiteRoutineRepo) Update(ctx context.Context, rt *domain.Routine) error {
	rule, err := json.Marshal(rt.Rule)
	if err != nil {
		return fmt.Errorf("encoding recurrence rule: %w", err)
	}
	query := `UPDATE routines SET client_id = ?, title = ?, rule = ?, default_assignee_id = ?,
		active = ?, updated_at = ? WHERE id = ?`
	_, err = r.conn.ExecContext(ctx, query,
		nullableStr(rt.ClientID),
		rt.Title,
		string(rule),
		nullableStr(rt.DefaultAssigneeID),
		boolToInt(rt.Active),
		rt.UpdatedAt.Format(time.RFC3339),
		rt.ID,
	)
	if err != nil {
		return fmt.Errorf("updating routine: %w", err)
	}
	return nil
}

func (r *SQLiteRoutineRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM routines WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting routine: %w", err)
	}
	return nil
}

func (r *SQLiteRoutineRepo) scanRoutine(row *sql.Row) (*domain.Routine, error) {
	var rt domain.Routine
	var clientID, assigneeID sql.NullString
	var ruleStr, createdAtStr, updatedAtStr string
	var activeInt int

	err := row.Scan(&rt.ID, &rt.TeamID, &clientID, &rt.Title, &ruleStr, &assigneeID,
		&activeInt, &rt.CreatedBy, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("routine: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning routine: %w", err)
	}
	return r.populateRoutine(&rt, clientID, assigneeID, ruleStr, activeInt, createdAtStr, updatedAtStr)
}

func (r *SQLiteRoutineRepo) scanRoutineRow(rows *sql.Rows) (*domain.Routine, error) {
	var rt domain.Routine
	var clientID, assigneeID sql.NullString
	var ruleStr, createdAtStr, updatedAtStr string
	var activeInt int

	err := rows.Scan(&rt.ID, &rt.TeamID, &clientID, &rt.Title, &ruleStr, &assigneeID,
		&activeInt, &rt.CreatedBy, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning routine row: %w", err)
	}
	return r.populateRoutine(&rt, clientID, assigneeID, ruleStr, activeInt, createdAtStr, updatedAtStr)
}

func (r *SQLiteRoutineRepo) populateRoutine(
	rt *domain.Routine,
	clientID, assigneeID sql.NullString,
	ruleStr string,
	activeInt int,
	createdAtStr, updatedAtStr string,
) (*domain.Routine, error) {
	rt.ClientID = parseNullableStr(clientID)
	rt.DefaultAssigneeID = parseNullableStr(assigneeID)
	// Lenient by policy: a malformed stored rule loads as the zero rule and
	// simply generates nothing.
	rt.Rule = domain.ParseRecurrenceRule([]byte(ruleStr))
	rt.Active = intToBool(activeInt)

	var err error
	rt.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	rt.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return rt, nil
}
