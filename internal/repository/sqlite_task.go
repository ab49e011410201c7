package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kmorishita/tasklane/internal/db"
	"github.com/kmorishita/tasklane/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, team_id, client_id, routine_id, parent_id, title, status,
		due_date, assigned_to, created_by, source_type, created_at, updated_at`

const taskInsert = `INSERT %s INTO tasks (id, team_id, client_id, routine_id, parent_id,
		title, status, due_date, assigned_to, created_by, source_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	conn db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{conn: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.exec(ctx, fmt.Sprintf(taskInsert, ""), t)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) CreateFromRoutine(ctx context.Context, t *domain.Task) (bool, error) {
	// The partial unique index on (routine_id, due_date) makes re-runs over
	// overlapping ranges idempotent: the duplicate row is silently dropped.
	res, err := r.exec(ctx, fmt.Sprintf(taskInsert, "OR IGNORE"), t)
	if err != nil {
		return false, fmt.Errorf("inserting routine task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteTaskRepo) exec(ctx context.Context, query string, t *domain.Task) (sql.Result, error) {
	return r.conn.ExecContext(ctx, query,
		t.ID,
		t.TeamID,
		nullableStr(t.ClientID),
		nullableStr(t.RoutineID),
		nullableStr(t.ParentID),
		t.Title,
		string(t.Status),
		nullableTimeToString(t.DueDate, dateLayout),
		nullableStr(t.Assignee),
		t.CreatedBy,
		string(t.Source),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE team_id = ?
		ORDER BY due_date IS NULL, due_date, created_at`
	return r.listTasks(ctx, query, teamID)
}

func (r *SQLiteTaskRepo) ListByAssignee(ctx context.Context, teamID, userID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE team_id = ? AND assigned_to = ?
		ORDER BY due_date IS NULL, due_date, created_at`
	return r.listTasks(ctx, query, teamID, userID)
}

func (r *SQLiteTaskRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE parent_id = ? ORDER BY created_at`
	return r.listTasks(ctx, query, parentID)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET client_id = ?, routine_id = ?, parent_id = ?, title = ?,
		status = ?, due_date = ?, assigned_to = ?, source_type = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		nullableStr(t.ClientID),
		nullableStr(t.RoutineID),
		nullableStr(t.ParentID),
		t.Title,
		string(t.Status),
		nullableTimeToString(t.DueDate, dateLayout),
		nullableStr(t.Assignee),
		string(t.Source),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	query := `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.conn.ExecContext(ctx, query,
		string(status),
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) listTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var clientID, routineID, parentID, assignee, dueDateStr sql.NullString
	var statusStr, sourceStr, createdAtStr, updatedAtStr string

	err := row.Scan(&t.ID, &t.TeamID, &clientID, &routineID, &parentID, &t.Title, &statusStr,
		&dueDateStr, &assignee, &t.CreatedBy, &sourceStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return r.populateTask(&t, clientID, routineID, parentID, assignee, dueDateStr,
		statusStr, sourceStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteTaskRepo) scanTaskRow(rows *sql.Rows) (*domain.Task, error) {
	var t domain.Task
	var clientID, routineID, parentID, assignee, dueDateStr sql.NullString
	var statusStr, sourceStr, createdAtStr, updatedAtStr string

	err := rows.Scan(&t.ID, &t.TeamID, &clientID, &routineID, &parentID, &t.Title, &statusStr,
		&dueDateStr, &assignee, &t.CreatedBy, &sourceStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning task row: %w", err)
	}
	return r.populateTask(&t, clientID, routineID, parentID, assignee, dueDateStr,
		statusStr, sourceStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteTaskRepo) populateTask(
	t *domain.Task,
	clientID, routineID, parentID, assignee, dueDateStr sql.NullString,
	statusStr, sourceStr, createdAtStr, updatedAtStr string,
) (*domain.Task, error) {
	t.ClientID = parseNullableStr(clientID)
	t.RoutineID = parseNullableStr(routineID)
	t.ParentID = parseNullableStr(parentID)
	t.Assignee = parseNullableStr(assignee)
	t.Status = domain.TaskStatus(statusStr)
	t.Source = domain.TaskSource(sourceStr)
	t.DueDate = parseNullableTime(dueDateStr, dateLayout)

	var err error
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, nil
}
