// Package importer loads a workspace bootstrap file: routines and seed tasks
// defined in JSON, validated and converted into domain objects in one pass.
// Refs are file-local names used to link subtasks to parents; they never
// leak into the database.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for workspace import.
type ImportSchema struct {
	Routines []RoutineImport `json:"routines,omitempty"`
	Tasks    []TaskImport    `json:"tasks,omitempty"`
}

// RoutineImport defines a recurring task rule in the import file.
type RoutineImport struct {
	Title             string   `json:"title"`
	ClientID          *string  `json:"client_id,omitempty"`
	Days              []string `json:"days"`
	Time              string   `json:"time,omitempty"`
	DefaultAssigneeID *string  `json:"default_assignee_id,omitempty"`
}

// TaskImport defines a one-off task in the import file.
type TaskImport struct {
	Ref       string  `json:"ref"`
	ParentRef *string `json:"parent_ref,omitempty"`
	Title     string  `json:"title"`
	ClientID  *string `json:"client_id,omitempty"`
	Status    string  `json:"status,omitempty"`
	DueDate   *string `json:"due_date,omitempty"`
	Assignee  *string `json:"assigned_to,omitempty"`
}

// LoadImportSchema reads and parses an import file from disk.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
