package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validSchema() *ImportSchema {
	return &ImportSchema{
		Routines: []RoutineImport{
			{Title: "Weekly sync", Days: []string{"Mon", "Wed", "Fri"}, Time: "09:00"},
		},
		Tasks: []TaskImport{
			{Ref: "report", Title: "Monthly report", DueDate: strPtr("2024-03-29")},
			{Ref: "figures", ParentRef: strPtr("report"), Title: "Collect figures"},
		},
	}
}

func TestValidateImportSchema_Valid(t *testing.T) {
	errs := ValidateImportSchema(validSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_RoutineErrors(t *testing.T) {
	tests := []struct {
		name    string
		routine RoutineImport
		wantMsg string
	}{
		{"missing title", RoutineImport{Days: []string{"Mon"}}, "title is required"},
		{"no days", RoutineImport{Title: "Sync"}, "at least one weekday"},
		{"unknown day token", RoutineImport{Title: "Sync", Days: []string{"Monday"}}, "unknown weekday"},
		{"bad time", RoutineImport{Title: "Sync", Days: []string{"Mon"}, Time: "9am"}, "invalid value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateImportSchema(&ImportSchema{Routines: []RoutineImport{tt.routine}})
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tt.wantMsg)
		})
	}
}

func TestValidateImportSchema_TaskErrors(t *testing.T) {
	tests := []struct {
		name    string
		tasks   []TaskImport
		wantMsg string
	}{
		{
			"missing ref",
			[]TaskImport{{Title: "No ref"}},
			"ref is required",
		},
		{
			"duplicate ref",
			[]TaskImport{{Ref: "a", Title: "One"}, {Ref: "a", Title: "Two"}},
			"duplicate ref",
		},
		{
			"missing title",
			[]TaskImport{{Ref: "a"}},
			"title is required",
		},
		{
			"invalid status",
			[]TaskImport{{Ref: "a", Title: "One", Status: "blocked"}},
			"invalid value",
		},
		{
			"bad due date",
			[]TaskImport{{Ref: "a", Title: "One", DueDate: strPtr("03/18/2024")}},
			"invalid date",
		},
		{
			"unknown parent ref",
			[]TaskImport{{Ref: "a", Title: "One", ParentRef: strPtr("missing")}},
			"unknown ref",
		},
		{
			"self parent",
			[]TaskImport{{Ref: "a", Title: "One", ParentRef: strPtr("a")}},
			"own parent",
		},
		{
			"parent defined after child",
			[]TaskImport{
				{Ref: "child", Title: "Child", ParentRef: strPtr("parent")},
				{Ref: "parent", Title: "Parent"},
			},
			"must be defined before",
		},
		{
			"nested subtask",
			[]TaskImport{
				{Ref: "a", Title: "Top"},
				{Ref: "b", Title: "Mid", ParentRef: strPtr("a")},
				{Ref: "c", Title: "Deep", ParentRef: strPtr("b")},
			},
			"one level of nesting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateImportSchema(&ImportSchema{Tasks: tt.tasks})
			require.NotEmpty(t, errs)
			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tt.wantMsg) {
					found = true
				}
			}
			assert.True(t, found, "expected an error containing %q, got %v", tt.wantMsg, errs)
		})
	}
}
