package importer

import (
	"fmt"
	"time"

	"github.com/kmorishita/tasklane/internal/domain"
)

var validWeekdays = map[string]bool{
	"Mon": true, "Tue": true, "Wed": true, "Thu": true,
	"Fri": true, "Sat": true, "Sun": true,
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
//
// Import is an authoring flow, so day tokens are validated strictly here even
// though stored rules tolerate unknown tokens at expansion time.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	for i, r := range schema.Routines {
		errs = append(errs, validateRoutine(i, &r)...)
	}

	taskRefs := make(map[string]bool)
	errs = append(errs, validateTasks(schema.Tasks, taskRefs)...)

	return errs
}

func validateRoutine(i int, r *RoutineImport) []error {
	var errs []error

	if r.Title == "" {
		errs = append(errs, fmt.Errorf("routines[%d].title is required", i))
	}
	if len(r.Days) == 0 {
		errs = append(errs, fmt.Errorf("routines[%d].days must name at least one weekday", i))
	}
	for _, d := range r.Days {
		if !validWeekdays[d] {
			errs = append(errs, fmt.Errorf("routines[%d].days: unknown weekday %q (expected Mon..Sun)", i, d))
		}
	}
	if r.Time != "" {
		if _, err := time.Parse("15:04", r.Time); err != nil {
			errs = append(errs, fmt.Errorf("routines[%d].time: invalid value %q (expected HH:MM)", i, r.Time))
		}
	}

	return errs
}

func validateTasks(tasks []TaskImport, taskRefs map[string]bool) []error {
	var errs []error

	parented := make(map[string]bool)
	for i, t := range tasks {
		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("tasks[%d].ref is required", i))
		} else if taskRefs[t.Ref] {
			errs = append(errs, fmt.Errorf("tasks[%d].ref: duplicate ref %q", i, t.Ref))
		} else {
			taskRefs[t.Ref] = true
		}
		if t.Title == "" {
			errs = append(errs, fmt.Errorf("tasks[%d].title is required", i))
		}
		if t.Status != "" && !domain.ValidTaskStatuses[t.Status] {
			errs = append(errs, fmt.Errorf("tasks[%d].status: invalid value %q", i, t.Status))
		}
		if t.DueDate != nil {
			if _, err := time.Parse("2006-01-02", *t.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("tasks[%d].due_date: invalid date %q (expected YYYY-MM-DD)", i, *t.DueDate))
			}
		}
		if t.ParentRef != nil {
			parented[t.Ref] = true
		}
	}

	// Parents must exist, precede their children, and be top-level tasks.
	seen := make(map[string]bool)
	for i, t := range tasks {
		if t.ParentRef != nil {
			switch {
			case *t.ParentRef == t.Ref:
				errs = append(errs, fmt.Errorf("tasks[%d].parent_ref: task cannot be its own parent", i))
			case !taskRefs[*t.ParentRef]:
				errs = append(errs, fmt.Errorf("tasks[%d].parent_ref: unknown ref %q", i, *t.ParentRef))
			case !seen[*t.ParentRef]:
				errs = append(errs, fmt.Errorf("tasks[%d].parent_ref: %q must be defined before its subtasks", i, *t.ParentRef))
			case parented[*t.ParentRef]:
				errs = append(errs, fmt.Errorf("tasks[%d].parent_ref: %q is itself a subtask; only one level of nesting is allowed", i, *t.ParentRef))
			}
		}
		seen[t.Ref] = true
	}

	return errs
}
