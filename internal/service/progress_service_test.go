package service

import (
	"testing"

	"studyhub_backend/internal/model"
)

func progressRow(moduleID string, completed bool) model.ModuleProgress {
	return model.ModuleProgress{ModuleID: moduleID, Completed: completed}
}

func TestComputeCourseProgress(t *testing.T) {
	fourModules := []string{"m1", "m2", "m3", "m4"}

	tests := []struct {
		name          string
		moduleIDs     []string
		rows          []model.ModuleProgress
		wantTotal     int
		wantCompleted int
		wantPct       int
	}{
		{
			name:      "no rows yet",
			moduleIDs: fourModules,
			rows:      nil,
			wantTotal: 4,
		},
		{
			name:          "half done",
			moduleIDs:     fourModules,
			rows:          []model.ModuleProgress{progressRow("m1", true), progressRow("m2", true)},
			wantTotal:     4,
			wantCompleted: 2,
			wantPct:       50,
		},
		{
			name:          "three of four rounds to 75",
			moduleIDs:     fourModules,
			rows:          []model.ModuleProgress{progressRow("m1", true), progressRow("m2", true), progressRow("m3", true)},
			wantTotal:     4,
			wantCompleted: 3,
			wantPct:       75,
		},
		{
			name:      "all done",
			moduleIDs: fourModules,
			rows: []model.ModuleProgress{
				progressRow("m1", true), progressRow("m2", true),
				progressRow("m3", true), progressRow("m4", true),
			},
			wantTotal:     4,
			wantCompleted: 4,
			wantPct:       100,
		},
		{
			name:          "one of three rounds to 33",
			moduleIDs:     []string{"m1", "m2", "m3"},
			rows:          []model.ModuleProgress{progressRow("m1", true)},
			wantTotal:     3,
			wantCompleted: 1,
			wantPct:       33,
		},
		{
			name:          "two of three rounds to 67",
			moduleIDs:     []string{"m1", "m2", "m3"},
			rows:          []model.ModuleProgress{progressRow("m1", true), progressRow("m2", true)},
			wantTotal:     3,
			wantCompleted: 2,
			wantPct:       67,
		},
		{
			name:      "incomplete rows do not count",
			moduleIDs: fourModules,
			rows:      []model.ModuleProgress{progressRow("m1", false), progressRow("m2", false)},
			wantTotal: 4,
		},
		{
			name:          "rows for removed modules are ignored",
			moduleIDs:     []string{"m1", "m2"},
			rows:          []model.ModuleProgress{progressRow("m1", true), progressRow("deleted", true)},
			wantTotal:     2,
			wantCompleted: 1,
			wantPct:       50,
		},
		{
			name:      "course with no modules",
			moduleIDs: nil,
			rows:      []model.ModuleProgress{progressRow("m1", true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, completed, pct := ComputeCourseProgress(tt.moduleIDs, tt.rows)
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if completed != tt.wantCompleted {
				t.Errorf("completed = %d, want %d", completed, tt.wantCompleted)
			}
			if pct != tt.wantPct {
				t.Errorf("percentage = %d, want %d", pct, tt.wantPct)
			}
		})
	}
}

func TestComputeCourseProgressCompletedNeverExceedsTotal(t *testing.T) {
	moduleIDs := []string{"m1", "m2"}
	// The unique (user, module) index prevents duplicate rows in storage, but
	// the pure function sees whatever it is handed: repeated completions of
	// the same module and rows for foreign modules both count zero extra.
	rows := []model.ModuleProgress{
		progressRow("m1", true),
		progressRow("m1", true),
		progressRow("m2", true),
		progressRow("extra1", true),
		progressRow("extra2", true),
	}

	total, completed, pct := ComputeCourseProgress(moduleIDs, rows)
	if completed > total {
		t.Errorf("completed %d exceeds total %d", completed, total)
	}
	if completed != 2 {
		t.Errorf("completed = %d, want 2", completed)
	}
	if pct != 100 {
		t.Errorf("percentage = %d, want 100", pct)
	}
}

func TestComputeCourseProgressDuplicateRowsCountOnce(t *testing.T) {
	moduleIDs := []string{"m1", "m2", "m3", "m4"}
	rows := []model.ModuleProgress{
		progressRow("m1", true),
		progressRow("m1", true),
		progressRow("m1", true),
	}

	_, completed, pct := ComputeCourseProgress(moduleIDs, rows)
	if completed != 1 {
		t.Errorf("completed = %d, want 1", completed)
	}
	if pct != 25 {
		t.Errorf("percentage = %d, want 25", pct)
	}
}

func TestComputeCourseProgressWalk(t *testing.T) {
	moduleIDs := []string{"m1", "m2", "m3", "m4"}
	rows := []model.ModuleProgress{}

	wantPct := []int{25, 50, 75, 100}
	for i, id := range moduleIDs {
		rows = append(rows, progressRow(id, true))
		_, completed, pct := ComputeCourseProgress(moduleIDs, rows)
		if completed != i+1 {
			t.Fatalf("after %d completions, completed = %d", i+1, completed)
		}
		if pct != wantPct[i] {
			t.Fatalf("after %d completions, percentage = %d, want %d", i+1, pct, wantPct[i])
		}
	}

	// Un-completing one module walks the aggregate back down.
	rows[3].Completed = false
	_, completed, pct := ComputeCourseProgress(moduleIDs, rows)
	if completed != 3 || pct != 75 {
		t.Errorf("after undo, completed = %d pct = %d, want 3 and 75", completed, pct)
	}
}
