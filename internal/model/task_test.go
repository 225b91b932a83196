package model

import "testing"

func TestTaskStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status TaskStatus
		want   bool
	}{
		{TaskStatusPending, true},
		{TaskStatusCompleted, true},
		{TaskStatus(""), false},
		{TaskStatus("archived"), false},
		{TaskStatus("Pending"), false},
	}

	for _, tt := range tests {
		if got := tt.status.IsValid(); got != tt.want {
			t.Errorf("TaskStatus(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
