package workflow_test

import (
	"testing"

	"github.com/eadminhq/eadmin_backend/models"
	"github.com/eadminhq/eadmin_backend/workflow"
)

func intPtr(v int) *int { return &v }

func TestCanViewTask(t *testing.T) {
	cases := []struct {
		name     string
		callerId int
		role     models.UserRole
		task     models.Task
		want     bool
	}{
		{"admin sees any task", 99, models.UserRoleAdmin, models.Task{AssigneesId: intPtr(1)}, true},
		{"admin sees unassigned task", 99, models.UserRoleAdmin, models.Task{}, true},
		{"assignee sees own task", 5, models.UserRoleInstructor, models.Task{AssigneesId: intPtr(5)}, true},
		{"other instructor denied", 6, models.UserRoleInstructor, models.Task{AssigneesId: intPtr(5)}, false},
		{"student denied", 6, models.UserRoleStudent, models.Task{AssigneesId: intPtr(5)}, false},
		{"non-admin denied on unassigned", 6, models.UserRoleInstructor, models.Task{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := tc.task
			if got := workflow.CanViewTask(tc.callerId, tc.role, &task); got != tc.want {
				t.Fatalf("CanViewTask(%d, %s) = %v, want %v", tc.callerId, tc.role, got, tc.want)
			}
		})
	}
}
