package models_test

import (
	"testing"

	"github.com/eadminhq/eadmin_backend/models"
)

func TestNextTaskStatus(t *testing.T) {
	cases := []struct {
		current models.TaskStatus
		next    models.TaskStatus
		ok      bool
	}{
		{models.TaskStatusPending, models.TaskStatusInProgress, true},
		{models.TaskStatusInProgress, models.TaskStatusCompleted, true},
		{models.TaskStatusCompleted, models.TaskStatusCompleted, false},
		{models.TaskStatusCanceled, models.TaskStatusCanceled, false},
	}
	for _, tc := range cases {
		next, ok := models.NextTaskStatus(tc.current)
		if next != tc.next || ok != tc.ok {
			t.Fatalf("NextTaskStatus(%s) = (%s, %v), want (%s, %v)", tc.current, next, ok, tc.next, tc.ok)
		}
	}
}

func TestParseUserRole(t *testing.T) {
	for _, valid := range []string{"Admin", "Instructor", "Student"} {
		role, err := models.ParseUserRole(valid)
		if err != nil {
			t.Fatalf("ParseUserRole(%q): %v", valid, err)
		}
		if string(role) != valid {
			t.Fatalf("ParseUserRole(%q) = %q", valid, role)
		}
	}
	for _, invalid := range []string{"", "admin", "Superuser"} {
		if _, err := models.ParseUserRole(invalid); err == nil {
			t.Fatalf("ParseUserRole(%q) accepted", invalid)
		}
	}
}

func TestParseReportCategoryRejectsFreeText(t *testing.T) {
	if _, err := models.ParseReportCategory("Broken projector"); err == nil {
		t.Fatal("free-text title accepted as category")
	}
	if _, err := models.ParseReportCategory("equipment"); err == nil {
		t.Fatal("category parsing should be case sensitive")
	}
}

func TestParseTaskStatusAcceptsCanceled(t *testing.T) {
	status, err := models.ParseTaskStatus("Canceled")
	if err != nil {
		t.Fatalf("ParseTaskStatus(Canceled): %v", err)
	}
	if status != models.TaskStatusCanceled {
		t.Fatalf("got %q", status)
	}
}

func TestIsAdmin(t *testing.T) {
	if !models.UserRoleAdmin.IsAdmin() {
		t.Fatal("Admin role not recognized")
	}
	if models.UserRoleInstructor.IsAdmin() || models.UserRoleStudent.IsAdmin() {
		t.Fatal("non-admin role recognized as admin")
	}
}
