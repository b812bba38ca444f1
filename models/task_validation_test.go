package models_test

import (
	"testing"

	"github.com/eadminhq/eadmin_backend/models"
)

func TestValidateTaskFields(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		content     string
		assigneesId int
		wantKeys    []string
	}{
		{"all present", "Fix router", "Replace the rack switch", 3, nil},
		{"missing title", "", "content", 3, []string{"title"}},
		{"whitespace title", "   ", "content", 3, []string{"title"}},
		{"missing content", "title", "", 3, []string{"content"}},
		{"missing assignee", "title", "content", 0, []string{"assigneesId"}},
		{"everything missing", "", "", 0, []string{"title", "content", "assigneesId"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := models.ValidateTaskFields(tc.title, tc.content, tc.assigneesId)
			if tc.wantKeys == nil {
				if errs != nil {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) != len(tc.wantKeys) {
				t.Fatalf("expected %d errors, got %v", len(tc.wantKeys), errs)
			}
			for _, key := range tc.wantKeys {
				if _, ok := errs[key]; !ok {
					t.Fatalf("missing error for %q in %v", key, errs)
				}
			}
		})
	}
}
