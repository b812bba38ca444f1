package utils_test

import (
	"testing"

	"github.com/eadminhq/eadmin_backend/utils"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		totalCount int64
		pageSize   int
		want       int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := utils.TotalPages(tc.totalCount, tc.pageSize); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.totalCount, tc.pageSize, got, tc.want)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	if got := utils.NormalizePage(0); got != 1 {
		t.Fatalf("NormalizePage(0) = %d", got)
	}
	if got := utils.NormalizePage(-3); got != 1 {
		t.Fatalf("NormalizePage(-3) = %d", got)
	}
	if got := utils.NormalizePage(4); got != 4 {
		t.Fatalf("NormalizePage(4) = %d", got)
	}
}

func TestFieldErrorsStringIsDeterministic(t *testing.T) {
	errs := utils.FieldErrors{
		"title":   "Title is required",
		"content": "Content is required",
	}
	want := "content: Content is required; title: Title is required"
	if got := errs.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestIsValidEmail(t *testing.T) {
	for _, ok := range []string{"user@example.com", "a.b+c@sub.domain.vn"} {
		if !utils.IsValidEmail(ok) {
			t.Fatalf("IsValidEmail(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "user", "user@", "@example.com", "user @example.com"} {
		if utils.IsValidEmail(bad) {
			t.Fatalf("IsValidEmail(%q) = true", bad)
		}
	}
}

func TestJwtRoundTrip(t *testing.T) {
	signed, err := utils.JwtGenerate(42, "Instructor")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	token, err := utils.JwtValidate(signed)
	if err != nil {
		t.Fatalf("JwtValidate: %v", err)
	}
	claims, ok := token.Claims.(*utils.JwtCustomClaim)
	if !ok {
		t.Fatalf("unexpected claims type %T", token.Claims)
	}
	if claims.ID != 42 || claims.Role != "Instructor" {
		t.Fatalf("claims = {%d %s}", claims.ID, claims.Role)
	}
}

func TestJwtValidateRejectsGarbage(t *testing.T) {
	if _, err := utils.JwtValidate("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
