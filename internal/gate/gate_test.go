package gate

import (
	"testing"

	"siteforge/pkg/domain"
)

func TestCanView(t *testing.T) {
	tests := []struct {
		name     string
		isPublic bool
		password string
		supplied string
		want     bool
	}{
		{"public without password", true, "", "", true},
		{"public ignores supplied password", true, "", "whatever", true},
		{"private exact match", false, "abc123", "abc123", true},
		{"private near miss", false, "abc123", "abc124", false},
		{"private case sensitive", false, "abc123", "ABC123", false},
		{"private empty supplied", false, "abc123", "", false},
		{"private with trailing space", false, "abc123", "abc123 ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := domain.WebsiteRecord{
				ID:       "w1",
				IsPublic: tt.isPublic,
				Password: tt.password,
			}
			if got := CanView(rec, tt.supplied); got != tt.want {
				t.Fatalf("CanView() = %v, want %v", got, tt.want)
			}
		})
	}
}
