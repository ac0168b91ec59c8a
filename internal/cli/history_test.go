package cli

import (
	"testing"

	"apkstate/internal/history"
)

func TestDescribeEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry history.Entry
		want  string
	}{
		{
			name:  "apply",
			entry: history.Entry{State: "present", Packages: []string{"vim", "git"}},
			want:  "state=present vim git",
		},
		{
			name:  "refresh only",
			entry: history.Entry{Refresh: true},
			want:  "update-cache",
		},
		{
			name:  "refresh and upgrade",
			entry: history.Entry{Refresh: true, Upgrade: true},
			want:  "update-cache upgrade",
		},
		{
			name: "dry run",
			entry: history.Entry{
				State:    "latest",
				Packages: []string{"curl"},
				Simulate: true,
			},
			want: "state=latest curl (dry-run)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeEntry(tt.entry); got != tt.want {
				t.Errorf("describeEntry() = %q, want %q", got, tt.want)
			}
		})
	}
}
