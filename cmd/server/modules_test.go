package main

import "testing"

func TestFilesPrefix(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"/files", "/files", true},
		{"/files/", "/files", true},
		{"/static/files", "", false},
		{"https://cdn.example.com/proofs", "", false},
		{"//cdn.example.com", "", false},
		{"/", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := filesPrefix(tt.url)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("filesPrefix(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
