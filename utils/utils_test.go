package utils

import (
	"testing"
)

func TestSafeExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"holiday.jpg", ".jpg"},
		{"HOLIDAY.JPG", ".jpg"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
		{"trailingdot.", ""},
		{"space.j pg", ""},
		{"../../etc/passwd", ""},
		{"shell.sh;rm", ""},
		{"x.averyverylongext", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeExt(tt.name); got != tt.want {
				t.Errorf("SafeExt(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
