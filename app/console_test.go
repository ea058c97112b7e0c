package app

import (
	"errors"
	"testing"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want string
	}{
		{"no args", "Delay effect enabled", nil, "Delay effect enabled"},
		{"pairs", "voice creation failed", []any{"id", "pointer-1", "err", errors.New("boom")}, "voice creation failed id=pointer-1 err=boom"},
		{"odd", "dangling", []any{"id", "keyboard", "extra"}, "dangling id=keyboard extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatLine(tt.msg, tt.args); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
