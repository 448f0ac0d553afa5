package models

import "testing"

func TestSubprojectLabel(t *testing.T) {
	tests := []struct {
		name string
		sp   Subproject
		want string
	}{
		{"named", NewSubproject("alpha", "Alpha Project"), "Alpha Project"},
		{"unnamed", NewSubproject("beta", ""), "beta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sp.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
