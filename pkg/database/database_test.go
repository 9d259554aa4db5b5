package database

import "testing"

func TestShouldMigrate(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug always migrates", "debug", false, true},
		{"test always migrates", "test", false, true},
		{"release without flag skips", "release", false, false},
		{"release with flag migrates", "release", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldMigrate(tt.mode, tt.force); got != tt.want {
				t.Errorf("ShouldMigrate(%q, %v) = %v, want %v", tt.mode, tt.force, got, tt.want)
			}
		})
	}
}
