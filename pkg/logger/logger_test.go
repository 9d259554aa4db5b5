package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestSetLevelFollowsMode(t *testing.T) {
	SetLevel("debug")
	if !level.Enabled(zap.DebugLevel) {
		t.Error("debug mode should enable debug logs")
	}

	SetLevel("release")
	if level.Enabled(zap.DebugLevel) {
		t.Error("release mode should suppress debug logs")
	}
	if !level.Enabled(zap.InfoLevel) {
		t.Error("release mode should keep info logs")
	}

	SetLevel("debug")
	if !level.Enabled(zap.DebugLevel) {
		t.Error("switching back to debug mode should re-enable debug logs")
	}
}
