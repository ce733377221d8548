package logging

import "testing"

func TestInitLogger(t *testing.T) {
	InitLogger(false)
	if Logger == nil {
		t.Fatal("Logger not set")
	}
	InitLogger(true)
	if Logger == nil {
		t.Fatal("Logger not set in debug mode")
	}
	Logger.Debugw("debug message", "key", "value")
}
