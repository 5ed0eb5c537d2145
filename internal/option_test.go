package internal

import (
	"bytes"
	"testing"
)

func TestOptionsApply(t *testing.T) {
	cfg := NewDefaultConfig()
	var buf bytes.Buffer

	app := &application{}
	for _, opt := range []Option{WithConfig(cfg), WithLogOutput(&buf)} {
		opt(app)
	}

	if app.config != cfg {
		t.Error("WithConfig did not set the configuration")
	}
	if app.logOut != &buf {
		t.Error("WithLogOutput did not set the log sink")
	}
}
