package log

import (
	"strings"
	"testing"
)

func TestPrintf(t *testing.T) {
	var sb strings.Builder
	l := &Logger{Enabled: true, Prefix: "mdlint:", W: &sb}

	l.Printf("linting %d files", 3)
	if sb.String() != "mdlint: linting 3 files\n" {
		t.Errorf("output = %q", sb.String())
	}
}

func TestPrintfDisabled(t *testing.T) {
	var sb strings.Builder
	l := &Logger{Enabled: false, W: &sb}

	l.Printf("should not appear")
	if sb.String() != "" {
		t.Errorf("disabled logger wrote %q", sb.String())
	}
}

func TestPrintfNilLogger(t *testing.T) {
	var l *Logger
	l.Printf("no panic")
}

func TestPrintfNoPrefix(t *testing.T) {
	var sb strings.Builder
	l := &Logger{Enabled: true, W: &sb}

	l.Printf("bare")
	if sb.String() != "bare\n" {
		t.Errorf("output = %q", sb.String())
	}
}
