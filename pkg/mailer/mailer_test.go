package mailer_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/leadpipe/pkg/mailer"
)

func TestFinalizeDefaults(t *testing.T) {
	var cfg mailer.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("host: got %s", cfg.Host)
	}
	if cfg.Port != 587 {
		t.Errorf("port: got %d, want 587", cfg.Port)
	}
	if cfg.From != "no-reply@leadpipe.local" {
		t.Errorf("from: got %s", cfg.From)
	}
}

func TestFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_MAIL_HOST", "smtp.internal")
	t.Setenv("TEST_MAIL_PORT", "2525")
	t.Setenv("TEST_MAIL_FROM", "sales@example.com")

	cfg := mailer.Config{}
	err := cfg.Finalize(&mailer.Env{
		Host: "TEST_MAIL_HOST",
		Port: "TEST_MAIL_PORT",
		From: "TEST_MAIL_FROM",
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Host != "smtp.internal" || cfg.Port != 2525 || cfg.From != "sales@example.com" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestFinalizeInvalidPort(t *testing.T) {
	cfg := mailer.Config{Port: 70000}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("expected error for invalid port")
	}
}

func TestMerge(t *testing.T) {
	cfg := mailer.Config{Host: "a", Port: 25, From: "a@example.com"}
	cfg.Merge(&mailer.Config{Host: "b"})

	if cfg.Host != "b" {
		t.Errorf("host: got %s, want b", cfg.Host)
	}
	if cfg.Port != 25 || cfg.From != "a@example.com" {
		t.Errorf("zero overlay fields should not overwrite: %+v", cfg)
	}
}

func TestNewMessageSetsFrom(t *testing.T) {
	cfg := mailer.Config{Host: "localhost", Port: 587, From: "review@example.com"}
	m := mailer.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	msg := m.NewMessage()
	if got := msg.GetHeader("From"); len(got) != 1 || got[0] != "review@example.com" {
		t.Errorf("from header: got %v", got)
	}
}
