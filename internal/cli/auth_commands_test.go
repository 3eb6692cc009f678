package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestResolvePassword_FlagWins(t *testing.T) {
	r := &root{}
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("from-stdin\n"))
	cmd.SetOut(io.Discard)

	got, err := r.resolvePassword(cmd, "from-flag")
	if err != nil {
		t.Fatalf("resolvePassword returned error: %v", err)
	}
	if got != "from-flag" {
		t.Fatalf("expected flag value, got %q", got)
	}
}

func TestResolvePassword_PromptsOnPipedInput(t *testing.T) {
	r := &root{}
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("hunter2\r\n"))
	var out strings.Builder
	cmd.SetOut(&out)

	got, err := r.resolvePassword(cmd, "")
	if err != nil {
		t.Fatalf("resolvePassword returned error: %v", err)
	}
	if got != "hunter2" {
		t.Fatalf("expected trimmed password, got %q", got)
	}
	if !strings.Contains(out.String(), "Password: ") {
		t.Fatalf("prompt not printed, got %q", out.String())
	}
	// the secret itself must never be written back out
	if strings.Contains(out.String(), "hunter2") {
		t.Fatalf("password echoed to output: %q", out.String())
	}
}
