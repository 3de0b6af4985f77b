package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hackerslides/hackerslides/pkg/errors"
	"github.com/hackerslides/hackerslides/pkg/render"
)

func TestExecuteDirectoryCommands(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := New(nil)

	// Create, then reset: RemoveDirectory must tolerate a missing target.
	commands := []render.Command{
		render.RemoveDirectory{Path: dir},
		render.MakeDirectory{Path: dir},
	}
	if err := e.Execute(context.Background(), commands); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("output directory missing after Execute: %v", err)
	}

	// A second run resets the directory contents.
	stale := filepath.Join(dir, "slide_000.png")
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.Execute(context.Background(), commands); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file survived the directory reset")
	}
}

func TestExecuteInvokeFailure(t *testing.T) {
	e := New(nil)
	err := e.Execute(context.Background(), []render.Command{
		render.Invoke{Executable: "false"},
	})
	if err == nil {
		t.Fatal("Execute() error = nil, want collaborator error")
	}
	if !errors.Is(err, errors.ErrCodeCollaborator) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeCollaborator)
	}
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	e := New(nil)
	err := e.Execute(context.Background(), []render.Command{
		render.Invoke{Executable: "false"},
		render.MakeDirectory{Path: dir},
	})
	if err == nil {
		t.Fatal("Execute() error = nil, want error")
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Error("command after the failure was still executed")
	}
}

func TestExecuteRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := New(nil)
	err := e.Execute(ctx, []render.Command{
		render.MakeDirectory{Path: filepath.Join(t.TempDir(), "late")},
	})
	if err == nil {
		t.Fatal("Execute() error = nil, want context error")
	}
}
