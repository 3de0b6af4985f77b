// Package executor runs compiled render command streams.
//
// It is the only side-effecting stage of the pipeline: it creates and
// removes directories and invokes the external collaborators (ImageMagick,
// pygmentize) as blocking subprocesses. The first failing command aborts
// the run; there is no retry or partial-result recovery.
package executor

import (
	"context"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/hackerslides/hackerslides/pkg/errors"
	"github.com/hackerslides/hackerslides/pkg/render"
)

// Executor runs render commands in order.
type Executor struct {
	logger *log.Logger
}

// New creates an executor logging through logger.
func New(logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.Default()
	}
	return &Executor{logger: logger}
}

// Execute runs every command in order, stopping at the first failure.
// Context cancellation kills the in-flight subprocess.
func (e *Executor) Execute(ctx context.Context, commands []render.Command) error {
	for _, command := range commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.execute(ctx, command); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) execute(ctx context.Context, command render.Command) error {
	e.logger.Debug("executing command", "command", command.String())
	switch c := command.(type) {
	case render.Invoke:
		out, err := exec.CommandContext(ctx, c.Executable, c.Args...).CombinedOutput()
		if err != nil {
			return errors.Wrap(errors.ErrCodeCollaborator, err,
				"%s failed: %s", c.Executable, string(out))
		}
		return nil
	case render.RemoveDirectory:
		if err := os.RemoveAll(c.Path); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "remove directory %s", c.Path)
		}
		return nil
	case render.MakeDirectory:
		if err := os.MkdirAll(c.Path, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create directory %s", c.Path)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInternal, "unknown command %T", command)
	}
}
