package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"mdtree/internal/logging"
	"mdtree/internal/services"
)

// CommandRunner launches requests as child processes.
type CommandRunner struct {
	Logger *slog.Logger
}

// NewCommandRunner returns a runner that logs through logger.
func NewCommandRunner(logger *slog.Logger) *CommandRunner {
	return &CommandRunner{Logger: logging.NewComponentLogger(logger, "execution")}
}

// Run executes req.Command in req.Dir, honoring req.Timeout when positive.
func (r *CommandRunner) Run(ctx context.Context, req Request) Result {
	res := Result{Phase: req.Phase, Command: req.Command, ExitCode: -1}
	unit := strings.Join(req.Command, " ")
	if len(req.Command) == 0 {
		res.Err = services.Wrap(services.ErrExternalTool, string(req.Phase), "execute", "no command configured", nil)
		return res
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	logger := logging.WithContext(ctx, r.Logger)
	logger.Info("command started", logging.String("command", unit), logging.String("dir", req.Dir))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, req.Command[0], req.Command[1:]...)
	cmd.Dir = req.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case ctx.Err() != nil:
		res.Err = services.Wrap(services.ErrExternalTool, unit, "execute", "timed out or cancelled", ctx.Err())
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		res.Err = services.Wrap(services.ErrExternalTool, unit, "execute", fmt.Sprintf("exit status %d", res.ExitCode), nil)
	default:
		res.Err = services.Wrap(services.ErrExternalTool, unit, "execute", "launch failed", err)
	}

	if res.Err != nil {
		logger.Warn("command failed",
			logging.String("command", unit),
			logging.Int("exit_code", res.ExitCode),
			logging.Duration("duration", res.Duration),
			logging.Error(res.Err),
		)
	} else {
		logger.Info("command finished",
			logging.String("command", unit),
			logging.Duration("duration", res.Duration),
		)
	}
	return res
}
