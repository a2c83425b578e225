package execution

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mdtree/internal/fileutil"
	"mdtree/internal/project"
	"mdtree/internal/services"
)

// Phase is one toolchain invocation.
type Phase string

const (
	PhaseRun  Phase = "run"
	PhaseTest Phase = "test"
)

// Phases lists the phases a project of kind k is a candidate for.
func Phases(k project.Kind) []Phase {
	var phases []Phase
	if k.Has(project.Executable) {
		phases = append(phases, PhaseRun)
	}
	if k.Has(project.Library) {
		phases = append(phases, PhaseTest)
	}
	return phases
}

// Request describes one command to run inside a project directory.
type Request struct {
	Dir     string
	Phase   Phase
	Command []string
	Timeout time.Duration
}

// Result captures a finished command. Err is non-nil when the command could
// not be launched, timed out, or exited non-zero; it wraps
// services.ErrExternalTool.
type Result struct {
	Phase    Phase
	Command  []string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Err      error
}

// OK reports whether the command exited zero.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner launches commands.
type Runner interface {
	Run(ctx context.Context, req Request) Result
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, req Request) Result

func (f RunnerFunc) Run(ctx context.Context, req Request) Result {
	return f(ctx, req)
}

// Requests builds the phase commands for proj materialized at dir.
func Requests(proj *project.Project, dir string, timeout time.Duration) []Request {
	var reqs []Request
	for _, phase := range Phases(proj.Kind) {
		cmd := proj.Ecosystem.RunCommand
		if phase == PhaseTest {
			cmd = proj.Ecosystem.TestCommand
		}
		if len(cmd) == 0 {
			continue
		}
		reqs = append(reqs, Request{
			Dir:     dir,
			Phase:   phase,
			Command: append([]string(nil), cmd...),
			Timeout: timeout,
		})
	}
	return reqs
}

// Execute runs every phase for proj and persists each result into dir.
// Failures are reported per result and never stop later phases.
func Execute(ctx context.Context, runner Runner, proj *project.Project, dir string, timeout time.Duration) []Result {
	reqs := Requests(proj, dir, timeout)
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		phaseCtx := services.WithPhase(ctx, string(req.Phase))
		res := runner.Run(phaseCtx, req)
		res.Phase = req.Phase
		if res.Command == nil {
			res.Command = req.Command
		}
		if err := Persist(dir, res); err != nil && res.Err == nil {
			res.Err = err
		}
		results = append(results, res)
	}
	return results
}

// OutputFileName is the file a phase's output is written to.
func OutputFileName(phase Phase) string {
	return string(phase) + "_output.txt"
}

// Format renders a result in the persisted layout.
func Format(res Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[EXIT] %d\n", res.ExitCode)
	sb.WriteString("[STDOUT]\n")
	sb.WriteString(res.Stdout)
	if res.Stdout != "" && !strings.HasSuffix(res.Stdout, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString("[STDERR]\n")
	sb.WriteString(res.Stderr)
	return sb.String()
}

// Persist writes res to dir/OutputFileName(res.Phase).
func Persist(dir string, res Result) error {
	dest := filepath.Join(dir, OutputFileName(res.Phase))
	if err := fileutil.WriteAtomic(dest, []byte(Format(res)), fileutil.FileMode); err != nil {
		return services.Wrap(services.ErrFileWriteFailed, filepath.Base(dir), "persist output", string(res.Phase), err)
	}
	return nil
}

// ReadOutput loads a previously persisted phase output.
func ReadOutput(dir string, phase Phase) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, OutputFileName(phase)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
