package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"mdtree/internal/project"
)

// Requirement defines an external toolchain binary mdtree may launch.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a toolchain binary.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForEcosystems lists the binaries the run and test phases of each ecosystem
// call. A binary shared by both phases is listed once. Toolchains are optional
// unless execution is enabled.
func ForEcosystems(ecos []project.Ecosystem, execute bool) []Requirement {
	seen := make(map[string]bool)
	var reqs []Requirement
	for _, eco := range ecos {
		for _, cmd := range [][]string{eco.RunCommand, eco.TestCommand} {
			if len(cmd) == 0 || seen[cmd[0]] {
				continue
			}
			seen[cmd[0]] = true
			reqs = append(reqs, Requirement{
				Name:        eco.Name,
				Command:     cmd[0],
				Description: fmt.Sprintf("Runs and tests %s projects", eco.Name),
				Optional:    !execute,
			})
		}
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Detail = resolved
		results = append(results, status)
	}
	return results
}

// Missing counts unavailable required binaries.
func Missing(statuses []Status) int {
	n := 0
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			n++
		}
	}
	return n
}
