// Package deps reports whether the external programs and model files a
// transcription run needs are present.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency vidsub relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	// Path is the resolved executable or file when available.
	Path   string
	Detail string
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
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		results = append(results, status)
	}
	return results
}

// CheckFile reports whether a regular file such as a model exists.
func CheckFile(req Requirement) Status {
	path := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     path,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	info, err := os.Stat(path)
	switch {
	case path == "":
		status.Detail = "path not configured"
	case err != nil:
		status.Detail = fmt.Sprintf("file %q not found", path)
	case info.IsDir():
		status.Detail = fmt.Sprintf("%q is a directory", path)
	default:
		status.Available = true
		status.Path = path
		status.Detail = fmt.Sprintf("%.1f MB", float64(info.Size())/(1024*1024))
	}
	return status
}

// Missing returns the required (non-optional) dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			out = append(out, s)
		}
	}
	return out
}
