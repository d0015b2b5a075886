// Package extscan builds and runs the command line for an external
// vulnerability scanner (nuclei) against a run's live findings. It owns
// only the invocation: parsing or interpreting the scanner's findings is
// out of scope here.
package extscan

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/duskline/subrecon/pkg/security"
)

// nucleiTimeout bounds the scan subprocess independently of the caller's
// context: a nuclei run against a large target list must not hang the run.
const nucleiTimeout = 300 * time.Second

// NucleiScanner builds nuclei invocations against a validated target list.
type NucleiScanner struct {
	BinaryPath    string
	TemplatesPath string
}

// IsAvailable reports whether the configured nuclei binary can be found.
func (n *NucleiScanner) IsAvailable() bool {
	if n.BinaryPath == "" {
		return false
	}
	_, err := exec.LookPath(n.BinaryPath)
	return err == nil
}

// BuildCommand validates targets, writes them to targetsFile (one
// `https://host` per line) and returns the nuclei argument vector. Targets
// that fail security.ValidateTargets are silently dropped, never passed to
// the subprocess.
func (n *NucleiScanner) BuildCommand(targets []string, targetsFile, outputFile string) ([]string, error) {
	validated := security.ValidateTargets(targets)
	if len(validated) == 0 {
		return nil, fmt.Errorf("no valid targets")
	}

	f, err := os.Create(targetsFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	for _, t := range validated {
		if _, err := fmt.Fprintf(f, "https://%s\n", t); err != nil {
			return nil, err
		}
	}

	cmd := []string{
		n.BinaryPath,
		"-l", targetsFile,
		"-severity", "low,medium,high,critical",
		"-silent",
		"-json",
	}
	if n.TemplatesPath != "" {
		cmd = append(cmd, "-t", n.TemplatesPath)
	} else {
		cmd = append(cmd, "-t", "cves/")
	}
	if outputFile != "" {
		cmd = append(cmd, "-o", outputFile)
	}
	return cmd, nil
}

// Run executes a command vector built by BuildCommand and returns its raw
// stdout (newline-delimited JSON, one finding per line) for a caller to
// persist or forward; this package does not parse it.
func (n *NucleiScanner) Run(ctx context.Context, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	ctx, cancel := context.WithTimeout(ctx, nucleiTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	return cmd.Output()
}
