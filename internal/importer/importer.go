// Package importer hands finished reports to the external library tool.
package importer

import (
	"bufio"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"peek-go/internal/peek"
)

var command = exec.Command

// ExecImporter runs "<binary> db import <core> <report>" once per report.
type ExecImporter struct {
	binary string
	logger peek.Logger
}

// NewImporter returns an ExecImporter for binary, or a peek.NopImporter
// when no binary is configured.
func NewImporter(binary string, logger peek.Logger) peek.Importer {
	if strings.TrimSpace(binary) == "" {
		return peek.NopImporter{}
	}
	return &ExecImporter{binary: binary, logger: logger}
}

// Import runs the tool and waits for it to exit. Output is drained
// line by line into the debug log. A non-zero exit is an error.
func (i *ExecImporter) Import(core string, reportPath string) error {
	cmd := command(i.binary, "db", "import", core, reportPath) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting import: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		i.logger.Debug("import output", "core", core, "line", scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		cmd.Wait()
		return fmt.Errorf("reading import output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("import process failed with code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("waiting for import: %w", err)
	}

	i.logger.Info("report imported", "core", core, "report", reportPath)
	return nil
}

var _ peek.Importer = (*ExecImporter)(nil)
