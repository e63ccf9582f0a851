package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/eivissacopter/battdash/models"
)

// formatDrivetrain compacts the motor and tuning fields into one cell.
func formatDrivetrain(f models.ClassifiedFolder) string {
	parts := []string{f.FrontMotor + "/" + f.RearMotor, f.Tuning}
	if f.AccelerationMode != "" {
		parts = append(parts, f.AccelerationMode)
	}
	return strings.Join(parts, " ")
}

// openURL opens the folder listing with the default system browser
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux, bsd, etc.
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
