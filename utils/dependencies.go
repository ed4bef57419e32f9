package utils

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ValidateTool checks that the conversion tool can be found, either as an
// explicit path or in PATH, and returns the resolved executable.
func ValidateTool(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("no conversion tool configured")
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH. %s", name, getInstallationInstructions(name))
	}
	return path, nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), ".exe")
	if base != "ffmpeg" {
		return fmt.Sprintf("Install %s or pass its location with --tool", base)
	}

	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or yum install ffmpeg (CentOS/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and add to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html"
	}
}
