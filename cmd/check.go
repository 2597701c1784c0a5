// Package cmd implements the command-line interface for hoopsgrab.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/hoopsgrab-cli/hoopsgrab/color"
	"github.com/hoopsgrab-cli/hoopsgrab/icon"
	"github.com/hoopsgrab-cli/hoopsgrab/style"
)

// browserCandidates are the Chrome-family executables the automation layer
// can attach to, in lookup order.
var browserCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

// CheckDependencies verifies the availability of required system dependencies.
// The current implementation validates that a Chrome-family browser is in the system PATH.
func CheckDependencies() {
	for _, candidate := range browserCandidates {
		if _, err := exec.LookPath(candidate); err == nil {
			return
		}
	}

	printMissingDependencyError("google-chrome")
	os.Exit(1)
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install --cask google-chrome"
	case "linux":
		installCmd = "sudo apt install chromium-browser" // Generic, maybe check distro
	case "windows":
		installCmd = "winget install Google.Chrome"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(color.New("252")).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(color.Yellow).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
