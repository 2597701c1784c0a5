// Package util provides a collection of domain-agnostic utility functions and helpers.
package util

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hoopsgrab-cli/hoopsgrab/filesystem"
)

var (
	titleInvalid = regexp.MustCompile(`[^\w\s-]`)
	titleRuns    = regexp.MustCompile(`[-\s]+`)
)

// SanitizeTitle normalizes a replay title into a safe, cross-platform filename stem.
// Characters outside letters, digits, underscore, whitespace and hyphen are stripped,
// then runs of whitespace and hyphens collapse to single underscores.
// The transformation is idempotent.
func SanitizeTitle(title string) string {
	title = titleInvalid.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	return titleRuns.ReplaceAllString(title, "_")
}

// Quantify returns a pluralized string representation of a count and its associated labels.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// ReGroups extracts and maps named capture groups from a regular expression match.
func ReGroups(pattern *regexp.Regexp, str string) map[string]string {
	groups := make(map[string]string)
	match := pattern.FindStringSubmatch(str)
	if match == nil {
		return groups
	}

	for i, name := range pattern.SubexpNames() {
		if i > 0 && i < len(match) && name != "" {
			groups[name] = match[i]
		}
	}
	return groups
}

// Ignore executes a function and explicitly discards its error return value.
func Ignore(f func() error) {
	_ = f()
}

// Capitalize returns the string with its first letter in upper case.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// PrintErasable prints an ephemeral message to the terminal and returns a closure to clear it.
func PrintErasable(msg string) (eraser func()) {
	fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Delete removes the file or directory at path if it exists.
func Delete(path string) error {
	return filesystem.API().RemoveAll(path)
}
