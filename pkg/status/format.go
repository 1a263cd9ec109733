package status

import (
	"fmt"

	"github.com/fatih/color"
)

// FileFormatter defines how per-file events are rendered on the console
type FileFormatter interface {
	// FormatAdded formats a file that was appended to the output
	FormatAdded(path string) string

	// FormatSkipped formats a file the policy excluded
	FormatSkipped(path string, reason string) string

	// FormatFailed formats a file whose contents could not be read
	FormatFailed(path string, err error) string

	// FormatError formats a run-level error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatAdded formats an appended file with emoji and color
func (f *DefaultFileFormatter) FormatAdded(path string) string {
	return fmt.Sprintf("✨ %s %s", color.New(color.FgGreen).Sprint("Added"), path)
}

// FormatSkipped formats an excluded file with emoji and color
func (f *DefaultFileFormatter) FormatSkipped(path string, reason string) string {
	return fmt.Sprintf("⏭️  %s %s (%s)", color.New(color.FgYellow).Sprint("Skipped"), path, reason)
}

// FormatFailed formats an unreadable file with emoji and color
func (f *DefaultFileFormatter) FormatFailed(path string, err error) string {
	return fmt.Sprintf("❌ %s %s: %v", color.New(color.FgRed).Sprint("Failed"), path, err)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ %s: %v", color.New(color.FgRed).Sprint("Error"), err)
}
