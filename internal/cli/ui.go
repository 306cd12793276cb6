package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/engine"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for error messages.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// statusOut receives status lines. Commands that write their result to
// stdout switch it to stderr.
var statusOut io.Writer = os.Stdout

// statusToStderrFor moves status output off stdout when path means stdout.
func statusToStderrFor(path string) {
	if path == "" || path == "-" {
		statusOut = os.Stderr
	}
}

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconError.Render(iconError)+" "+StyleError.Render(msg))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(msg))
}

// printOutput prints the file a command wrote. Nothing is printed when the
// result went to stdout.
func printOutput(path string) {
	if path == "" || path == "-" {
		return
	}
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(statusOut, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// statsLine joins non-empty parts with dim separators and a cache marker.
func statsLine(parts []string, cached bool) string {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	if len(parts) > 0 {
		b.WriteString(StyleDim.Render(" · "))
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

// documentParts describes the contents of a document.
func documentParts(s doc.Stats) []string {
	var parts []string
	if s.TopLevel > 0 {
		parts = append(parts, fmt.Sprintf("%d frames", s.TopLevel))
	}
	if s.PaintStyles > 0 {
		parts = append(parts, fmt.Sprintf("%d color styles", s.PaintStyles))
	}
	if s.TextStyles > 0 {
		parts = append(parts, fmt.Sprintf("%d text styles", s.TextStyles))
	}
	if s.Pages > 0 {
		parts = append(parts, fmt.Sprintf("%d pages", s.Pages))
	}
	return parts
}

// printResult prints the outcome of a batch. res is nil when the document
// came from the cache.
func printResult(res *engine.Result, s doc.Stats, cached bool) {
	if res == nil {
		printSuccess("Document ready")
		fmt.Fprintln(statusOut, statsLine(documentParts(s), cached))
		return
	}

	printSuccess("%s finished in %s", res.Operation, res.Duration.Round(time.Millisecond))
	fmt.Fprintln(statusOut, statsLine(documentParts(s), cached))
	if !res.Fonts.Regular.IsSystem() {
		printDetail("fonts: %s, %s", res.Fonts.Regular, res.Fonts.Bold)
	}
	for _, le := range res.FontErrors {
		printWarning("%s", le.Error())
	}
	if n := res.Unregistered(); n > 0 {
		printDetail("%d screens drawn as placeholders (no composer for their design)", n)
	}
	for _, sr := range res.Screens {
		if sr.Err != nil && !sr.Err.Unregistered {
			printWarning("%s drawn as placeholder: %v", sr.Name, sr.Err.Err)
		}
	}
	if res.Canvas.W > 0 {
		printDetail("canvas: %.0f x %.0f", res.Canvas.W, res.Canvas.H)
	}
	for _, e := range res.FlowWarnings {
		printWarning("flow target not found: %s", e)
	}
}
