package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/audit"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/env"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorOrange = lipgloss.Color("208") // Orange - high severity
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
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

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
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

	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleUnsupported = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)

	severityStyles = map[audit.Severity]lipgloss.Style{
		audit.SeverityCritical: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		audit.SeverityHigh:     lipgloss.NewStyle().Foreground(colorOrange),
		audit.SeverityModerate: lipgloss.NewStyle().Foreground(colorYellow),
		audit.SeverityLow:      lipgloss.NewStyle().Foreground(colorGray),
	}
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
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// renderCommands renders a command table, one row per operation.
func renderCommands(t env.CommandTable) string {
	rows := make([][]string, 0, len(env.Operations))
	for _, op := range env.Operations {
		cmd, _ := t.Get(op)
		rows = append(rows, []string{string(op), commandString(cmd)})
	}
	return newTable("Operation", "Command").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 1 && rows[row][1] == "unsupported" {
				return styleUnsupported
			}
			if col == 1 {
				return styleCommand
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func commandString(c env.Command) string {
	if !c.Supported() {
		return "unsupported"
	}
	argv, _ := c.Argv()
	return strings.Join(argv, " ")
}

// renderVulnerabilities renders the records of a report, colored by severity.
func renderVulnerabilities(r *audit.Report) string {
	rows := make([][]string, 0, len(r.Vulnerable))
	for _, v := range r.Vulnerable {
		sev := string(v.Severity)
		if sev == "" {
			sev = "unknown"
		}
		rows = append(rows, []string{v.Name, sev, v.VulnerableVersions, v.AdvisoryURL})
	}
	return newTable("Package", "Severity", "Vulnerable", "Advisory").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			switch col {
			case 1:
				if s, ok := severityStyles[r.Vulnerable[row].Severity]; ok {
					return s
				}
				return StyleDim
			case 3:
				return StyleLink
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// severityLabel renders sev in its color.
func severityLabel(sev audit.Severity) string {
	if sev == audit.SeverityNone {
		return StyleSuccess.Render("none")
	}
	if s, ok := severityStyles[sev]; ok {
		return s.Render(string(sev))
	}
	return string(sev)
}
