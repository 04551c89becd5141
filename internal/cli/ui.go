package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(1, 2).
		Width(80)

	cardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#10B981")).
		Padding(1, 2).
		Width(80)

	emptyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		Padding(1, 2)

	buyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	sellStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	gainStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	lossStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444"))

	successStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	infoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6"))

	loadingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B"))

	warnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B"))
)

// Renderer writes styled dashboard panels and status lines. All terminal
// output of the client flows through it so tests can capture it.
type Renderer struct {
	out     io.Writer
	noClear bool
	loading bool
}

func NewRenderer(out io.Writer, noClear bool) *Renderer {
	return &Renderer{out: out, noClear: noClear}
}

// ClearScreen clears the terminal screen.
func (r *Renderer) ClearScreen() {
	if r.noClear {
		return
	}
	fmt.Fprint(r.out, "\033[2J\033[H")
}

// ShowLoading prints the in-flight indicator for a tab load. While a load
// is already showing, further calls stay silent so rapid re-triggers do
// not stack indicator lines.
func (r *Renderer) ShowLoading(what string) {
	if r.loading {
		return
	}
	r.loading = true
	fmt.Fprintln(r.out, loadingStyle.Render(fmt.Sprintf("⏳ Loading %s...", what)))
}

// HideLoading ends the in-flight indicator.
func (r *Renderer) HideLoading() {
	r.loading = false
}

// Success shows a success toast.
func (r *Renderer) Success(message string) {
	fmt.Fprintln(r.out, successStyle.Render("✅ "+message))
}

// Error shows an error toast.
func (r *Renderer) Error(message string) {
	fmt.Fprintln(r.out, errorStyle.Render("❌ "+message))
}

// Info shows an informational toast.
func (r *Renderer) Info(message string) {
	fmt.Fprintln(r.out, infoStyle.Render("ℹ️  "+message))
}

// Warn shows a warning toast.
func (r *Renderer) Warn(message string) {
	fmt.Fprintln(r.out, warnStyle.Render("⚠️  "+message))
}

// Banner shows the welcome banner and command help.
func (r *Renderer) Banner() {
	fmt.Fprintln(r.out, "╔════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(r.out, "║                     📈 TradeDeck Dashboard                     ║")
	fmt.Fprintln(r.out, "║           Trade approval & portfolio terminal client           ║")
	fmt.Fprintln(r.out, "╚════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "💡 Commands:")
	fmt.Fprintln(r.out, "   pending | positions | orders | reports | options  - switch tab")
	fmt.Fprintln(r.out, "   approve <id>          - approve a pending trade card")
	fmt.Fprintln(r.out, "   reject <id>           - reject a pending trade card")
	fmt.Fprintln(r.out, "   explain <id>          - show guardrail details for a card")
	fmt.Fprintln(r.out, "   generate              - run signal generation")
	fmt.Fprintln(r.out, "   chain                 - load an option chain")
	fmt.Fprintln(r.out, "   refresh               - reload the active tab")
	fmt.Fprintln(r.out, "   login                 - show the broker login URL")
	fmt.Fprintln(r.out, "   exit                  - quit")
	fmt.Fprintln(r.out)
}

// sanitize strips control characters from server-supplied free text before
// it hits the terminal. Escape sequences embedded in a symbol or evidence
// string must never reach the emulator.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
