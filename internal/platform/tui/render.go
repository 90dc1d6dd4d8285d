package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reaction-x/internal/board"
	"github.com/vovakirdan/reaction-x/internal/config"
	"github.com/vovakirdan/reaction-x/internal/core"
)

// Panel styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ledOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	oledStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Background(lipgloss.Color("0")).
			Foreground(lipgloss.Color("117")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	ledOn  = "●"
	ledOff = "○"
)

// RenderStrip draws one swatch per pixel. Lit pixels use the requested
// color at full strength so dim strips stay readable.
func RenderStrip(s *board.Strip) string {
	lit := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color().Hex()))

	pixels := s.Pixels()
	swatches := make([]string, len(pixels))
	for i, p := range pixels {
		if p.IsOff() {
			swatches[i] = ledOffStyle.Render(ledOff)
		} else {
			swatches[i] = lit.Render(ledOn)
		}
	}
	return strings.Join(swatches, " ")
}

// RenderDisplay draws the character grid inside a panel frame.
func RenderDisplay(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range s.Height() {
		rows[y] = s.Row(y)
	}
	return oledStyle.Render(strings.Join(rows, "\n"))
}

// renderLegend lists the wiring the panel stands in for.
func renderLegend(cfg config.BoardConfig) string {
	parts := make([]string, 0, len(board.AllButtons))
	for _, b := range board.AllButtons {
		parts = append(parts, fmt.Sprintf("%s %s", b, cfg.Pins.Pin(b)))
	}
	return labelStyle.Render("pins: " + strings.Join(parts, "  "))
}

// RenderPanel renders the whole front panel for m.
func RenderPanel(m Model) string {
	cfg := m.device.Board
	snap := m.ctrl.Snapshot()

	var b strings.Builder

	title := "REACTION X"
	if m.title != "" {
		title += "  " + m.title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("LEDs %s  %d px @ %d%%",
		cfg.Pins.LEDs, m.strip.Len(), int(m.strip.Brightness()*100+0.5))))
	b.WriteString("\n")
	b.WriteString(RenderStrip(m.strip))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("SSD1306 %dx%d @ 0x%02X",
		cfg.Display.Width, cfg.Display.Height, cfg.Display.Address)))
	b.WriteString("\n")
	b.WriteString(RenderDisplay(m.display.Screen()))
	b.WriteString("\n")

	status := fmt.Sprintf("state: %s  rounds: %d", snap.State, snap.Rounds)
	if snap.Paused {
		status += "  (busy)"
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(renderLegend(cfg))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}
