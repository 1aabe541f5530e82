// Package banner renders the connection instructions printed on startup.
package banner

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 50

var rule = strings.Repeat("=", ruleWidth)

// Info carries the addresses shown to the user.
type Info struct {
	// Host is the LAN address (or "localhost" when it could not be resolved).
	Host string
	Port int
}

// MobileURL is the address other devices on the network should open.
func (i Info) MobileURL() string {
	return fmt.Sprintf("http://%s:%d/", i.Host, i.Port)
}

// LocalURL is the loopback address used on this machine.
func (i Info) LocalURL() string {
	return fmt.Sprintf("http://localhost:%d/", i.Port)
}

type styles struct {
	rule  lipgloss.Style
	title lipgloss.Style
	url   lipgloss.Style
}

func plainStyles() styles {
	return styles{rule: lipgloss.NewStyle(), title: lipgloss.NewStyle(), url: lipgloss.NewStyle()}
}

func colorStyles(r *lipgloss.Renderer) styles {
	return styles{
		rule:  r.NewStyle().Foreground(lipgloss.Color("244")),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		url:   r.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
	}
}

// Render returns the banner as plain text.
func Render(info Info) string {
	return render(info, plainStyles())
}

// Print writes the banner to w. With color enabled, accents are applied
// only when w is a terminal that supports them; the text is unchanged.
func Print(w io.Writer, info Info, color bool) error {
	s := plainStyles()
	if color {
		s = colorStyles(lipgloss.NewRenderer(w))
	}
	_, err := io.WriteString(w, render(info, s))
	return err
}

func render(info Info, s styles) string {
	var sb strings.Builder
	line := func(text string) {
		sb.WriteString(text)
		sb.WriteByte('\n')
	}

	line(s.rule.Render(rule))
	line(s.title.Render("🌾 Alice Pisa Project Server Started!"))
	line(s.rule.Render(rule))
	line("📱 Mobile Access: " + s.url.Render(info.MobileURL()))
	line("💻 Computer Access: " + s.url.Render(info.LocalURL()))
	line(s.rule.Render(rule))
	line("📋 Instructions:")
	line("1. Make sure your phone and computer are on same WiFi")
	line("2. Open mobile browser")
	line("3. Go to: " + s.url.Render(info.MobileURL()))
	line("4. Choose Alice Pisa Main App!")
	line(s.rule.Render(rule))
	line("Press Ctrl+C to stop server")
	line(s.rule.Render(rule))

	return sb.String()
}
