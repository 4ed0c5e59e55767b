package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

const banner = "Concierge"

// Session is a blocking read loop over an input stream, dispatching each
// line through the router and rendering the result.
type Session struct {
	Router *Router
	In     io.Reader
	Out    io.Writer
}

// Run reads lines until /quit, EOF, or context cancellation. A read error
// other than EOF is returned; a clean exit is nil.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.Out, bannerStyle.Render(banner))
	fmt.Fprintln(s.Out, hintStyle.Render("Type /help for commands, /quit to exit."))

	scanner := bufio.NewScanner(s.In)
	for {
		fmt.Fprint(s.Out, promptStyle.Render("> "))
		if ctx.Err() != nil {
			fmt.Fprintln(s.Out)
			return nil
		}
		if !scanner.Scan() {
			fmt.Fprintln(s.Out)
			return scanner.Err()
		}
		output, quit := s.Router.Dispatch(ctx, scanner.Text())
		if output != "" {
			fmt.Fprintln(s.Out, output)
		}
		if quit {
			return nil
		}
	}
}
