package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isaacphi/realty/internal/agent"
	"github.com/isaacphi/realty/internal/appState"
	"github.com/isaacphi/realty/internal/ui/cli/style"
)

var ChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long:  `Ask questions about Melbourne property sales one at a time. Type /reset to start over and exit to leave.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appState.Get()
		a, err := app.NewAgent()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), a)
	},
}

// Asker is the part of the agent the chat loop drives.
type Asker interface {
	Ask(ctx context.Context, input string) (string, error)
	Reset()
}

// Run reads questions from in until exit, EOF or ctx is cancelled. A failed
// question prints an apology and the session continues.
func Run(ctx context.Context, in io.Reader, out io.Writer, a Asker) error {
	scanner := bufio.NewScanner(in)
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	fmt.Fprintln(out, style.Title.Render("Melbourne property assistant"))
	fmt.Fprintln(out, style.Muted.Render("Ask about an address or a suburb. /reset clears the conversation, exit quits."))

	for {
		fmt.Fprint(out, style.Prompt.Render("you> "))

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			line = strings.TrimSpace(l)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit", "/exit", "/quit":
			return nil
		case "/reset":
			a.Reset()
			fmt.Fprintln(out, style.Status.Render("Conversation cleared."))
			continue
		}

		answer, err := a.Ask(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(out)
				return nil
			}
			fmt.Fprintln(out, style.Error.Render(agent.UserMessage(err)))
			continue
		}
		fmt.Fprintln(out, style.Answer.Render(answer))
	}
}
