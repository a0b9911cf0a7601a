package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/provider/gemini"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/workflow"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/workflow/loop"
	"google.golang.org/genai"
)

const envGeminiAPIKey = "GEMINI_API_KEY"

const defaultSystemPrompt = `You are a coding assistant working inside a single project directory.
Use the provided tools to inspect the file tree, read and write files, search
file contents and run shell commands. All paths are relative to the project
root. Do not start development servers. Keep answers short.`

func newAgentCmd(a *app) *cobra.Command {
	var (
		model         string
		maxIterations int
		systemPrompt  string
	)
	cmd := &cobra.Command{
		Use:   "agent <prompt>",
		Short: "Let a Gemini model work on the project with the tools",
		Long: `Send a prompt to a Gemini model and run the tool calls it requests until it
answers. Requires $GEMINI_API_KEY.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := os.Getenv(envGeminiAPIKey)
			if apiKey == "" {
				return fmt.Errorf("%s environment variable is required", envGeminiAPIKey)
			}

			ctx := cmd.Context()
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				return fmt.Errorf("failed to create Gemini client: %w", err)
			}

			tm, err := a.tools.NewToolManager()
			if err != nil {
				return err
			}

			events := make(chan workflow.Event)
			done := make(chan struct{})
			go func() {
				defer close(done)
				printEvents(cmd.OutOrStdout(), cmd.ErrOrStderr(), events)
			}()

			p := gemini.NewProvider(client.Models, model, systemPrompt)
			l := loop.NewLoop(p, tm, events, maxIterations, a.logger)
			_, runErr := l.Run(ctx, strings.Join(args, " "))
			close(events)
			<-done
			return runErr
		},
	}
	cmd.Flags().StringVar(&model, "model", "gemini-2.5-flash", "Gemini model name")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 20, "maximum number of model turns")
	cmd.Flags().StringVar(&systemPrompt, "system", defaultSystemPrompt, "system instruction sent with every request")
	return cmd
}

// printEvents renders loop events until the channel is closed.
func printEvents(out, errOut io.Writer, events <-chan workflow.Event) {
	est := newStyles(errOut)
	for e := range events {
		switch ev := e.(type) {
		case workflow.TextEvent:
			fmt.Fprintln(out, ev.Text)
		case workflow.ToolStartEvent:
			fmt.Fprintf(errOut, "%s %s\n", est.title.Render("→ "+ev.ToolName), est.dim.Render(ev.Arguments))
		case workflow.ToolEndEvent:
			if ev.IsError {
				fmt.Fprintln(errOut, est.err.Render("  "+ev.Content))
			}
		case workflow.ThinkingEvent, workflow.DoneEvent:
		}
	}
}
