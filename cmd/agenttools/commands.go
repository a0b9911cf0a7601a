package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wanyingng/ai-dev-tools-zoomcamp-2025/internal/provider/gemini"
)

func newReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read <filepath>",
		Short: "Print the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := a.tools.ReadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	}
}

func newWriteCmd(a *app) *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "write <filepath> [content]",
		Short: "Replace a file's content, creating parent directories as needed",
		Long: `Replace a file's content, creating it and any missing parent directories.
When content is omitted it is read from standard input.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content string
			if len(args) == 2 {
				content = args[1]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				content = string(data)
			}

			resp, err := a.tools.WriteFile(cmd.Context(), args[0], content)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyles(out)
			verb := "updated"
			if resp.Created {
				verb = "created"
			}
			fmt.Fprintf(out, "%s %s %s\n", verb, st.path.Render(resp.Path),
				st.dim.Render(fmt.Sprintf("(%d bytes, +%d -%d)", resp.BytesWritten, resp.AddedLines, resp.RemovedLines)))
			if showDiff && resp.Diff != "" {
				printDiff(out, st, resp.Diff)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff of the change")
	return cmd
}

func printDiff(w io.Writer, st styles, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = st.title.Render(text)
		case strings.HasPrefix(text, "+"):
			text = st.added.Render(text)
		case strings.HasPrefix(text, "-"):
			text = st.removed.Render(text)
		case strings.HasPrefix(text, "@@"):
			text = st.dim.Render(text)
		}
		fmt.Fprintln(w, text)
	}
}

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [root_dir]",
		Short: "List every file and directory below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir := ""
			if len(args) == 1 {
				rootDir = args[0]
			}
			entries, err := a.tools.SeeFileTree(cmd.Context(), rootDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintln(out, e)
			}
			return nil
		},
	}
}

func newExecCmd(a *app) *cobra.Command {
	var cwd string
	cmd := &cobra.Command{
		Use:   "exec <command>",
		Short: "Run a shell command in the project",
		Long: `Run a shell command in the project root or --cwd. The command's stdout and
stderr are forwarded and its exit code becomes the exit code of agenttools.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.tools.ExecuteBashCommand(cmd.Context(), args[0], cwd)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(cmd.OutOrStdout(), res.Stdout); err != nil {
				return err
			}
			if _, err := io.WriteString(cmd.ErrOrStderr(), res.Stderr); err != nil {
				return err
			}
			if res.Truncated {
				fmt.Fprintln(cmd.ErrOrStderr(), newStyles(cmd.ErrOrStderr()).dim.Render("[output truncated]"))
			}
			if res.ExitCode != 0 {
				return &exitCodeError{code: normalizeExitCode(res.ExitCode)}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cwd, "cwd", "", "working directory relative to the project root")
	return cmd
}

// normalizeExitCode maps a signal exit (negative) to the shell convention 128+n.
func normalizeExitCode(code int) int {
	if code < 0 {
		return 128 - code
	}
	return code
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <pattern> [root_dir]",
		Short: "Find lines containing a literal pattern",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir := ""
			if len(args) == 2 {
				rootDir = args[1]
			}
			resp, err := a.tools.SearchInFiles(cmd.Context(), args[0], rootDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyles(out)
			for _, m := range resp.Matches {
				fmt.Fprintf(out, "%s:%s: %s\n", st.path.Render(m.Path), st.lineNum.Render(fmt.Sprint(m.LineNumber)), m.Line)
			}
			if resp.SkippedFiles > 0 {
				errOut := cmd.ErrOrStderr()
				fmt.Fprintln(errOut, newStyles(errOut).dim.Render(fmt.Sprintf("%d file(s) skipped", resp.SkippedFiles)))
			}
			return nil
		},
	}
}

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-args]",
		Short: "Dispatch a tool by name with JSON arguments, as a model would",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := a.tools.NewToolManager()
			if err != nil {
				return err
			}

			var raw json.RawMessage
			if len(args) == 2 {
				raw = json.RawMessage(args[1])
			}
			out, err := tm.Call(cmd.Context(), args[0], raw)
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, out, "", "  "); err != nil {
				return err
			}
			pretty.WriteByte('\n')
			_, err = pretty.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func newToolsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the available tools and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := a.tools.NewToolManager()
			if err != nil {
				return err
			}
			decls := tm.Declarations()
			out := cmd.OutOrStdout()

			switch format {
			case "text":
				st := newStyles(out)
				for _, d := range decls {
					fmt.Fprintln(out, st.title.Render(d.Name))
					fmt.Fprintf(out, "  %s\n", d.Description)
					if d.Parameters == nil {
						continue
					}
					required := make(map[string]bool, len(d.Parameters.Required))
					for _, r := range d.Parameters.Required {
						required[r] = true
					}
					for _, name := range sortedKeys(d.Parameters.Properties) {
						p := d.Parameters.Properties[name]
						marker := ""
						if required[name] {
							marker = " (required)"
						}
						fmt.Fprintf(out, "    %s %s%s %s\n", st.path.Render(name), st.dim.Render(string(p.Type)), marker, p.Description)
					}
				}
				return nil
			case "json":
				return writeJSON(out, decls)
			case "gemini":
				return writeJSON(out, gemini.ToTools(decls))
			default:
				return fmt.Errorf("unknown format %q (want text, json or gemini)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or gemini")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
