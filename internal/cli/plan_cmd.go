package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Read and edit a project's strategy and markdown plans",
	}

	strategy := &cobra.Command{
		Use:   "strategy",
		Short: "The project's strategy plan (versioned by the server)",
	}
	strategy.AddCommand(
		newPlanShowCmd(app, "Strategy", func(p domain.Project) string { return p.StrategyPlan }, formatter.FormatPlanText),
		newPlanSetCmd(app, "Strategy", app.saveStrategy),
		newStrategyHistoryCmd(app),
	)

	markdown := &cobra.Command{
		Use:   "markdown",
		Short: "The project's free-form markdown plan",
	}
	markdown.AddCommand(
		newPlanShowCmd(app, "Markdown plan", func(p domain.Project) string { return p.MarkdownPlan }, renderMarkdownPlan),
		newPlanSetCmd(app, "Markdown plan", app.saveMarkdown),
	)

	cmd.AddCommand(strategy, markdown)
	return cmd
}

func (a *App) saveStrategy(cmd *cobra.Command, text string) error {
	return a.Controller.SaveStrategy(cmd.Context(), text)
}

func (a *App) saveMarkdown(cmd *cobra.Command, text string) error {
	return a.Controller.SaveMarkdown(cmd.Context(), text)
}

// markdownWidth is the wrap width for markdown printed by the CLI.
const markdownWidth = 76

func renderMarkdownPlan(title, text string) string {
	return formatter.FormatMarkdownPlan(title, text, markdownWidth)
}

func newPlanShowCmd(app *App, title string, text func(domain.Project) string, render func(title, text string) string) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show PROJECT",
		Short: "Print the " + title,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, app, args[0])
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), text(p))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), render(title+" · "+p.Name, text(p)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the text without decoration")
	return cmd
}

func newPlanSetCmd(app *App, title string, save func(*cobra.Command, string) error) *cobra.Command {
	var file, text string

	cmd := &cobra.Command{
		Use:   "set PROJECT",
		Short: "Replace the " + title + " from --text, --file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPlanText(cmd, text, file)
			if err != nil {
				return err
			}
			p, err := openProject(cmd, app, args[0])
			if err != nil {
				return err
			}

			before := p
			if err := save(cmd, body); err != nil {
				return bannerError(app, err)
			}

			after, _ := appstate.SelectedProject(app.Controller.State())
			if after.StrategyPlan == before.StrategyPlan && after.MarkdownPlan == before.MarkdownPlan {
				fmt.Fprintf(cmd.OutOrStdout(), "%s unchanged\n", title)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated for %s\n", title, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the new text from a file ('-' for stdin)")
	return cmd
}

func readPlanText(cmd *cobra.Command, text, file string) (string, error) {
	if cmd.Flags().Changed("text") {
		if file != "" {
			return "", errors.New("use either --text or --file, not both")
		}
		return text, nil
	}
	if file != "" && file != "-" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

func newStrategyHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history PROJECT",
		Short: "Show earlier versions of the strategy plan, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, app, args[0])
			if err != nil {
				return err
			}
			entries, err := app.Controller.LoadStrategyHistory(cmd.Context())
			if err != nil {
				return bannerError(app, err)
			}
			app.Controller.Dispatch(appstate.ModalClosed{})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Strategy history · "+p.Name))
			fmt.Fprint(out, formatter.FormatStrategyHistory(entries, app.now()))
			return nil
		},
	}
}
