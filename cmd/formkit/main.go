// Command formkit checks form definition files and validates data against
// them from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errFailed marks a run that reported problems; the details are already
// printed.
var errFailed = errors.New("failed")

func main() {
	if err := fang.Execute(context.Background(), rootCmd()); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	lang    string
	strict  bool
	escape  string
	verbose bool
}

func (g *globalFlags) kit(cmd *cobra.Command) *form.Kit {
	opts := []form.KitOption{
		form.WithLanguage(g.lang),
		form.WithStrict(g.strict),
		form.WithEscape(g.escape),
	}
	if g.verbose {
		opts = append(opts, form.WithLogger(logger.New(
			logger.WithFormat(logger.FormatText),
			logger.WithOutput(cmd.ErrOrStderr()),
		)))
	}
	return form.NewKit(opts...)
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "formkit",
		Short: "Check form definitions and validate data against them",
		Long: `formkit loads form definitions written in YAML, JSON or TOML.

  check     report unknown rules, unknown filters and malformed fields
  validate  run a definition's rules over a data file
  rules     list the available rules
  filters   list the available filters`,
		Version:       fmt.Sprintf("%s (%s) %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("formkit %s (%s) %s\n", version, commit, date))

	cmd.PersistentFlags().StringVar(&g.lang, "lang", "en", "Message language")
	cmd.PersistentFlags().BoolVar(&g.strict, "strict", false, "Warn about configuration mistakes")
	cmd.PersistentFlags().StringVar(&g.escape, "escape", `\`, "Escape character used in rule and filter lists")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log warnings to stderr")

	cmd.AddCommand(checkCmd(g))
	cmd.AddCommand(validateCmd(g))
	cmd.AddCommand(rulesCmd(g))
	cmd.AddCommand(filtersCmd(g))

	return cmd
}

func rulesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range g.kit(cmd).Rules().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func filtersCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List available filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range g.kit(cmd).Filters().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
