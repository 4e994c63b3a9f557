package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func checkCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <files...>",
		Short: "Check form definition files",
		Example: `  formkit check forms/signup.yaml
  formkit check forms/*.toml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit := g.kit(cmd)
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				def, err := form.LoadDefinition(path)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", path, err)
					failed++
					continue
				}
				problems := def.Check(kit)
				if len(problems) == 0 {
					if _, err := kit.Build(def); err != nil {
						problems = append(problems, err.Error())
					}
				}
				if len(problems) == 0 {
					fmt.Fprintf(out, "%s: ok\n", path)
					continue
				}
				failed++
				for _, p := range problems {
					fmt.Fprintf(out, "%s: %s\n", path, p)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files have problems", errFailed, failed, len(args))
			}
			return nil
		},
	}
}
