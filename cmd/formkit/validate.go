package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
)

type validateResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
	Values map[string]any    `json:"values"`
}

func validateCmd(g *globalFlags) *cobra.Command {
	var dataFile string
	var formatted bool

	cmd := &cobra.Command{
		Use:   "validate -d <data> <definition>",
		Short: "Validate a data file against a form definition",
		Long: `Validate loads the definition, assigns every key of the data file
(a JSON or YAML object) to the field of the same name and prints the result
as JSON. The command fails when any field is invalid.`,
		Example: `  formkit validate -d signup.json forms/signup.yaml
  formkit validate --lang ja -d signup.yaml forms/signup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit := g.kit(cmd)

			def, err := form.LoadDefinition(args[0])
			if err != nil {
				return err
			}
			f, err := kit.Build(def)
			if err != nil {
				return err
			}

			data, err := readData(dataFile)
			if err != nil {
				return err
			}
			if err := f.SetValues(data); err != nil {
				return err
			}

			ctx := i18n.WithLocale(cmd.Context(), g.lang)
			err = f.ValidateContext(ctx)
			if err != nil && !form.IsValidationError(err) {
				return err
			}

			res := validateResult{Valid: err == nil, Values: f.Values()}
			if formatted {
				res.Errors = f.ErrorMessages()
			} else {
				res.Errors = f.Errors().Messages()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.Valid {
				return fmt.Errorf("%w: %d invalid fields", errFailed, len(res.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "JSON or YAML file with field values")
	cmd.Flags().BoolVar(&formatted, "formatted", false, "Apply the form's error format to messages")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

// readData decodes a JSON or YAML object. JSON numbers keep their literal
// form so "08" style input reaches the rules unchanged.
func readData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	data := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse data: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil {
			return nil, fmt.Errorf("parse data: %w", err)
		}
	}
	return data, nil
}
