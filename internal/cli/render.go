package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/aescanero/dago-node-preview/internal/eval/cel"
	"github.com/aescanero/dago-node-preview/internal/preview"
	"github.com/aescanero/dago-node-preview/internal/substitute"
	"github.com/aescanero/dago-node-preview/internal/variables"
	"github.com/spf13/cobra"
)

// ErrRowsInvalid is returned when the render gate stays closed
var ErrRowsInvalid = errors.New("variable rows are not valid")

var (
	varsFile   string
	varFlags   []string
	gate       string
	force      bool
	shell      bool
	background string
	outputPath string
)

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(placeholdersCmd)

	for _, cmd := range []*cobra.Command{renderCmd, checkCmd} {
		cmd.Flags().StringVarP(&varsFile, "vars", "f", "", "YAML file with variables")
		cmd.Flags().StringArrayVar(&varFlags, "var", nil, "variable as key=value (repeatable)")
	}

	renderCmd.Flags().StringVar(&gate, "gate", cel.DefaultGate, "CEL render gate over the validation report")
	renderCmd.Flags().BoolVar(&force, "force", false, "render even when variable rows are invalid")
	renderCmd.Flags().BoolVar(&shell, "shell", false, "wrap output in a preview document")
	renderCmd.Flags().StringVar(&background, "background", "dark", "preview background: dark or light")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write output to file instead of stdout")
}

var renderCmd = &cobra.Command{
	Use:   "render TEMPLATE",
	Short: "Render a template",
	Long:  "Render TEMPLATE (a file, or - for stdin) with variables from --vars and --var.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := readInput(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		rows, err := collectRows()
		if err != nil {
			return err
		}

		svc, err := preview.NewService(preview.Options{Gate: gate}, logger)
		if err != nil {
			return err
		}

		req := &preview.Request{
			Template:   tmpl,
			Rows:       rows,
			Shell:      shell,
			Background: background,
		}

		var result *preview.Result
		if force {
			result, err = svc.Render(req)
		} else {
			result, err = svc.Preview(context.Background(), req)
		}
		if err != nil {
			return err
		}

		if !result.Rendered {
			writeReport(cmd.ErrOrStderr(), result.Report)
			return ErrRowsInvalid
		}

		out := result.Output
		if shell {
			out = result.Document
		}

		for _, key := range result.Unresolved {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: placeholder %q has no value\n", key)
		}

		if outputPath != "" {
			if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}
			return nil
		}

		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate variable keys",
	Long:  "Validate variables from --vars and --var and report malformed and duplicated keys.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := collectRows()
		if err != nil {
			return err
		}

		report := variables.Check(rows)
		writeReport(cmd.OutOrStdout(), report)
		if !report.Valid {
			return ErrRowsInvalid
		}
		return nil
	},
}

var placeholdersCmd = &cobra.Command{
	Use:   "placeholders TEMPLATE",
	Short: "List placeholder keys used by a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := readInput(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		for _, key := range substitute.Placeholders(tmpl) {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		return nil
	},
}

// collectRows merges rows from the vars file and --var flags, file first
func collectRows() ([]variables.Row, error) {
	var rows []variables.Row
	if varsFile != "" {
		fileRows, err := LoadRowsFile(varsFile)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}

	flagRows, err := ParseVarFlags(varFlags)
	if err != nil {
		return nil, err
	}
	return append(rows, flagRows...), nil
}

func writeReport(w io.Writer, report variables.Report) {
	writer := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ROW\tKEY\tSTATUS\tDETAIL")
	for _, status := range report.Rows {
		detail := "-"
		if err := status.Err(); err != nil {
			detail = err.Error()
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", status.Index+1, status.Key, status.Problem, detail)
	}
	_ = writer.Flush()

	if len(report.Duplicates) > 0 {
		fmt.Fprintf(w, "duplicate keys: %v\n", report.Duplicates)
	}
}
