package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emberworks/scribe/codec"
	"github.com/emberworks/scribe/internal/log"
	"github.com/emberworks/scribe/schemafile"
	"github.com/emberworks/scribe/script"
)

var (
	flagSchema string
	flagReport string
)

var validateCmd = &cobra.Command{
	Use:   "validate --schema schema.yaml <file>",
	Short: "Validate an object file against a YAML schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := schemafile.LoadFile(flagSchema)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		tree, err := codec.Decode(data)
		if err != nil {
			return err
		}

		var opts script.ReportOptions
		switch flagReport {
		case "summary":
			opts = script.ReportSummary
		case "errors":
			opts = script.ReportErrors
		case "both", "":
			opts = script.ReportSummaryAndErrors
		default:
			return fmt.Errorf("unknown report mode %q", flagReport)
		}

		v := script.NewValidator(root)
		ok := v.Validate(tree)
		log.L().Debug("validated", "file", args[0], "errors", len(v.Errors()), "elapsed", v.Elapsed())
		if err := v.WriteReport(os.Stdout, opts); err != nil {
			return err
		}
		if !ok {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&flagSchema, "schema", "", "YAML schema file (required)")
	validateCmd.Flags().StringVar(&flagReport, "report", "both",
		"report mode: summary, errors or both")
	validateCmd.MarkFlagRequired("schema")
}
