package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emberworks/scribe/codec"
	"github.com/emberworks/scribe/script"
)

var flagDetail string

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Decode an object file and print its tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		tree, err := codec.Decode(data)
		if err != nil {
			return err
		}

		opts := script.DefaultPrintOptions()
		switch flagDetail {
		case "objects":
			opts.Detail = script.PrintObjects
		case "properties":
			opts.Detail = script.PrintProperties
		case "arguments", "":
			opts.Detail = script.PrintArguments
		default:
			return fmt.Errorf("unknown detail level %q", flagDetail)
		}
		return tree.WritePrint(os.Stdout, opts)
	},
}

func init() {
	printCmd.Flags().StringVar(&flagDetail, "detail", "arguments",
		"detail level: objects, properties or arguments")
}
