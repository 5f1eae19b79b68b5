package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/emberworks/scribe/codec"
)

var (
	flagCompress bool
	flagNoCRC    bool
	flagOut      string
)

var packCmd = &cobra.Command{
	Use:   "pack [-o out] <file>",
	Short: "Re-encode an object file with new container options",
	Long: "Decode an object file and write it back with the requested\n" +
		"compression and checksum settings. Useful for normalizing files\n" +
		"produced by older compiler builds.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		tree, err := codec.Decode(data)
		if err != nil {
			return err
		}
		out, err := codec.Encode(tree, codec.EncodeOptions{
			Compress: flagCompress,
			Checksum: !flagNoCRC,
		})
		if err != nil {
			return err
		}
		dst := flagOut
		if dst == "" {
			dst = args[0]
		}
		return os.WriteFile(dst, out, 0o644)
	},
}

func init() {
	packCmd.Flags().BoolVar(&flagCompress, "compress", false, "zstd-compress the payload")
	packCmd.Flags().BoolVar(&flagNoCRC, "no-crc", false, "omit the payload checksum")
	packCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output path (default: overwrite input)")
}
