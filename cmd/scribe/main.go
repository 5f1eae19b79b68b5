// scribe - script object file tool
//
// Usage:
//
//	scribe print [--detail objects|properties|arguments] <file>
//	scribe validate --schema schema.yaml [--report summary|errors|both] <file>
//	scribe pack [--compress] [--no-crc] [-o out] <file>
//	scribe cache stats|put|prune ... --db cache.db
//	scribe version
//
// Files are binary script object files produced by the engine's script
// compiler (see the codec package).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emberworks/scribe/internal/log"
)

const version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Inspect, validate and cache compiled script object files",
}

func main() {
	log.Init(log.FromEnv())

	rootCmd.AddCommand(printCmd, validateCmd, packCmd, cacheCmd, versionCmd)
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "scribe:", err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scribe %s\n", version)
	},
}
