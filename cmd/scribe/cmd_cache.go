package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberworks/scribe/cache"
	"github.com/emberworks/scribe/codec"
)

var (
	flagDB        string
	flagSource    string
	flagHash      string
	flagOlderThan time.Duration
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the compiled-object cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print cache entry count and size",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(flagDB)
		if err != nil {
			return err
		}
		defer store.Close()
		st, err := store.Stats(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d entries, %d bytes\n", st.Entries, st.TotalBytes)
		return nil
	},
}

var cachePutCmd = &cobra.Command{
	Use:   "put --source path/to/script <file>",
	Short: "Store a compiled object file under its source path",
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
		hash := flagHash
		if hash == "" {
			// No source text available; hash the object bytes instead.
			sum := sha256.Sum256(data)
			hash = hex.EncodeToString(sum[:])
		}
		store, err := cache.Open(flagDB)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Put(context.Background(), flagSource, hash, tree)
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove cache entries older than a duration",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(flagDB)
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := store.Prune(context.Background(), time.Now().Add(-flagOlderThan))
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d entries\n", n)
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&flagDB, "db", "scribe-cache.db", "cache database file")
	cachePutCmd.Flags().StringVar(&flagSource, "source", "", "source script path the object was compiled from (required)")
	cachePutCmd.Flags().StringVar(&flagHash, "hash", "", "content hash of the source text")
	cachePutCmd.MarkFlagRequired("source")
	cachePruneCmd.Flags().DurationVar(&flagOlderThan, "older-than", 30*24*time.Hour, "age cutoff")
	cacheCmd.AddCommand(cacheStatsCmd, cachePutCmd, cachePruneCmd)
}
