// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/reputation"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the author reputation cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reputation cache entry count and location",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := openCommandCache(cmd)
		fmt.Printf("cache: %s\n", c.Path())
		fmt.Printf("entries: %d\n", c.Len())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached author reputation entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := openCommandCache(cmd)
		n := c.Len()
		if err := c.Clear(); err != nil {
			return err
		}
		fmt.Printf("removed %d entries\n", n)
		return nil
	},
}

func openCommandCache(cmd *cobra.Command) *reputation.Cache {
	path, _ := cmd.Flags().GetString("cache-file")
	if path == "" {
		path = filepath.Join(cacheDir(), "hindex_cache.json")
	}
	return reputation.OpenCache(path, log)
}

func init() {
	cacheCmd.PersistentFlags().String("cache-file", "", "reputation cache file (default: ~/.cache/paper-radar/hindex_cache.json)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
