// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-radar/internal/archive"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List and inspect archived analysis runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No archived runs.")
			return nil
		}

		fmt.Printf("%-36s  %-20s  %-10s  %-6s  %-6s  %-8s  %s\n",
			"ID", "Created", "Base", "Months", "Papers", "Errors", "Fields")
		fmt.Println(strings.Repeat("-", 110))
		for _, r := range runs {
			fields := strings.Join(r.Fields, ", ")
			if len(fields) > 30 {
				fields = fields[:27] + "..."
			}
			fmt.Printf("%-36s  %-20s  %-10s  %-6d  %-6d  %-8d  %s\n",
				r.ID,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
				r.BaseDate.Format("2006-01-02"),
				r.MonthsBack, r.PapersProcessed, r.Errors, fields)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived run's report (a unique ID prefix works)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		doc, err := store.ShowRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json", "":
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, doc, "", "  "); err != nil {
				return fmt.Errorf("formatting report: %w", err)
			}
			pretty.WriteByte('\n')
			_, err = os.Stdout.Write(pretty.Bytes())
			return err
		case "yaml":
			var decoded map[string]any
			if err := json.Unmarshal(doc, &decoded); err != nil {
				return fmt.Errorf("decoding report: %w", err)
			}
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(decoded)
		default:
			return fmt.Errorf("unsupported format %q: use json or yaml", format)
		}
	},
}

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	path, _ := cmd.Flags().GetString("archive-db")
	if path == "" {
		path = filepath.Join(cacheDir(), "runs.db")
	}
	return archive.Open(path)
}

func init() {
	runsCmd.PersistentFlags().String("archive-db", "", "run archive database (default: ~/.cache/paper-radar/runs.db)")
	runsShowCmd.Flags().String("format", "json", "output format: json or yaml")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
