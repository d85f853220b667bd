package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Skazzi00/dns-server/internal/zone"
)

var checkCmd = &cobra.Command{
	Use:   "check <records-file>",
	Short: "Load a record file and print the records it contains",
	Long: `Loads the record file the same way serve does and prints every
record, flagging entries whose value cannot be encoded. Useful for
validating a record file before deploying it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := zone.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("load records: %w", err)
		}

		records := append([]zone.Record(nil), store.Records()...)
		sort.Slice(records, func(i, j int) bool {
			a, b := records[i], records[j]
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			if a.Type != b.Type {
				return a.Type < b.Type
			}
			return a.Value < b.Value
		})

		bad := 0
		for _, r := range records {
			if _, err := r.Data(); err != nil {
				bad++
				fmt.Printf("  %s %s %s %s  INVALID: %v\n", r.Name, r.Class, r.Type, r.Value, err)
				continue
			}
			fmt.Printf("  %s %s %s %s\n", r.Name, r.Class, r.Type, r.Value)
		}

		fmt.Printf("%d records, %d invalid\n", len(records), bad)
		if bad > 0 {
			return fmt.Errorf("%d records cannot be encoded", bad)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
