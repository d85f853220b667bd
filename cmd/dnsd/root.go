package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:          "dnsd",
	Short:        "Authoritative UDP DNS server for a static record set",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
