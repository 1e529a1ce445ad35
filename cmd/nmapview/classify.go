package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nmapview/internal/portrange"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <port/proto>...",
	Short: "Print the IANA range band of each port id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, port := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", port, portrange.Classify(port))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
