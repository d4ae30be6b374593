package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of snpedia-23andme",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("snpedia-23andme %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
