// Package main is the entry point for the snpedia-23andme CLI, which looks
// up the SNPs in a 23andMe raw-data export on SNPedia and prints their
// genotypes sorted by magnitude.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the snpedia-23andme CLI.
var rootCmd = &cobra.Command{
	Use:   "snpedia-23andme",
	Short: "Health information from 23andMe raw data via SNPedia",
	Long: `snpedia-23andme reads a 23andMe raw-data export, downloads the SNPedia page
for each SNP the wiki knows about, and prints the genotypes sorted by
SNPedia's magnitude scale. Fetched pages are archived locally so repeated
runs put no extra load on SNPedia.

The pipeline stages are subcommands: report runs the whole thing, fetch
prefetches pages into the archive, and cache inspects the archive.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./snpedia-23andme.yaml or ~/.config/snpedia-23andme/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("snpedia-23andme")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "snpedia-23andme"))
		}
	}

	viper.SetEnvPrefix("SNPEDIA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
