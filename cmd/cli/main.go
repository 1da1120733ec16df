package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/caseclosed/cmd/cli/casefile"
	"github.com/spf13/cobra"
)

func init() {
	// The .env file is optional; the commands read API keys from the environment.
	_ = godotenv.Load()
	rootCmd.AddGroup(casefile.Group)
	rootCmd.AddCommand(casefile.Generate)
	rootCmd.AddCommand(casefile.Play)
}

var rootCmd = &cobra.Command{
	Use:  "caseclosed-cli",
	Long: `Command line utilities for Case Closed? https://github.com/myrjola/caseclosed`,
	Run: func(cmd *cobra.Command, args []string) {
		// Do Stuff Here
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
