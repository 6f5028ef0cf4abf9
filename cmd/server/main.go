// Package main is the entry point for the photo hunt server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "photohunt-server",
	Short: "Photo hunt game server",
	Long:  `Multiplayer stealth photography game: hunters photograph wary creatures on a shared grid.`,
	// Без подкоманды запускаем сервер
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file")
	addServeFlags(rootCmd)
	addServeFlags(serveCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(schemaCmd)
}
