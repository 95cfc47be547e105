// Package main is the entry point for the loadout gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loadout/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-loadout",
	Short: "RPG loadout gRPC server",
	Long:  `rpg-loadout serves character sheets with equipment slots and derived attribute totals.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
