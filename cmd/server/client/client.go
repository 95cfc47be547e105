// Package client provides test commands for the loadout gRPC service
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	sheetv1alpha1 "github.com/KirkDiggler/rpg-loadout/internal/handlers/sheet/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Shared request flags
	characterID string
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the loadout service",
	Long:  `Client commands allow you to test the loadout service by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Character commands
	ClientCmd.AddCommand(createCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(listCmd)
	ClientCmd.AddCommand(deleteCmd)

	// Equipment commands
	ClientCmd.AddCommand(equipCmd)
	ClientCmd.AddCommand(unequipCmd)
	ClientCmd.AddCommand(listItemsCmd)

	// Progression commands
	ClientCmd.AddCommand(levelCmd)
	ClientCmd.AddCommand(raceCmd)
	ClientCmd.AddCommand(classCmd)
	ClientCmd.AddCommand(listRacesCmd)
	ClientCmd.AddCommand(listClassesCmd)
	ClientCmd.AddCommand(allocateCmd)
	ClientCmd.AddCommand(refundCmd)
	ClientCmd.AddCommand(breakdownCmd)

	// Snapshot commands
	ClientCmd.AddCommand(exportCmd)
	ClientCmd.AddCommand(importCmd)
}

// characterFlag registers the --character-id flag on cmd as required
func characterFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&characterID, "character-id", "", "Character ID (required)")
	_ = cmd.MarkFlagRequired("character-id") // nolint:errcheck // safe to ignore in init
}

// createSheetClient creates a sheet service client
func createSheetClient() (*sheetv1alpha1.Client, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	client, err := sheetv1alpha1.NewClient(conn)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return client, cleanup, nil
}

// call invokes one method and returns the response document
func call(method string, req map[string]any) (map[string]any, error) {
	client, cleanup, err := createSheetClient()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Call(ctx, method, req)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}
	return resp, nil
}

// callAndPrint invokes one method and prints the response as indented JSON
func callAndPrint(method string, req map[string]any) error {
	resp, err := call(method, req)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
