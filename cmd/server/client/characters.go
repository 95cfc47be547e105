package client

import (
	"github.com/spf13/cobra"

	sheetv1alpha1 "github.com/KirkDiggler/rpg-loadout/internal/handlers/sheet/v1alpha1"
)

var newCharacterID string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new character",
	Long:  `Create a new character with the layout's starting points. An id is generated unless --id is set.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		req := map[string]any{}
		if newCharacterID != "" {
			req["character_id"] = newCharacterID
		}
		return callAndPrint(sheetv1alpha1.MethodCreateCharacter, req)
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show a character sheet",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodGetCharacter, map[string]any{"character_id": characterID})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored character ids",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodListCharacters, map[string]any{})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a character",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodDeleteCharacter, map[string]any{"character_id": characterID})
	},
}

func init() {
	createCmd.Flags().StringVar(&newCharacterID, "id", "", "Character ID (optional)")
	characterFlag(getCmd)
	characterFlag(deleteCmd)
}
