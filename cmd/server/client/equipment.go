package client

import (
	"github.com/spf13/cobra"

	sheetv1alpha1 "github.com/KirkDiggler/rpg-loadout/internal/handlers/sheet/v1alpha1"
)

var (
	slotID   string
	itemID   string
	itemType string
	query    string
)

var equipCmd = &cobra.Command{
	Use:   "equip",
	Short: "Equip an item",
	Long:  `Equip an item into --slot-id, or into the first empty compatible slot when --slot-id is omitted.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		req := map[string]any{
			"character_id": characterID,
			"item_id":      itemID,
		}
		if slotID == "" {
			return callAndPrint(sheetv1alpha1.MethodEquipFirstFree, req)
		}
		req["slot_id"] = slotID
		return callAndPrint(sheetv1alpha1.MethodEquip, req)
	},
}

var unequipCmd = &cobra.Command{
	Use:   "unequip",
	Short: "Empty a slot",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodUnequip, map[string]any{
			"character_id": characterID,
			"slot_id":      slotID,
		})
	},
}

var listItemsCmd = &cobra.Command{
	Use:   "list-items",
	Short: "List catalog items",
	RunE: func(_ *cobra.Command, _ []string) error {
		req := map[string]any{}
		if itemType != "" {
			req["item_type"] = itemType
		}
		if query != "" {
			req["query"] = query
		}
		return callAndPrint(sheetv1alpha1.MethodListItems, req)
	},
}

func init() {
	characterFlag(equipCmd)
	equipCmd.Flags().StringVar(&itemID, "item-id", "", "Item ID (required)")
	equipCmd.Flags().StringVar(&slotID, "slot-id", "", "Slot ID (optional)")
	_ = equipCmd.MarkFlagRequired("item-id") // nolint:errcheck // safe to ignore in init

	characterFlag(unequipCmd)
	unequipCmd.Flags().StringVar(&slotID, "slot-id", "", "Slot ID (required)")
	_ = unequipCmd.MarkFlagRequired("slot-id") // nolint:errcheck // safe to ignore in init

	listItemsCmd.Flags().StringVar(&itemType, "type", "", "Only list items of this type")
	listItemsCmd.Flags().StringVar(&query, "query", "", "Only list items whose id or name contains this text")
}
