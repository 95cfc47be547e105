package client

import (
	"github.com/spf13/cobra"

	sheetv1alpha1 "github.com/KirkDiggler/rpg-loadout/internal/handlers/sheet/v1alpha1"
)

var (
	level   int
	raceID  string
	classID string
	stat    string
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Set the character level",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodSetLevel, map[string]any{
			"character_id": characterID,
			"level":        level,
		})
	},
}

var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Select a race, or clear it with an empty --race-id",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodSelectRace, map[string]any{
			"character_id": characterID,
			"race_id":      raceID,
		})
	},
}

var listRacesCmd = &cobra.Command{
	Use:   "list-races",
	Short: "List selectable races",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodListRaces, map[string]any{})
	},
}

var listClassesCmd = &cobra.Command{
	Use:   "list-classes",
	Short: "List selectable classes",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodListClasses, map[string]any{})
	},
}

var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Select a class, or clear it with an empty --class-id",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodSelectClass, map[string]any{
			"character_id": characterID,
			"class_id":     classID,
		})
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Spend one point on a stat",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodAllocatePoint, map[string]any{
			"character_id": characterID,
			"stat":         stat,
		})
	},
}

var refundCmd = &cobra.Command{
	Use:   "refund",
	Short: "Return one point from a stat",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodRefundPoint, map[string]any{
			"character_id": characterID,
			"stat":         stat,
		})
	},
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Show where a stat's total comes from",
	RunE: func(_ *cobra.Command, _ []string) error {
		return callAndPrint(sheetv1alpha1.MethodGetBreakdown, map[string]any{
			"character_id": characterID,
			"stat":         stat,
		})
	},
}

func init() {
	characterFlag(levelCmd)
	levelCmd.Flags().IntVar(&level, "level", 1, "Character level")

	characterFlag(raceCmd)
	raceCmd.Flags().StringVar(&raceID, "race-id", "", "Race ID")

	characterFlag(classCmd)
	classCmd.Flags().StringVar(&classID, "class-id", "", "Class ID")

	for _, cmd := range []*cobra.Command{allocateCmd, refundCmd, breakdownCmd} {
		characterFlag(cmd)
		cmd.Flags().StringVar(&stat, "stat", "", "Stat name (required)")
		_ = cmd.MarkFlagRequired("stat") // nolint:errcheck // safe to ignore in init
	}
}
