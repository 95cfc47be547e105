package client

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	sheetv1alpha1 "github.com/KirkDiggler/rpg-loadout/internal/handlers/sheet/v1alpha1"
)

var snapshotFile string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a character snapshot",
	Long:  `Export a character snapshot to stdout, or to --file when set.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := call(sheetv1alpha1.MethodExportCharacter, map[string]any{"character_id": characterID})
		if err != nil {
			return err
		}
		if snapshotFile == "" {
			return printJSON(resp["snapshot"])
		}

		data, err := json.MarshalIndent(resp["snapshot"], "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		if err := os.WriteFile(snapshotFile, data, 0o600); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		log.Printf("Snapshot of %s written to %s", characterID, snapshotFile)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a character snapshot",
	Long:  `Import a snapshot file. Both a bare snapshot and the output of "export" wrapped in {"snapshot": ...} are accepted.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := os.ReadFile(snapshotFile)
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		if !gjson.ValidBytes(data) {
			return fmt.Errorf("%s is not valid JSON", snapshotFile)
		}

		doc := gjson.ParseBytes(data)
		if wrapped := doc.Get("snapshot"); wrapped.IsObject() {
			doc = wrapped
		}
		if !doc.Get("characterId").Exists() {
			return fmt.Errorf("%s has no characterId", snapshotFile)
		}

		snap, ok := doc.Value().(map[string]any)
		if !ok {
			return fmt.Errorf("%s does not hold a snapshot object", snapshotFile)
		}

		log.Printf("Importing snapshot of %s...", doc.Get("characterId").String())
		return callAndPrint(sheetv1alpha1.MethodImportCharacter, map[string]any{"snapshot": snap})
	},
}

func init() {
	characterFlag(exportCmd)
	exportCmd.Flags().StringVar(&snapshotFile, "file", "", "Output file (optional)")

	importCmd.Flags().StringVar(&snapshotFile, "file", "", "Snapshot file (required)")
	_ = importCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init
}
