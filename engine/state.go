package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// writeStateFile persists the snapshot wholesale as JSON for the dashboard.
// The file is rewritten every cycle; there are no partial updates.
func writeStateFile(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
