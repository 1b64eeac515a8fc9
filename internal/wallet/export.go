package wallet

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Fantasim/solvault/internal/models"
)

// ExportDir is the default directory for JSON account exports.
const ExportDir = "./data/export"

// pathTemplate is the derivation path template recorded in export files.
const pathTemplate = "m/44'/501'/{index}'/0'"

// AccountStreamer is the interface for streaming accounts from DB.
type AccountStreamer interface {
	StreamAccounts(fn func(acct models.Account) error) error
	CountAccounts() (int, error)
}

// ExportAccounts exports all derived accounts to a JSON file using streaming.
// The file is written incrementally so a large account set never needs to be
// held in memory.
func ExportAccounts(db AccountStreamer, network string, outputDir string) error {
	if outputDir == "" {
		outputDir = ExportDir
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create export directory %q: %w", outputDir, err)
	}

	count, err := db.CountAccounts()
	if err != nil {
		return fmt.Errorf("count accounts for export: %w", err)
	}

	if count == 0 {
		return fmt.Errorf("no accounts found to export")
	}

	filename := filepath.Join(outputDir, "sol_accounts.json")
	slog.Info("exporting accounts",
		"count", count,
		"file", filename,
	)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create export file %q: %w", filename, err)
	}
	defer f.Close()

	header := struct {
		Network                string `json:"network"`
		DerivationPathTemplate string `json:"derivation_path_template"`
		GeneratedAt            string `json:"generated_at"`
		Count                  int    `json:"count"`
	}{
		Network:                network,
		DerivationPathTemplate: pathTemplate,
		GeneratedAt:            time.Now().UTC().Format(time.RFC3339),
		Count:                  count,
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshal export header: %w", err)
	}

	// Open the wrapper object by hand so accounts can be streamed one at a
	// time after the header fields.
	if _, err := f.Write(append(headerJSON[:len(headerJSON)-1], []byte(`,"accounts":[`)...)); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	first := true
	err = db.StreamAccounts(func(acct models.Account) error {
		if !first {
			if _, err := f.Write([]byte(",")); err != nil {
				return err
			}
		}
		first = false

		item := models.AccountExportItem{
			Index:   acct.AccountIndex,
			Path:    acct.Path,
			Address: acct.Address,
		}
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		_, err = f.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("stream accounts to export: %w", err)
	}

	if _, err := f.Write([]byte("]}")); err != nil {
		return fmt.Errorf("close export file body: %w", err)
	}

	slog.Info("account export complete", "file", filename, "count", count)
	return nil
}
