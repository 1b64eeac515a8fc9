package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Fantasim/solvault/internal/config"
	"github.com/Fantasim/solvault/internal/slip10"
)

// AddressDeriver derives a Solana address for a hardened derivation path.
// Implemented by wallet.Keyring.
type AddressDeriver interface {
	DeriveAddress(ctx context.Context, path string) (string, error)
}

// DerivePreview handles GET /api/derive?path=m/44'/501'/0'/0'
// It returns the address (public key) at an arbitrary hardened path.
// Private key material never leaves the process.
func DerivePreview(deriver AddressDeriver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Query().Get("path")

		slog.Info("derive preview requested",
			"path", path,
			"remoteAddr", r.RemoteAddr,
		)

		// Validate before touching the keyring so malformed input never
		// triggers a mnemonic read.
		parsed, err := slip10.ParsePath(path)
		if err != nil {
			slog.Warn("invalid derivation path", "path", path, "error", err)
			writeError(w, http.StatusBadRequest, config.ErrorInvalidPath, "invalid derivation path: "+path)
			return
		}

		addr, err := deriver.DeriveAddress(r.Context(), path)
		if errors.Is(err, config.ErrMnemonicFileNotSet) {
			writeError(w, http.StatusServiceUnavailable, config.ErrorInvalidConfig, "no mnemonic configured for this vault")
			return
		}
		if err != nil {
			slog.Error("derive preview failed", "path", path, "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorAccountGeneration, "derivation failed")
			return
		}

		slog.Info("derive preview complete",
			"path", path,
			"address", addr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"path":     parsed.String(),
			"segments": parsed,
			"address":  addr,
		})
	}
}
