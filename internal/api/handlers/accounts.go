package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Fantasim/solvault/internal/config"
	"github.com/Fantasim/solvault/internal/db"
	"github.com/Fantasim/solvault/internal/models"
	"github.com/Fantasim/solvault/internal/validate"
)

// ListAccounts handles GET /api/accounts
func ListAccounts(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Info("list accounts requested",
			"query", r.URL.RawQuery,
			"remoteAddr", r.RemoteAddr,
		)

		page := parseIntParam(r, "page", config.DefaultPage)
		pageSize := parseIntParam(r, "pageSize", config.DefaultPageSize)

		// Clamp page size
		if pageSize > config.MaxPageSize {
			pageSize = config.MaxPageSize
		}
		if pageSize < 1 {
			pageSize = config.DefaultPageSize
		}
		if page < 1 {
			page = config.DefaultPage
		}

		total, err := database.CountAccounts()
		if err != nil {
			slog.Error("failed to count accounts", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to fetch accounts")
			return
		}

		accounts, err := database.GetAccounts((page-1)*pageSize, pageSize)
		if err != nil {
			slog.Error("failed to fetch accounts", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to fetch accounts")
			return
		}

		elapsed := time.Since(start).Milliseconds()

		slog.Info("accounts fetched",
			"page", page,
			"pageSize", pageSize,
			"returned", len(accounts),
			"total", total,
			"elapsed_ms", elapsed,
		)

		writeJSON(w, http.StatusOK, models.APIResponse{
			Data: accounts,
			Meta: &models.APIMeta{
				Page:          page,
				PageSize:      pageSize,
				Total:         int64(total),
				ExecutionTime: elapsed,
			},
		})
	}
}

// GetAccount handles GET /api/accounts/{index}
func GetAccount(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		indexParam := chi.URLParam(r, "index")

		index, err := strconv.Atoi(indexParam)
		if err != nil || index < 0 {
			slog.Warn("invalid account index", "index", indexParam)
			writeError(w, http.StatusBadRequest, config.ErrorInvalidIndex, "invalid account index: "+indexParam)
			return
		}

		acct, err := database.GetAccountByIndex(index)
		if errors.Is(err, db.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, config.ErrorNotFound, "no account at index "+indexParam)
			return
		}
		if err != nil {
			slog.Error("failed to fetch account", "index", index, "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to fetch account")
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{Data: acct})
	}
}

// LookupAccount handles GET /api/accounts/address/{address}
func LookupAccount(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")

		if err := validate.Address(address); err != nil {
			slog.Warn("invalid address for lookup", "address", address, "error", err)
			writeError(w, http.StatusBadRequest, config.ErrorInvalidAddress, "invalid address: "+address)
			return
		}

		acct, err := database.GetAccountByAddress(address)
		if errors.Is(err, db.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, config.ErrorNotFound, "address not held by this vault")
			return
		}
		if err != nil {
			slog.Error("failed to look up account", "address", address, "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to look up account")
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{Data: acct})
	}
}

// ExportAccounts handles GET /api/accounts/export
func ExportAccounts(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Fail before streaming starts; the status code is fixed after the
		// first write.
		count, err := database.CountAccounts()
		if err != nil {
			slog.Error("failed to count accounts for export", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorExportFailed, "failed to export accounts")
			return
		}

		slog.Info("export accounts requested", "count", count, "remoteAddr", r.RemoteAddr)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=sol-accounts.json")

		// Stream accounts as JSON array
		first := true

		w.Write([]byte("["))

		err = database.StreamAccounts(func(acct models.Account) error {
			if !first {
				w.Write([]byte(","))
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
			_, err = w.Write(data)
			return err
		})

		if err != nil {
			slog.Error("export stream error", "error", err)
			// Can't change status code mid-stream, just log
			return
		}

		w.Write([]byte("]"))

		slog.Info("account export complete")
	}
}
