package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Fantasim/solvault/internal/config"
	"github.com/Fantasim/solvault/internal/db"
	"github.com/Fantasim/solvault/internal/models"
)

func testDB(t *testing.T) *db.DB {
	t.Helper()

	d, err := db.New(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := d.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	return d
}

func seedAccounts(t *testing.T, d *db.DB, n int) []models.Account {
	t.Helper()

	accounts := make([]models.Account, n)
	for i := range accounts {
		accounts[i] = models.Account{
			AccountIndex: i,
			Path:         "m/44'/501'/0'/0'",
			Address:      "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpq" + string(rune('a'+i)),
		}
	}
	if err := d.InsertAccountBatch(accounts); err != nil {
		t.Fatal(err)
	}
	return accounts
}

func TestHealthHandler(t *testing.T) {
	cfg := &config.Config{Network: "mainnet", DBPath: "./data/test.sqlite"}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	HealthHandler(cfg, "test")(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["network"] != "mainnet" {
		t.Errorf("network field = %q, want mainnet", body["network"])
	}
}

func TestListAccounts(t *testing.T) {
	d := testDB(t)
	seedAccounts(t, d, 5)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts?page=1&pageSize=3", nil)
	rec := httptest.NewRecorder()

	ListAccounts(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data []models.Account `json:"data"`
		Meta models.APIMeta   `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	if len(resp.Data) != 3 {
		t.Errorf("returned %d accounts, want 3", len(resp.Data))
	}
	if resp.Meta.Total != 5 {
		t.Errorf("meta.Total = %d, want 5", resp.Meta.Total)
	}
}

func TestGetAccount(t *testing.T) {
	d := testDB(t)
	accounts := seedAccounts(t, d, 3)

	r := chi.NewRouter()
	r.Get("/api/accounts/{index}", GetAccount(d))

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/1", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp struct {
			Data models.Account `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Data.Address != accounts[1].Address {
			t.Errorf("address = %q, want %q", resp.Data.Address, accounts[1].Address)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/42", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("invalid index", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/notanumber", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestLookupAccount(t *testing.T) {
	d := testDB(t)
	seedAccounts(t, d, 1)

	r := chi.NewRouter()
	r.Get("/api/accounts/address/{address}", LookupAccount(d))

	t.Run("invalid address rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/address/notbase58!!!", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown address 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts/address/11111111111111111111111111111111", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestExportAccountsHandler(t *testing.T) {
	d := testDB(t)
	seedAccounts(t, d, 2)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/export", nil)
	rec := httptest.NewRecorder()

	ExportAccounts(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var items []models.AccountExportItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("export body is not a JSON array: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("exported %d items, want 2", len(items))
	}
}

// fakeDeriver implements AddressDeriver for handler tests.
type fakeDeriver struct {
	addr string
	err  error
}

func (f *fakeDeriver) DeriveAddress(ctx context.Context, path string) (string, error) {
	return f.addr, f.err
}

func TestDerivePreview(t *testing.T) {
	t.Run("valid path", func(t *testing.T) {
		deriver := &fakeDeriver{addr: "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk"}

		req := httptest.NewRequest(http.MethodGet, "/api/derive?path=m/44'/501'/0'/0'", nil)
		rec := httptest.NewRecorder()

		DerivePreview(deriver)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Path     string   `json:"path"`
			Segments []uint32 `json:"segments"`
			Address  string   `json:"address"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Path != "m/44'/501'/0'/0'" {
			t.Errorf("path = %q", resp.Path)
		}
		if len(resp.Segments) != 4 || resp.Segments[1] != 501 {
			t.Errorf("segments = %v", resp.Segments)
		}
		if resp.Address != deriver.addr {
			t.Errorf("address = %q", resp.Address)
		}
	})

	t.Run("invalid path rejected before keyring", func(t *testing.T) {
		deriver := &fakeDeriver{addr: "should-not-be-returned"}

		req := httptest.NewRequest(http.MethodGet, "/api/derive?path=m/44/501", nil)
		rec := httptest.NewRecorder()

		DerivePreview(deriver)(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("no mnemonic configured", func(t *testing.T) {
		deriver := &fakeDeriver{err: config.ErrMnemonicFileNotSet}

		req := httptest.NewRequest(http.MethodGet, "/api/derive?path=m/0'", nil)
		rec := httptest.NewRecorder()

		DerivePreview(deriver)(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}
