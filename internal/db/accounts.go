package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Fantasim/solvault/internal/models"
)

const insertBatchSize = 10_000

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// InsertAccountBatch inserts accounts in batches of 10K per transaction.
func (d *DB) InsertAccountBatch(accounts []models.Account) error {
	total := len(accounts)
	slog.Info("inserting accounts", "total", total, "batchSize", insertBatchSize)
	start := time.Now()

	for i := 0; i < total; i += insertBatchSize {
		end := i + insertBatchSize
		if end > total {
			end = total
		}
		batch := accounts[i:end]

		if err := d.insertBatch(batch); err != nil {
			return fmt.Errorf("insert account batch [%d:%d]: %w", i, end, err)
		}

		slog.Info("account batch inserted",
			"inserted", end,
			"total", total,
			"progress", fmt.Sprintf("%.1f%%", float64(end)/float64(total)*100),
		)
	}

	slog.Info("account insertion complete",
		"total", total,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// insertBatch inserts a single batch of accounts in one transaction.
func (d *DB) insertBatch(accounts []models.Account) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Build multi-value INSERT for performance.
	valueStrings := make([]string, 0, len(accounts))
	valueArgs := make([]interface{}, 0, len(accounts)*3)

	for _, acct := range accounts {
		valueStrings = append(valueStrings, "(?, ?, ?)")
		valueArgs = append(valueArgs, acct.AccountIndex, acct.Path, acct.Address)
	}

	query := "INSERT INTO accounts (account_index, path, address) VALUES " + strings.Join(valueStrings, ", ")

	if _, err := tx.Exec(query, valueArgs...); err != nil {
		tx.Rollback()
		return fmt.Errorf("exec batch insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	return nil
}

// CountAccounts returns the number of stored accounts.
func (d *DB) CountAccounts() (int, error) {
	var count int
	err := d.conn.QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}

	slog.Debug("counted accounts", "count", count)
	return count, nil
}

// GetAccounts returns a paginated list of accounts ordered by index.
func (d *DB) GetAccounts(offset, limit int) ([]models.Account, error) {
	slog.Debug("fetching accounts", "offset", offset, "limit", limit)

	rows, err := d.conn.Query(
		"SELECT account_index, path, address, created_at FROM accounts ORDER BY account_index LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var acct models.Account
		if err := rows.Scan(&acct.AccountIndex, &acct.Path, &acct.Address, &acct.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, acct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

// GetAccountByIndex returns a single account by derivation index.
func (d *DB) GetAccountByIndex(index int) (*models.Account, error) {
	var acct models.Account
	err := d.conn.QueryRow(
		"SELECT account_index, path, address, created_at FROM accounts WHERE account_index = ?",
		index,
	).Scan(&acct.AccountIndex, &acct.Path, &acct.Address, &acct.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account index %d: %w", index, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query account by index %d: %w", index, err)
	}

	return &acct, nil
}

// GetAccountByAddress returns a single account by its base58 address.
func (d *DB) GetAccountByAddress(address string) (*models.Account, error) {
	var acct models.Account
	err := d.conn.QueryRow(
		"SELECT account_index, path, address, created_at FROM accounts WHERE address = ?",
		address,
	).Scan(&acct.AccountIndex, &acct.Path, &acct.Address, &acct.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account address %s: %w", address, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query account by address %s: %w", address, err)
	}

	return &acct, nil
}

// StreamAccounts calls fn for each stored account in index order.
func (d *DB) StreamAccounts(fn func(acct models.Account) error) error {
	rows, err := d.conn.Query("SELECT account_index, path, address, created_at FROM accounts ORDER BY account_index")
	if err != nil {
		return fmt.Errorf("query accounts for streaming: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var acct models.Account
		if err := rows.Scan(&acct.AccountIndex, &acct.Path, &acct.Address, &acct.CreatedAt); err != nil {
			return fmt.Errorf("scan account row: %w", err)
		}
		if err := fn(acct); err != nil {
			return err
		}
	}

	return rows.Err()
}

// DeleteAccounts removes all stored accounts.
func (d *DB) DeleteAccounts() error {
	if _, err := d.conn.Exec("DELETE FROM accounts"); err != nil {
		return fmt.Errorf("delete accounts: %w", err)
	}

	slog.Info("deleted all accounts")
	return nil
}
