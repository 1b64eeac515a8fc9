package models

// NetworkMode represents mainnet or devnet operation.
type NetworkMode string

const (
	NetworkMainnet NetworkMode = "mainnet"
	NetworkDevnet  NetworkMode = "devnet"
)

// Account represents a derived Solana account: the public half of one node
// of the derivation tree. Private scalars and chain codes are never stored.
type Account struct {
	AccountIndex int    `json:"accountIndex"`
	Path         string `json:"path"`
	Address      string `json:"address"`
	CreatedAt    string `json:"createdAt"`
}

// AccountExport represents the JSON export format for derived accounts.
type AccountExport struct {
	Network                string              `json:"network"`
	DerivationPathTemplate string              `json:"derivation_path_template"`
	GeneratedAt            string              `json:"generated_at"`
	Count                  int                 `json:"count"`
	Accounts               []AccountExportItem `json:"accounts"`
}

// AccountExportItem is a single account entry in the export file.
type AccountExportItem struct {
	Index   int    `json:"index"`
	Path    string `json:"path"`
	Address string `json:"address"`
}

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Data interface{} `json:"data,omitempty"`
	Meta *APIMeta    `json:"meta,omitempty"`
}

// APIMeta contains pagination and execution metadata.
type APIMeta struct {
	Page          int   `json:"page,omitempty"`
	PageSize      int   `json:"pageSize,omitempty"`
	Total         int64 `json:"total,omitempty"`
	ExecutionTime int64 `json:"executionTime,omitempty"`
}

// APIError is the standard error response.
type APIError struct {
	Error APIErrorDetail `json:"error"`
}

// APIErrorDetail contains error code and message.
type APIErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
