// Package audit records administrative operations (audit_log).
package audit

import (
	"encoding/json"
	"time"

	"atlas/internal/core/id"
)

// CompressionAlgo specifies how the params payload is stored.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// Entry is one recorded operation. Large request payloads are stored
// zstd-compressed in ParamsCompressed with Params left empty.
type Entry struct {
	ID               id.ID           `db:"id" json:"id"`
	TenantID         *id.ID          `db:"tenant_id" json:"tenant_id,omitempty"`
	UserID           id.ID           `db:"user_id" json:"user_id"`
	Username         string          `db:"username" json:"username"`
	Method           string          `db:"method" json:"method"`
	Path             string          `db:"path" json:"path"`
	Operation        string          `db:"operation" json:"operation"`
	Target           string          `db:"target" json:"target,omitempty"`
	Params           json.RawMessage `db:"params" json:"params,omitempty"`
	ParamsCompressed []byte          `db:"params_compressed" json:"-"`
	CompressionAlgo  CompressionAlgo `db:"compression_algo" json:"-"`
	IP               string          `db:"ip" json:"ip"`
	UserAgent        string          `db:"user_agent" json:"user_agent,omitempty"`
	StatusCode       int             `db:"status_code" json:"status_code"`
	Success          bool            `db:"success" json:"success"`
	ErrorMsg         string          `db:"error_msg" json:"error_msg,omitempty"`
	LatencyMS        int64           `db:"latency_ms" json:"latency_ms"`
	CreateTime       time.Time       `db:"create_time" json:"create_time"`
}

// PageQuery filters the audit page listing.
type PageQuery struct {
	Username string `form:"username"`
	Path     string `form:"path"`
	Success  *bool  `form:"success"`
}
