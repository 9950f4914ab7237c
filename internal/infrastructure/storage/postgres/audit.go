package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"atlas/internal/core/tenant"
	"atlas/internal/domain"
	"atlas/internal/domain/audit"
)

const auditTable = "audit_log"

// AuditRepo implements audit.Repository. Request payloads above the
// compression threshold are stored zstd-compressed.
type AuditRepo struct {
	txm               *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewAuditRepo creates a new audit repository.
func NewAuditRepo(txm *TxManager) (*AuditRepo, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditRepo{
		txm:               txm,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

func (r *AuditRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Insert stores an entry, compressing large payloads.
func (r *AuditRepo) Insert(ctx context.Context, e *audit.Entry) error {
	e.CompressionAlgo = audit.CompressionNone
	if len(e.Params) > r.compressThreshold {
		e.ParamsCompressed = r.encoder.EncodeAll(e.Params, nil)
		e.Params = nil
		e.CompressionAlgo = audit.CompressionZstd
	}

	q := r.builder().
		Insert(auditTable).
		Columns("tenant_id", "user_id", "username", "method", "path", "operation",
			"target", "params", "params_compressed", "compression_algo",
			"ip", "user_agent", "status_code", "success", "error_msg",
			"latency_ms", "create_time").
		Values(e.TenantID, e.UserID, e.Username, e.Method, e.Path, e.Operation,
			e.Target, e.Params, e.ParamsCompressed, e.CompressionAlgo,
			e.IP, e.UserAgent, e.StatusCode, e.Success, e.ErrorMsg,
			e.LatencyMS, e.CreateTime).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// pageSelect builds the filtered listing query. The audit table is
// exempt from the scope hook, so tenant isolation is applied here:
// tenant-scoped callers only see their own tenant's entries.
func (r *AuditRepo) pageSelect(ctx context.Context, q audit.PageQuery) squirrel.SelectBuilder {
	sel := r.builder().
		Select("id", "tenant_id", "user_id", "username", "method", "path",
			"operation", "target", "params", "params_compressed",
			"compression_algo", "ip", "user_agent", "status_code",
			"success", "error_msg", "latency_ms", "create_time").
		From(auditTable)

	if tid := tenant.GetTenantID(ctx); tid != 0 {
		sel = sel.Where(squirrel.Eq{"tenant_id": tid})
	}

	for _, c := range CompactConds(
		ILikeCond("username", q.Username),
		ILikeCond("path", q.Path),
	) {
		sel = sel.Where(c)
	}
	if q.Success != nil {
		sel = sel.Where(squirrel.Eq{"success": *q.Success})
	}
	return sel
}

// Page lists entries newest first, decompressing payloads.
func (r *AuditRepo) Page(ctx context.Context, page domain.PageQuery, q audit.PageQuery) (domain.PageResult[*audit.Entry], error) {
	page.Normalize()

	sel := r.pageSelect(ctx, q)

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(sel, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return domain.PageResult[*audit.Entry]{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.PageResult[*audit.Entry]{}, fmt.Errorf("count audit entries: %w", err)
	}
	if total == 0 {
		return domain.EmptyPage[*audit.Entry](page), nil
	}

	sel = sel.OrderBy("create_time DESC, id DESC").
		Limit(uint64(page.PageSize)).
		Offset(uint64(page.Offset()))

	sql, args, err := sel.ToSql()
	if err != nil {
		return domain.PageResult[*audit.Entry]{}, fmt.Errorf("build query: %w", err)
	}

	var entries []*audit.Entry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return domain.PageResult[*audit.Entry]{}, fmt.Errorf("select audit entries: %w", err)
	}

	for _, e := range entries {
		if e.CompressionAlgo == audit.CompressionZstd && len(e.ParamsCompressed) > 0 {
			decompressed, err := r.decoder.DecodeAll(e.ParamsCompressed, nil)
			if err != nil {
				return domain.PageResult[*audit.Entry]{}, fmt.Errorf("decompress params: %w", err)
			}
			e.Params = decompressed
			e.ParamsCompressed = nil
		}
	}

	return domain.PageResult[*audit.Entry]{
		PageNum:  page.PageNum,
		PageSize: page.PageSize,
		Total:    total,
		Items:    entries,
	}, nil
}

// DeleteBefore purges entries created before the cutoff.
func (r *AuditRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := r.builder().
		Delete(auditTable).
		Where(squirrel.Lt{"create_time": cutoff})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete audit entries: %w", err)
	}
	return result.RowsAffected(), nil
}
