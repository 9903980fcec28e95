package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/briefly-ai/briefly/internal/model"
	"github.com/briefly-ai/briefly/internal/pkg/dbutil"
	appErr "github.com/briefly-ai/briefly/internal/pkg/errors"
)

var historyColumns = []string{
	"id", "source_kind", "title", "source_url", "file_key", "input_chars",
	"summary", "model_used", "compression_ratio", "completeness_passed", "ctime",
}

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, rec *model.SummaryRecord) error {
	data := map[string]interface{}{
		"id":                  rec.ID,
		"source_kind":         string(rec.SourceKind),
		"title":               rec.Title,
		"source_url":          rec.SourceURL,
		"file_key":            rec.FileKey,
		"input_chars":         rec.InputChars,
		"summary":             rec.Summary,
		"model_used":          rec.ModelUsed,
		"compression_ratio":   rec.CompressionRatio,
		"completeness_passed": rec.CompletenessPassed,
		"ctime":               rec.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("summary_records", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *HistoryRepo) GetByID(ctx context.Context, id string) (*model.SummaryRecord, error) {
	where := map[string]interface{}{
		"id": id,
	}
	sqlStr, args, err := builder.BuildSelect("summary_records", where, historyColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *HistoryRepo) List(ctx context.Context, sourceKind string, limit, offset uint) ([]model.SummaryRecord, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
	}
	if sourceKind != "" {
		where["source_kind"] = sourceKind
	}
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	sqlStr, args, err := builder.BuildSelect("summary_records", where, historyColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := make([]model.SummaryRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *HistoryRepo) ListByIDs(ctx context.Context, ids []string) ([]model.SummaryRecord, error) {
	if len(ids) == 0 {
		return []model.SummaryRecord{}, nil
	}
	query := `SELECT id, source_kind, title, source_url, file_key, input_chars,
		summary, model_used, compression_ratio, completeness_passed, ctime
		FROM summary_records WHERE id IN (?) ORDER BY ctime DESC`
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return nil, err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := make([]model.SummaryRecord, 0, len(ids))
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *HistoryRepo) Count(ctx context.Context, sourceKind string) (int, error) {
	query := `SELECT COUNT(1) FROM summary_records`
	var args []interface{}
	if sourceKind != "" {
		query += ` WHERE source_kind = $1`
		args = append(args, sourceKind)
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *HistoryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM summary_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// ListFileKeysOlderThan returns the stored upload keys of records
// created before the cutoff, so callers can drop the files alongside
// the rows.
func (r *HistoryRepo) ListFileKeysOlderThan(ctx context.Context, cutoff int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT file_key FROM summary_records WHERE ctime < $1 AND file_key <> ''`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// DeleteOlderThan removes records created before the cutoff and reports
// how many were dropped.
func (r *HistoryRepo) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM summary_records WHERE ctime < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanRecord(rows *sql.Rows) (*model.SummaryRecord, error) {
	var rec model.SummaryRecord
	var kind string
	if err := rows.Scan(
		&rec.ID, &kind, &rec.Title, &rec.SourceURL, &rec.FileKey, &rec.InputChars,
		&rec.Summary, &rec.ModelUsed, &rec.CompressionRatio, &rec.CompletenessPassed, &rec.Ctime,
	); err != nil {
		return nil, err
	}
	rec.SourceKind = model.SourceKind(kind)
	return &rec, nil
}
