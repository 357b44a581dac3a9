package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Simplici0/costquote/internal/pricing"
	"github.com/Simplici0/costquote/internal/store"
)

// defaultMonthlyHours is a single full-time workshop month.
const defaultMonthlyHours = 160

// Config contains the values required by startup seed.
type Config struct {
	Driver   string
	Currency string
	Tax      pricing.TaxSetting
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	sb := store.Builder(cfg.Driver)

	if err := ensureSettings(ctx, tx, sb, cfg, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := backfillSettingsCurrency(ctx, tx, sb, cfg, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSettings(ctx context.Context, tx *sql.Tx, sb sq.StatementBuilderType, cfg Config, stats *Stats) error {
	var count int
	sqlStr, args, err := sb.Select("COUNT(*)").From("settings").Where(sq.Eq{"id": 1}).ToSql()
	if err != nil {
		return fmt.Errorf("build settings existence query: %w", err)
	}
	if err := tx.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return fmt.Errorf("check settings existence: %w", err)
	}
	if count > 0 {
		return nil
	}

	overhead, err := json.Marshal(pricing.OverheadWorksheet{MonthlyHours: defaultMonthlyHours})
	if err != nil {
		return fmt.Errorf("encode default overhead worksheet: %w", err)
	}

	sqlStr, args, err = sb.
		Insert("settings").
		Columns("id", "currency", "tax_rate", "tax_inclusive", "overhead_json", "updated_at").
		Values(1, cfg.Currency, cfg.Tax.Rate, cfg.Tax.Inclusive, string(overhead), store.FormatTime(time.Now())).
		ToSql()
	if err != nil {
		return fmt.Errorf("build settings insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert settings singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

// backfillSettingsCurrency fills a blank currency left by hand-edited rows.
func backfillSettingsCurrency(ctx context.Context, tx *sql.Tx, sb sq.StatementBuilderType, cfg Config, stats *Stats) error {
	sqlStr, args, err := sb.
		Update("settings").
		Set("currency", cfg.Currency).
		Where(sq.Eq{"id": 1, "currency": ""}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build settings currency backfill: %w", err)
	}
	res, err := tx.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("backfill settings currency: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("backfill settings currency: %w", err)
	}
	stats.Updates += int(n)
	return nil
}
