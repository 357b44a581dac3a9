package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Simplici0/costquote/internal/model"
)

const settingsID = 1

// Settings returns the settings singleton.
func (s *Store) Settings(ctx context.Context) (model.Settings, error) {
	row, err := s.queryRow(ctx, s.sb.
		Select("currency", "tax_rate", "tax_inclusive", "overhead_json", "updated_at").
		From("settings").
		Where(sq.Eq{"id": settingsID}))
	if err != nil {
		return model.Settings{}, err
	}

	var (
		st           model.Settings
		overheadJSON string
		updatedAt    string
	)
	if err := row.Scan(&st.Currency, &st.Tax.Rate, &st.Tax.Inclusive, &overheadJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Settings{}, fmt.Errorf("settings singleton: %w", model.ErrNotFound)
		}
		return model.Settings{}, fmt.Errorf("query settings: %w", err)
	}
	if err := json.Unmarshal([]byte(overheadJSON), &st.Overhead); err != nil {
		return model.Settings{}, fmt.Errorf("decode overhead worksheet: %w", err)
	}
	if st.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Settings{}, err
	}
	return st, nil
}

// SaveSettings updates the settings singleton.
func (s *Store) SaveSettings(ctx context.Context, st model.Settings) error {
	overheadJSON, err := marshalJSON(st.Overhead)
	if err != nil {
		return fmt.Errorf("encode overhead worksheet: %w", err)
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now()
	}

	res, err := s.exec(ctx, s.sb.
		Update("settings").
		Set("currency", st.Currency).
		Set("tax_rate", st.Tax.Rate).
		Set("tax_inclusive", st.Tax.Inclusive).
		Set("overhead_json", overheadJSON).
		Set("updated_at", FormatTime(st.UpdatedAt)).
		Where(sq.Eq{"id": settingsID}))
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if !ok {
		return fmt.Errorf("settings singleton: %w", model.ErrNotFound)
	}
	return nil
}
