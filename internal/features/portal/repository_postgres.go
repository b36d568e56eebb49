package portal

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/random-lottery/AIPortal/internal/database"

	"github.com/lib/pq"
)

// PostgresSettingsRepository stores the layout document in a
// portal_settings table with the layout serialized as JSONB. The primary
// key on user_id backs the insert-or-fetch creation rule.
type PostgresSettingsRepository struct {
	DB *sql.DB
}

func NewPostgresSettingsRepository(pg *database.PostgresDB) SettingsRepository {
	return &PostgresSettingsRepository{DB: pg.DB}
}

func (r *PostgresSettingsRepository) Find(ctx context.Context, userID string) (*PortalSettings, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT user_id, layout, theme, language, created_at, updated_at
		 FROM portal_settings WHERE user_id = $1`, userID)
	return scanSettings(row)
}

func (r *PostgresSettingsRepository) Insert(ctx context.Context, settings *PortalSettings) error {
	layout, err := json.Marshal(settings.Layout)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO portal_settings (user_id, layout, theme, language, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		settings.UserID, layout, string(settings.Theme), settings.Language,
		settings.CreatedAt, settings.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return ErrSettingsExists
		}
		return err
	}
	return nil
}

func (r *PostgresSettingsRepository) Upsert(ctx context.Context, settings *PortalSettings) (*PortalSettings, error) {
	layout, err := json.Marshal(settings.Layout)
	if err != nil {
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO portal_settings (user_id, layout, theme, language, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 ON CONFLICT (user_id) DO UPDATE
		 SET layout = EXCLUDED.layout,
		     theme = EXCLUDED.theme,
		     language = EXCLUDED.language,
		     updated_at = now()
		 RETURNING user_id, layout, theme, language, created_at, updated_at`,
		settings.UserID, layout, string(settings.Theme), settings.Language)
	return scanSettings(row)
}

func (r *PostgresSettingsRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS portal_settings (
			user_id    text PRIMARY KEY,
			layout     jsonb NOT NULL DEFAULT '[]',
			theme      text NOT NULL DEFAULT 'light',
			language   text NOT NULL DEFAULT 'en',
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	return err
}

func scanSettings(row *sql.Row) (*PortalSettings, error) {
	var (
		settings PortalSettings
		layout   []byte
		theme    string
		created  time.Time
		updated  time.Time
	)

	err := row.Scan(&settings.UserID, &layout, &theme, &settings.Language, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(layout, &settings.Layout); err != nil {
		return nil, err
	}
	settings.Theme = Theme(theme)
	settings.CreatedAt = created
	settings.UpdatedAt = updated
	return &settings, nil
}
