/*
Package sqlite provides the SQLite-backed store for plans, presets,
scenarios and settings.

PURPOSE:
  Persists the application state the UI layer edits. Plans and scenarios
  are stored as JSON blobs (the same shape the export/import endpoints
  speak), mirroring the serialized key-value model the app has always
  used; presets and settings get real columns because they are queried
  and updated field-by-field.

KEY TABLES:
  plans:     id, name, plan_json, timestamps
  presets:   method preset fractions
  scenarios: what-if clones, keyed to their base plan
  settings:  single row (active plan, locale, currency, passcode hash)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The engine itself is pure; the
  store is the only shared mutable state in the process.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers
  don't block and crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/moneee.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  store.Seed(ctx)

SEE ALSO:
  - api/handlers.go: The only consumer of this package
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/s3h4n/moneee/budget"
)

// Store persists plans, presets, scenarios and settings in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Settings is the single-row application settings record. The passcode
// is stored only as a bcrypt hash.
type Settings struct {
	ActivePlanID     string `json:"activePlanId,omitempty"`
	Currency         string `json:"currency"`
	Locale           string `json:"locale"`
	Theme            string `json:"theme"`
	EnablePasscode   bool   `json:"enablePasscode"`
	PasscodeHash     string `json:"-"`
	ShowRealityCheck bool   `json:"showRealityCheck"`
}

// DefaultSettings returns the settings a fresh database is seeded with.
func DefaultSettings() Settings {
	return Settings{
		Currency:         "LKR",
		Locale:           "en-LK",
		Theme:            "system",
		EnablePasscode:   false,
		ShowRealityCheck: true,
	}
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Plans (serialized as JSON blobs)
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		plan_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Method presets
	CREATE TABLE IF NOT EXISTS presets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		needs_pct REAL NOT NULL,
		wants_pct REAL NOT NULL,
		savings_pct REAL NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Scenarios (what-if clones of a base plan)
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		base_plan_id TEXT NOT NULL,
		plan_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_base_plan
		ON scenarios(base_plan_id);

	-- Settings (single row, id fixed to 1)
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		active_plan_id TEXT,
		currency TEXT NOT NULL,
		locale TEXT NOT NULL,
		theme TEXT NOT NULL,
		enable_passcode BOOLEAN NOT NULL DEFAULT FALSE,
		passcode_hash TEXT,
		show_reality_check BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Seed populates an empty database with the default presets, a default
// plan, and default settings. Idempotent: existing rows are untouched.
func (s *Store) Seed(ctx context.Context) error {
	presets, err := s.ListPresets(ctx)
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		presets = budget.DefaultMethodPresets()
		for _, p := range presets {
			if err := s.SavePreset(ctx, p); err != nil {
				return err
			}
		}
	}

	plans, err := s.ListPlans(ctx)
	if err != nil {
		return err
	}
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		plan := budget.NewPlan("Main plan", settings.Currency, presets[0].ID)
		if err := s.SavePlan(ctx, plan); err != nil {
			return err
		}
		settings.ActivePlanID = plan.ID
		return s.SaveSettings(ctx, settings)
	}
	return nil
}

// Reset deletes all data and re-seeds the defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM plans;
		DELETE FROM presets;
		DELETE FROM scenarios;
		DELETE FROM settings;
	`)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	return s.Seed(ctx)
}

// =============================================================================
// PLANS
// =============================================================================

// SavePlan inserts or replaces a plan.
func (s *Store) SavePlan(ctx context.Context, plan budget.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to serialize plan: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO plans (id, name, plan_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			plan_json = excluded.plan_json,
			updated_at = excluded.updated_at
	`, plan.ID, plan.Name, string(blob), plan.Meta.CreatedAt, plan.Meta.UpdatedAt)
	return err
}

// GetPlan returns a plan by id, or nil when it does not exist.
func (s *Store) GetPlan(ctx context.Context, id string) (*budget.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT plan_json FROM plans WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return unmarshalPlan(blob)
}

// ListPlans returns all plans, oldest first.
func (s *Store) ListPlans(ctx context.Context) ([]budget.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT plan_json FROM plans ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []budget.Plan
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		plan, err := unmarshalPlan(blob)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan and its scenarios.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scenarios WHERE base_plan_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func unmarshalPlan(blob string) (*budget.Plan, error) {
	var plan budget.Plan
	if err := json.Unmarshal([]byte(blob), &plan); err != nil {
		return nil, fmt.Errorf("failed to deserialize plan: %w", err)
	}
	return &plan, nil
}

// =============================================================================
// PRESETS
// =============================================================================

// SavePreset inserts or replaces a method preset.
func (s *Store) SavePreset(ctx context.Context, preset budget.MethodPreset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO presets (id, name, needs_pct, wants_pct, savings_pct, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			needs_pct = excluded.needs_pct,
			wants_pct = excluded.wants_pct,
			savings_pct = excluded.savings_pct
	`, preset.ID, preset.Name, preset.NeedsPct, preset.WantsPct, preset.SavingsPct,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetPreset returns a preset by id, or nil when it does not exist.
func (s *Store) GetPreset(ctx context.Context, id string) (*budget.MethodPreset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p budget.MethodPreset
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, needs_pct, wants_pct, savings_pct FROM presets WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.NeedsPct, &p.WantsPct, &p.SavingsPct)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPresets returns all presets, oldest first.
func (s *Store) ListPresets(ctx context.Context) ([]budget.MethodPreset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, needs_pct, wants_pct, savings_pct FROM presets ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []budget.MethodPreset
	for rows.Next() {
		var p budget.MethodPreset
		if err := rows.Scan(&p.ID, &p.Name, &p.NeedsPct, &p.WantsPct, &p.SavingsPct); err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// DeletePreset removes a preset. Plans referencing it keep their weak
// reference; lookups simply resolve to "no active preset".
func (s *Store) DeletePreset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id)
	return err
}

// =============================================================================
// SCENARIOS
// =============================================================================

// SaveScenario inserts or replaces a scenario.
func (s *Store) SaveScenario(ctx context.Context, scenario budget.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(scenario.Plan)
	if err != nil {
		return fmt.Errorf("failed to serialize scenario plan: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, base_plan_id, plan_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			plan_json = excluded.plan_json,
			updated_at = excluded.updated_at
	`, scenario.ID, scenario.Name, scenario.BasePlanID, string(blob),
		scenario.CreatedAt, scenario.UpdatedAt)
	return err
}

// GetScenario returns a scenario by id, or nil when it does not exist.
func (s *Store) GetScenario(ctx context.Context, id string) (*budget.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, base_plan_id, plan_json, created_at, updated_at
		FROM scenarios WHERE id = ?
	`, id)
	scenario, err := scanScenario(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return scenario, nil
}

// ListScenarios returns scenarios, optionally filtered by base plan.
func (s *Store) ListScenarios(ctx context.Context, basePlanID string) ([]budget.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, base_plan_id, plan_json, created_at, updated_at FROM scenarios`
	args := []any{}
	if basePlanID != "" {
		query += ` WHERE base_plan_id = ?`
		args = append(args, basePlanID)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []budget.Scenario
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, *scenario)
	}
	return scenarios, rows.Err()
}

// DeleteScenario removes a scenario.
func (s *Store) DeleteScenario(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*budget.Scenario, error) {
	var scenario budget.Scenario
	var blob string
	if err := row.Scan(&scenario.ID, &scenario.Name, &scenario.BasePlanID,
		&blob, &scenario.CreatedAt, &scenario.UpdatedAt); err != nil {
		return nil, err
	}
	plan, err := unmarshalPlan(blob)
	if err != nil {
		return nil, err
	}
	scenario.Plan = *plan
	return &scenario, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

// GetSettings returns the settings row, falling back to defaults when
// the database has none yet.
func (s *Store) GetSettings(ctx context.Context) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		settings     Settings
		activePlanID sql.NullString
		passcodeHash sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT active_plan_id, currency, locale, theme, enable_passcode, passcode_hash, show_reality_check
		FROM settings WHERE id = 1
	`).Scan(&activePlanID, &settings.Currency, &settings.Locale, &settings.Theme,
		&settings.EnablePasscode, &passcodeHash, &settings.ShowRealityCheck)
	if err == sql.ErrNoRows {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	settings.ActivePlanID = activePlanID.String
	settings.PasscodeHash = passcodeHash.String
	return settings, nil
}

// SaveSettings writes the single settings row.
func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, active_plan_id, currency, locale, theme, enable_passcode, passcode_hash, show_reality_check, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			active_plan_id = excluded.active_plan_id,
			currency = excluded.currency,
			locale = excluded.locale,
			theme = excluded.theme,
			enable_passcode = excluded.enable_passcode,
			passcode_hash = excluded.passcode_hash,
			show_reality_check = excluded.show_reality_check,
			updated_at = excluded.updated_at
	`, nullIfEmpty(settings.ActivePlanID), settings.Currency, settings.Locale, settings.Theme,
		settings.EnablePasscode, nullIfEmpty(settings.PasscodeHash), settings.ShowRealityCheck,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
