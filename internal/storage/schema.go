// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for set logs, adjustment events, plans, and snapshots.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS set_logs (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		exercise TEXT NOT NULL,
		weight REAL NOT NULL,
		reps INTEGER NOT NULL,
		rpe REAL,
		tempo TEXT,
		velocity REAL,
		created_at DATETIME NOT NULL,
		synced_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS adjustment_events (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		athlete_id TEXT NOT NULL,
		coach_id TEXT,
		metric TEXT NOT NULL,
		trigger_value REAL NOT NULL,
		delta REAL NOT NULL,
		prompt_text TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plans (
		athlete_id TEXT PRIMARY KEY,
		program TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		athlete_id TEXT NOT NULL,
		date TEXT NOT NULL,
		hrv_rmssd REAL,
		sleep_minutes INTEGER,
		soreness_score INTEGER,
		jump_height_cm REAL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (athlete_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_set_logs_session ON set_logs(session_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_adjustments_session ON adjustment_events(session_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_adjustments_athlete ON adjustment_events(athlete_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_snapshots_athlete ON snapshots(athlete_id, date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
