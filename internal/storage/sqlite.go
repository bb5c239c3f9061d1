package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meur/cobbledex/internal/dex"
	"github.com/meur/cobbledex/internal/team"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS favorites (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			identities TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS teams (
			id TEXT PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			slots TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_teams_name ON teams(name)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Favorites ---

// GetFavorites returns the ordered favorite identity list. Never having
// saved favorites yields an empty list, not an error.
func (s *Store) GetFavorites() ([]string, error) {
	var raw string
	err := s.db.QueryRow(`SELECT identities FROM favorites WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	ids := []string{}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("corrupt favorites row: %w", err)
	}
	return ids, nil
}

// SaveFavorites replaces the favorite list, preserving order.
func (s *Store) SaveFavorites(identities []string) error {
	if identities == nil {
		identities = []string{}
	}
	raw, _ := json.Marshal(identities)
	_, err := s.db.Exec(`
		INSERT INTO favorites (id, identities, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET identities = excluded.identities, updated_at = excluded.updated_at
	`, raw, time.Now())
	return err
}

// --- Teams ---

// Team is a persisted named team: exactly 6 slots, each possibly empty.
type Team struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Slots     []*dex.TeamSlot `json:"slots"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// normalizeSlots pads or truncates to the fixed team size so every stored
// team round-trips with its null slots intact.
func normalizeSlots(slots []*dex.TeamSlot) []*dex.TeamSlot {
	out := make([]*dex.TeamSlot, team.MaxSize)
	copy(out, slots)
	return out
}

// CreateTeam persists a new named team.
func (s *Store) CreateTeam(name string, slots []*dex.TeamSlot) (*Team, error) {
	t := &Team{
		ID:        uuid.New().String(),
		Name:      name,
		Slots:     normalizeSlots(slots),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	raw, _ := json.Marshal(t.Slots)
	_, err := s.db.Exec(`
		INSERT INTO teams (id, name, slots, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.ID, t.Name, raw, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func scanTeam(row *sql.Row) (*Team, error) {
	var t Team
	var raw string
	err := row.Scan(&t.ID, &t.Name, &raw, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(raw), &t.Slots); err != nil {
		return nil, fmt.Errorf("corrupt team row %s: %w", t.ID, err)
	}
	t.Slots = normalizeSlots(t.Slots)
	return &t, nil
}

// GetTeam returns one team by ID, or nil when absent.
func (s *Store) GetTeam(id string) (*Team, error) {
	return scanTeam(s.db.QueryRow(`
		SELECT id, name, slots, created_at, updated_at FROM teams WHERE id = ?
	`, id))
}

// GetTeamByName returns one team by its unique name, or nil when absent.
func (s *Store) GetTeamByName(name string) (*Team, error) {
	return scanTeam(s.db.QueryRow(`
		SELECT id, name, slots, created_at, updated_at FROM teams WHERE name = ?
	`, name))
}

// ListTeams returns every stored team ordered by name.
func (s *Store) ListTeams() ([]Team, error) {
	rows, err := s.db.Query(`
		SELECT id, name, slots, created_at, updated_at FROM teams ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		var raw string
		if err := rows.Scan(&t.ID, &t.Name, &raw, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &t.Slots); err != nil {
			return nil, fmt.Errorf("corrupt team row %s: %w", t.ID, err)
		}
		t.Slots = normalizeSlots(t.Slots)
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// UpdateTeam replaces a team's name and/or slots. Nil fields are left
// untouched.
func (s *Store) UpdateTeam(id string, name *string, slots []*dex.TeamSlot) error {
	if name != nil {
		if _, err := s.db.Exec(`UPDATE teams SET name = ?, updated_at = ? WHERE id = ?`,
			*name, time.Now(), id); err != nil {
			return err
		}
	}
	if slots != nil {
		raw, _ := json.Marshal(normalizeSlots(slots))
		if _, err := s.db.Exec(`UPDATE teams SET slots = ?, updated_at = ? WHERE id = ?`,
			raw, time.Now(), id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTeam removes a team by ID.
func (s *Store) DeleteTeam(id string) error {
	_, err := s.db.Exec(`DELETE FROM teams WHERE id = ?`, id)
	return err
}
