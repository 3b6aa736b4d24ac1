package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Event is one recorded input: the action name applied on the given tick.
type Event struct {
	Tick   uint64
	Action string
}

// Replay is a recorded run. The header fields fully determine the start
// of the game; Events drive it. Score, Lines and Level are the tallies the
// run finished with.
type Replay struct {
	ID       int64
	GameID   string
	Seed     uint64
	Width    int
	Height   int
	TickRate int

	GravityBaseMs  int
	GravityStepMs  int
	GravityFloorMs int

	Score    int
	Lines    int
	Level    int
	Ticks    uint64
	GameOver bool

	CreatedAt time.Time

	// Events is nil in listings; EventCount is always set.
	Events     []Event
	EventCount int
}

// SaveReplay stores the replay header and all its events in one
// transaction. Returns the ID of the inserted replay.
func (s *Store) SaveReplay(r Replay) (id int64, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.Exec(
		`INSERT INTO replays
		 (game_id, seed, width, height, tick_rate, gravity_base_ms, gravity_step_ms, gravity_floor_ms,
		  score, lines, level, ticks, game_over)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, int64(r.Seed), r.Width, r.Height, r.TickRate,
		r.GravityBaseMs, r.GravityStepMs, r.GravityFloorMs,
		r.Score, r.Lines, r.Level, int64(r.Ticks), r.GameOver,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO replay_events (replay_id, seq, tick, action) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for seq, ev := range r.Events {
		if _, err = stmt.Exec(id, seq, int64(ev.Tick), ev.Action); err != nil {
			return 0, fmt.Errorf("storage: cannot save event %d: %w", seq, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

const replayColumns = `r.id, r.game_id, r.seed, r.width, r.height, r.tick_rate,
	r.gravity_base_ms, r.gravity_step_ms, r.gravity_floor_ms,
	r.score, r.lines, r.level, r.ticks, r.game_over, r.created_at,
	(SELECT COUNT(*) FROM replay_events e WHERE e.replay_id = r.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (Replay, error) {
	var (
		r         Replay
		seed      int64
		ticks     int64
		createdAt any
	)
	err := row.Scan(
		&r.ID, &r.GameID, &seed, &r.Width, &r.Height, &r.TickRate,
		&r.GravityBaseMs, &r.GravityStepMs, &r.GravityFloorMs,
		&r.Score, &r.Lines, &r.Level, &ticks, &r.GameOver, &createdAt,
		&r.EventCount,
	)
	if err != nil {
		return Replay{}, err
	}
	r.Seed = uint64(seed)
	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// ListReplays returns the most recent replays for the given game, newest
// first, without their events. A limit of zero or less means 20.
func (s *Store) ListReplays(gameID string, limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+replayColumns+`
		 FROM replays r
		 WHERE r.game_id = ?
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// LoadReplay returns the replay with the given ID, events included in
// recording order. Returns ErrNotFound if it does not exist.
func (s *Store) LoadReplay(id int64) (*Replay, error) {
	r, err := scanReplay(s.db.QueryRow(
		`SELECT `+replayColumns+` FROM replays r WHERE r.id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay %d: %w", id, err)
	}

	rows, err := s.db.Query(
		"SELECT tick, action FROM replay_events WHERE replay_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	r.Events = make([]Event, 0, r.EventCount)
	for rows.Next() {
		var (
			ev   Event
			tick int64
		)
		if err := rows.Scan(&tick, &ev.Action); err != nil {
			return nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		ev.Tick = uint64(tick)
		r.Events = append(r.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &r, nil
}

// DeleteReplay removes a replay and its events.
// Returns ErrNotFound if the ID does not exist.
func (s *Store) DeleteReplay(id int64) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM replay_events WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over the recorded runs of a game.
type Stats struct {
	GameID     string
	Runs       int
	BestScore  int
	MostLines  int
	LastPlayed time.Time
}

// GetStats returns aggregate statistics for the given game.
func (s *Store) GetStats(gameID string) (*Stats, error) {
	stats := &Stats{GameID: gameID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(lines), 0), MAX(created_at)
		 FROM replays WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.BestScore, &stats.MostLines, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}
