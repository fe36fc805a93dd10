package store

import (
	"database/sql"
	"fmt"

	"github.com/connorleisz/emojiTUI/internal/logging"
)

// LastKey is the preference holding the most recently used emoji id
const LastKey = "last"

// Defaults seed the ranking before anything has been used
var Defaults = []string{
	"+1", "grinning", "kissing_heart", "heart_eyes",
	"laughing", "stuck_out_tongue_winking_eye", "sweat_smile", "joy",
	"scream", "disappointed", "unamused", "weary",
	"sob", "sunglasses", "heart", "poop",
}

// Tracker ranks emojis by how often they are used
type Tracker struct {
	db *DB
	// seed is how many defaults were last handed out; they become real
	// counts on the first Add.
	seed int
}

// NewTracker returns a tracker persisting into db
func NewTracker(db *DB) *Tracker {
	return &Tracker{db: db, seed: 4}
}

// Add counts one use of id and remembers it as the last used
func (t *Tracker) Add(id string) error {
	tx, err := t.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning frequency update: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM frequency`).Scan(&n); err != nil {
		return fmt.Errorf("counting frequency rows: %w", err)
	}
	if n == 0 {
		for i := 0; i < t.seed && i < len(Defaults); i++ {
			if _, err := tx.Exec(`INSERT INTO frequency (id, count) VALUES (?, ?)`, Defaults[i], t.seed-i); err != nil {
				return fmt.Errorf("seeding frequency: %w", err)
			}
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO frequency (id, count, used_at)
		 VALUES (?, 1, (SELECT COALESCE(MAX(used_at), 0) + 1 FROM frequency))
		 ON CONFLICT(id) DO UPDATE SET count = count + 1, used_at = excluded.used_at`, id); err != nil {
		return fmt.Errorf("recording %s: %w", id, err)
	}
	if _, err := tx.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, LastKey, id); err != nil {
		return fmt.Errorf("recording last emoji: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing frequency: %w", err)
	}
	return nil
}

// Get returns up to perLine*4 ids, most used first. The last used emoji is
// always included. With no history, the first perLine defaults are returned.
func (t *Tracker) Get(perLine int) []string {
	if perLine <= 0 {
		return nil
	}

	quantity := perLine * 4
	rows, err := t.db.Query(`SELECT id FROM frequency ORDER BY count DESC, used_at DESC, id LIMIT ?`, quantity)
	if err != nil {
		logging.Logger().Warn("reading frequency", "error", err)
		return nil
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			logging.Logger().Warn("scanning frequency", "error", err)
			return nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil && err != sql.ErrNoRows {
		logging.Logger().Warn("iterating frequency", "error", err)
	}

	if len(ids) == 0 {
		n := perLine
		if n > len(Defaults) {
			n = len(Defaults)
		}
		t.seed = n
		return append([]string(nil), Defaults[:n]...)
	}

	if last, ok := t.db.Get(LastKey); ok && !contains(ids, last) {
		if len(ids) >= quantity {
			ids = ids[:len(ids)-1]
		}
		ids = append(ids, last)
	}
	return ids
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
