package state

import (
	"database/sql"
	"fmt"
)

// migrations run in order; user_version records how many have run.
var migrations = []string{
	`CREATE TABLE volume (
		id    INTEGER PRIMARY KEY CHECK (id = 1),
		level REAL    NOT NULL,
		muted INTEGER NOT NULL
	)`,
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA takes no placeholders.
		if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return err
		}
	}
	return nil
}
