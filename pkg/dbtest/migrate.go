package dbtest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
)

// MigrateFromFile executes all SQL queries from the files over a database
// connection. Migrations must be idempotent: every test package runs them.
func MigrateFromFile(db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fileBytes, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = db.Exec(string(fileBytes)); err != nil {
			return fmt.Errorf("db.Exec(%s): %w", fileName, err)
		}
	}

	return nil
}

// Truncate empties the tables in one statement, so foreign keys between them
// do not dictate the order.
func Truncate(ctx context.Context, db *sqlx.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	if _, err := db.ExecContext(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" CASCADE"); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}
