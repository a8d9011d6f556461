package database

import (
	"errors"
	"fmt"
	"mmr-tracker/internal/domain"

	"github.com/mattn/go-sqlite3"
)

// MapError converts driver-level serialization failures into
// domain.ErrConflict so callers can retry the whole unit of work. Anything
// else is wrapped as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
	}
	return err
}
