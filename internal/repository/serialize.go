package repository

import (
	"strings"
)

// Rosters are stored the way the schema defines them: a comma-joined list
// of ids, order preserved.

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func splitIDs(serial string) []string {
	if serial == "" {
		return []string{}
	}
	return strings.Split(serial, ",")
}
