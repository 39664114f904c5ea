package snapshots

import (
	"fmt"
	"path/filepath"
)

const weeksDir = "weeks"

// WeekSnapshotPath builds the path to an archived week.
func WeekSnapshotPath(basePath, weekID string) string {
	return filepath.Join(basePath, weeksDir, fmt.Sprintf("%s.json", weekID))
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, "manifest.json")
}
