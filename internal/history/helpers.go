package history

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run      Run
		started  string
		finished sql.NullString
		status   string
	)
	if err := scanner.Scan(&run.ID, &started, &finished, &run.Root, &run.Engine, &run.Model,
		&status, &run.Total, &run.Succeeded, &run.Failed); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Status = RunStatus(status)
	if ts, err := parseTimeString(started); err == nil {
		run.StartedAt = ts
	}
	if finished.Valid {
		if ts, err := parseTimeString(finished.String); err == nil {
			run.FinishedAt = &ts
		}
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
