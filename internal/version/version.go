package version

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
)

// Задаются через -ldflags "-X rpg-core/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// SaveFormat - версия формата .sav, которую пишет и читает эта сборка.
const SaveFormat uint32 = 1

// buildEpoch - день начала проекта, номер сборки считается в днях от него.
var buildEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// Build - метаданные сборки. Commit без ldflags берётся из vcs-настроек бинарника.
type Build struct {
	Number     int
	Date       string
	Commit     string
	Branch     string
	CI         string
	Dirty      bool
	GoVersion  string
	SaveFormat uint32
	Err        error
}

// BuildNumber - число дней от buildEpoch до date.
func BuildNumber(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", date)
	}
	// Часы, а не AddDate: обе даты в UTC, переходов времени нет
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

func Current() Build {
	b := Build{
		Date:       BuildDate,
		Commit:     BuildCommit,
		Branch:     BuildBranch,
		CI:         BuildCI,
		SaveFormat: SaveFormat,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		b.GoVersion = info.GoVersion
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = s.Value
				}
			case "vcs.modified":
				b.Dirty = s.Value == "true"
			}
		}
	}
	b.Number, b.Err = BuildNumber(b.Date)
	return b
}

// Fields - метаданные для стартовой строки лога.
func (b Build) Fields() logrus.Fields {
	f := logrus.Fields{
		"commit":      coalesce(b.Commit, "unknown"),
		"branch":      coalesce(b.Branch, "unknown"),
		"ci":          coalesce(b.CI, "local"),
		"save_format": b.SaveFormat,
	}
	if b.Err == nil {
		f["build"] = b.Number
	}
	if b.Dirty {
		f["dirty"] = true
	}
	return f
}

func (b Build) String() string {
	if b.Err != nil {
		return fmt.Sprintf("rpg-core build unknown (%v) save format v%d", b.Err, b.SaveFormat)
	}
	return fmt.Sprintf("rpg-core build %d (%s) commit[%s] branch[%s] ci[%s] save format v%d",
		b.Number, b.Date,
		coalesce(b.Commit, "unknown"),
		coalesce(b.Branch, "unknown"),
		coalesce(b.CI, "local"),
		b.SaveFormat,
	)
}

// String - Current().String()
func String() string {
	return Current().String()
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
