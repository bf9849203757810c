// Package severity buckets log lines by the level words they contain.
package severity

import "regexp"

// Level is a coarse severity bucket used for display coloring.
type Level int

const (
	None Level = iota
	Debug
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Info:
		return "info"
	case Debug:
		return "debug"
	default:
		return "none"
	}
}

// Checked in this order; the first hit wins.
var rules = []struct {
	level Level
	re    *regexp.Regexp
}{
	{Error, regexp.MustCompile(`(?i)\b(?:error|fatal|failed|exception)\b`)},
	{Warn, regexp.MustCompile(`(?i)\b(?:warn|warning|caution)\b`)},
	{Info, regexp.MustCompile(`(?i)\b(?:info|information)\b`)},
	{Debug, regexp.MustCompile(`(?i)\b(?:debug|trace)\b`)},
}

// Classify returns the highest-priority level whose terms appear in line as
// whole words, or None.
func Classify(line string) Level {
	for _, r := range rules {
		if r.re.MatchString(line) {
			return r.level
		}
	}
	return None
}
