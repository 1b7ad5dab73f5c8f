package game

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation.
type SimLogEntry struct {
	Tick     int
	Entity   string  // entity name e.g. "player", "keeper-left", or "--" for global events
	Side     string  // "home", "away", or "--"
	Category string  // possession, ball, goal, bot, keeper, script, round, match, level
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] defender     possession change          none → defender (contact)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-12s %-10s %-14s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless simulation.
// Unlike EventLog (UI ring-buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether per-tick entries are kept.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Add records a new entry.
func (sl *SimLog) Add(tick int, entity, side, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Entity:   entity,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, entity, side, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, entity, side, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Match yields entries in order whose category and key equal the arguments
// and whose value contains substr. Empty arguments match anything.
func (sl *SimLog) Match(category, key, substr string) iter.Seq[SimLogEntry] {
	return func(yield func(SimLogEntry) bool) {
		for _, e := range sl.entries {
			if (category != "" && e.Category != category) ||
				(key != "" && e.Key != key) ||
				(substr != "" && !strings.Contains(e.Value, substr)) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Filter collects the entries matching category and key.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return slices.Collect(sl.Match(category, key, ""))
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for range sl.Match(category, key, "") {
		n++
	}
	return n
}

// LastOf returns the most recent entry matching category+key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	var last SimLogEntry
	found := false
	for e := range sl.Match(category, key, "") {
		last, found = e, true
	}
	return last, found
}

// HasEntry reports whether any entry matches category, key and value substring.
func (sl *SimLog) HasEntry(category, key, substr string) bool {
	for range sl.Match(category, key, substr) {
		return true
	}
	return false
}

// Format renders the whole log, one entry per line.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable snapshot of the match.
func (sl *SimLog) Summary(s *State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d (%s) ---\n", s.Tick(), s.Mode())
	fmt.Fprintf(&sb, "Score: home=%d  away=%d\n", s.Score().Home, s.Score().Away)
	fmt.Fprintf(&sb, "Ball: (%.0f,%.0f) possessor=%s animating=%v\n",
		s.Ball().X, s.Ball().Y, s.Ball().Possessor, s.Animating())

	for id := EntityPlayer; id < entityCount; id++ {
		e := s.Entity(id)
		if e == nil {
			continue
		}
		fmt.Fprintf(&sb, "%-12s (%.0f,%.0f)\n", id, e.X, e.Y)
	}

	counts := map[string]int{}
	for _, e := range sl.entries {
		counts[e.Category]++
	}
	sb.WriteString("Events: ")
	for _, c := range []string{"possession", "ball", "goal", "bot", "keeper", "script", "round"} {
		if n := counts[c]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", c, n)
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}
