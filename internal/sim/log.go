package sim

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Event is the kind of a decision log entry.
type Event int

const (
	EventChoice         Event = iota // target picked for the cycle
	EventFallback                    // no receiver; the fallback target was used
	EventReceiverChange              // receiver differs from the previous cycle
	EventSearchFallback              // one candidate's line search ran into the sidelines
	EventFactors                     // per-teammate utility breakdown, verbose only
)

var eventNames = [...][2]string{
	EventChoice:         {"pass", "choice"},
	EventFallback:       {"pass", "fallback"},
	EventReceiverChange: {"pass", "receiver_change"},
	EventSearchFallback: {"search", "fallback"},
	EventFactors:        {"utility", "factors"},
}

// Category groups events by the stage that produced them.
func (ev Event) Category() string { return eventNames[ev][0] }

// Key names the event within its category.
func (ev Event) Key() string { return eventNames[ev][1] }

func (ev Event) String() string { return ev.Category() + "/" + ev.Key() }

// Entry is one recorded event of a decision cycle.
type Entry struct {
	Cycle int
	Event Event
	Mate  int     // teammate number, 0 when the event concerns no teammate
	Value string  // human-readable detail
	Num   float64 // utility for choices and factors, step count for search fallbacks
}

// Subject is "#7" for teammate 7 and "--" for events without a teammate.
func (e Entry) Subject() string {
	if e.Mate == 0 {
		return "--"
	}
	return mateLabel(e.Mate)
}

// String formats the entry as a fixed-width log line.
//
//	[C=042] #7   pass      choice           best-passage -> (2600,-900)
func (e Entry) String() string {
	return fmt.Sprintf("[C=%03d] %-4s %-9s %-16s %s",
		e.Cycle, e.Subject(), e.Event.Category(), e.Event.Key(), e.Value)
}

// DecisionLog collects the events of every decision cycle in order.
type DecisionLog struct {
	entries []Entry
	verbose bool
}

// NewDecisionLog creates a log. Verbose logs also keep the per-teammate
// utility breakdown of every cycle.
func NewDecisionLog(verbose bool) *DecisionLog {
	return &DecisionLog{verbose: verbose}
}

// Add records e. Factor entries are dropped unless the log is verbose.
func (l *DecisionLog) Add(e Entry) {
	if e.Event == EventFactors && !l.verbose {
		return
	}
	l.entries = append(l.entries, e)
}

// Verbose reports whether factor entries are kept.
func (l *DecisionLog) Verbose() bool { return l.verbose }

// Entries returns all recorded entries.
func (l *DecisionLog) Entries() []Entry { return l.entries }

// Events returns the entries of one kind in cycle order.
func (l *DecisionLog) Events(ev Event) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Event == ev {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries of kind ev were recorded.
func (l *DecisionLog) Count(ev Event) int {
	n := 0
	for _, e := range l.entries {
		if e.Event == ev {
			n++
		}
	}
	return n
}

// First returns the earliest entry of kind ev.
func (l *DecisionLog) First(ev Event) (Entry, bool) {
	for _, e := range l.entries {
		if e.Event == ev {
			return e, true
		}
	}
	return Entry{}, false
}

// Last returns the most recent entry of kind ev.
func (l *DecisionLog) Last(ev Event) (Entry, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Event == ev {
			return l.entries[i], true
		}
	}
	return Entry{}, false
}

// Format returns the full log as a single string for t.Log output.
func (l *DecisionLog) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary aggregates the pass choices of a range of cycles.
type Summary struct {
	Cycles          int
	Fallbacks       int
	ReceiverChanges int
	SearchFallbacks int
	MeanUtility     float64
	MaxUtility      float64
	Receivers       map[string]int // choices per receiver label
}

// Summary aggregates every cycle in the log.
func (l *DecisionLog) Summary() Summary {
	return l.Window(math.MinInt, math.MaxInt)
}

// Window aggregates the cycles from first to last inclusive.
func (l *DecisionLog) Window(first, last int) Summary {
	s := Summary{Receivers: map[string]int{}}
	total := 0.0
	for _, e := range l.entries {
		if e.Cycle < first || e.Cycle > last {
			continue
		}
		switch e.Event {
		case EventChoice:
			s.Cycles++
			total += e.Num
			s.MaxUtility = math.Max(s.MaxUtility, e.Num)
			if e.Mate != 0 {
				s.Receivers[e.Subject()]++
			}
		case EventFallback:
			s.Fallbacks++
		case EventReceiverChange:
			s.ReceiverChanges++
		case EventSearchFallback:
			s.SearchFallbacks++
		}
	}
	if s.Cycles > 0 {
		s.MeanUtility = total / float64(s.Cycles)
	}
	return s
}

// String renders the summary as a short multi-line report.
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary over %d cycles ---\n", s.Cycles)
	fmt.Fprintf(&sb, "Utility: mean=%.3f  max=%.3f\n", s.MeanUtility, s.MaxUtility)
	fmt.Fprintf(&sb, "Fallbacks: pass=%d  search=%d\n", s.Fallbacks, s.SearchFallbacks)
	fmt.Fprintf(&sb, "Receiver changes: %d\n", s.ReceiverChanges)

	labels := make([]string, 0, len(s.Receivers))
	for k := range s.Receivers {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	if len(labels) == 0 {
		sb.WriteString("Receivers: none\n")
		return sb.String()
	}
	sb.WriteString("Receivers: ")
	for _, k := range labels {
		fmt.Fprintf(&sb, "%s=%d  ", k, s.Receivers[k])
	}
	sb.WriteByte('\n')
	return sb.String()
}
