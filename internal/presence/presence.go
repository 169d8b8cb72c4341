package presence

import (
	"time"
)

// State classifies a user from timestamps alone. It is never persisted;
// every observation re-derives it from "now" and the last-seen timestamps,
// so a suspended tab that resumes later classifies correctly without any
// transition history.
type State string

const (
	StateActive  State = "active"
	StateIdle    State = "idle"
	StateOffline State = "offline"
)

// Config holds the presence thresholds. OnlineGap and IdleThreshold answer
// different questions on purpose: "is this client still emitting heartbeats"
// tolerates timer/network jitter (~45s), while "has this user stopped
// interacting" is about raw input silence (60s).
type Config struct {
	HeartbeatInterval time.Duration
	OnlineGap         time.Duration
	IdleThreshold     time.Duration
}

func DefaultConfig() Config {
	return Config{
		HeartbeatInterval: 15 * time.Second,
		OnlineGap:         45 * time.Second,
		IdleThreshold:     60 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = def.HeartbeatInterval
	}
	if c.OnlineGap <= 0 {
		c.OnlineGap = def.OnlineGap
	}
	if c.IdleThreshold <= 0 {
		c.IdleThreshold = def.IdleThreshold
	}
	return c
}

// IsOnline reports whether a user whose last heartbeat landed at lastActive
// should still show as online at now. The boundary is inclusive: exactly
// OnlineGap of silence is still online.
func IsOnline(lastActive, now time.Time, cfg Config) bool {
	if lastActive.IsZero() {
		return false
	}
	return now.Sub(lastActive) <= cfg.withDefaults().OnlineGap
}

// Classify derives the user's state from the last raw interaction. A zero
// lastInteraction means no interaction was ever observed.
func Classify(lastInteraction, now time.Time, cfg Config) State {
	if lastInteraction.IsZero() {
		return StateOffline
	}
	if now.Sub(lastInteraction) > cfg.withDefaults().IdleThreshold {
		return StateIdle
	}
	return StateActive
}

// DateString is the calendar-day key for a DayLog.
func DateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Session is one contiguous interval of detected presence, with ISO-8601
// bounds as they are stored. End >= Start for well-formed sessions.
type Session struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ApplyHeartbeat folds one active heartbeat into the session list: extend the
// last session while the silence stayed within OnlineGap, otherwise open a
// new one. A heartbeat at or before the last recorded end is a no-op
// extension (the clock is not trusted to strictly increase). A last session
// with an unparsable end cannot anchor a gap decision, so a fresh session is
// appended and the corrupt record left in place.
func ApplyHeartbeat(sessions []Session, now time.Time, cfg Config) []Session {
	cfg = cfg.withDefaults()
	if len(sessions) == 0 {
		return append(sessions, Session{Start: FormatTime(now), End: FormatTime(now)})
	}
	last := &sessions[len(sessions)-1]
	end, ok := parseTime(last.End)
	if !ok {
		return append(sessions, Session{Start: FormatTime(now), End: FormatTime(now)})
	}
	if !now.After(end) {
		return sessions
	}
	if now.Sub(end) <= cfg.OnlineGap {
		last.End = FormatTime(now)
		return sessions
	}
	return append(sessions, Session{Start: FormatTime(now), End: FormatTime(now)})
}

// Summary is the aggregate view of one day's sessions.
type Summary struct {
	LoginCount           int     `json:"login_count"`
	TotalDurationMinutes float64 `json:"total_duration_minutes"`
}

// Aggregate reduces a session list to login count and total minutes.
// LoginCount is the raw list length; a session with missing or unparsable
// bounds contributes zero duration but is never dropped, so the count stays
// honest.
func Aggregate(sessions []Session) Summary {
	sum := Summary{LoginCount: len(sessions)}
	var total time.Duration
	for _, s := range sessions {
		start, okStart := parseTime(s.Start)
		end, okEnd := parseTime(s.End)
		if !okStart || !okEnd {
			continue
		}
		d := end.Sub(start)
		if d <= 0 {
			continue
		}
		total += d
	}
	sum.TotalDurationMinutes = total.Minutes()
	return sum
}
