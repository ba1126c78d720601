package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Best is the best recorded session result.
type Best struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// Better reports whether score/total beats b: a higher score, or an equal
// score over more questions.
func (b *Best) Better(score, total int) bool {
	if b == nil {
		return true
	}
	if score != b.Score {
		return score > b.Score
	}
	return total > b.Total
}

// Attempt is one finalized session in the history log.
type Attempt struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	Mode      string    `json:"mode"`
	Focus     string    `json:"focus"`
}

// Percent returns the attempt's score as a percentage.
func (a Attempt) Percent() float64 {
	if a.Total <= 0 {
		return 0
	}
	return float64(a.Score) / float64(a.Total) * 100
}

// Stats is the persisted blob: best result, attempt history, and the
// per-category profile.
type Stats struct {
	Best        *Best     `json:"best"`
	History     []Attempt `json:"history"`
	PerCategory Profile   `json:"perCategory"`
}

// DefaultStats returns fresh stats seeded from baseline.
func DefaultStats(baseline Profile) *Stats {
	if baseline == nil {
		baseline = DefaultBaseline()
	}
	return &Stats{
		History:     []Attempt{},
		PerCategory: baseline.Clone(),
	}
}

// Clone returns a deep copy.
func (s *Stats) Clone() *Stats {
	out := &Stats{
		History:     append([]Attempt{}, s.History...),
		PerCategory: s.PerCategory.Clone(),
	}
	if s.Best != nil {
		b := *s.Best
		out.Best = &b
	}
	return out
}

// RecordBest replaces the best result when score/total beats it.
// Returns true if the best changed.
func (s *Stats) RecordBest(score, total int) bool {
	if total <= 0 || !s.Best.Better(score, total) {
		return false
	}
	s.Best = &Best{Score: score, Total: total}
	return true
}

// Recent returns up to n of the newest attempts, newest first.
func (s *Stats) Recent(n int) []Attempt {
	out := make([]Attempt, 0, n)
	for i := len(s.History) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.History[i])
	}
	return out
}

// Encode serializes the stats blob.
func Encode(s *Stats) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	return data, nil
}

// Decode parses a stats blob and checks it for consistency.
// A nil PerCategory or History decodes as empty.
func Decode(data []byte) (*Stats, error) {
	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	if s.PerCategory == nil {
		return nil, errors.New("missing per-category stats")
	}
	if s.History == nil {
		s.History = []Attempt{}
	}
	for c, st := range s.PerCategory {
		if !st.Valid() {
			return nil, fmt.Errorf("invalid stat for %q: %d/%d", c, st.Correct, st.Total)
		}
	}
	if s.Best != nil && (s.Best.Score < 0 || s.Best.Score > s.Best.Total) {
		return nil, fmt.Errorf("invalid best: %d/%d", s.Best.Score, s.Best.Total)
	}
	return &s, nil
}
