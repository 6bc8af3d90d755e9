package usecase

import (
	"sync"
	"time"
)

// DefaultSequenceTTL is how long an idle key is remembered. It must
// outlast the slowest generation request.
const DefaultSequenceTTL = 15 * time.Minute

type sequenceEntry struct {
	seq     uint64
	touched time.Time
}

// Sequencer hands out monotonically increasing sequence numbers per key
// and tells whether a number is still the latest issued for its key. It
// lets a slow request notice that a newer one made its result obsolete.
// Keys not given a new number within the TTL are forgotten.
type Sequencer struct {
	mu        sync.Mutex
	latest    map[string]sequenceEntry
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewSequencer returns an empty Sequencer that forgets keys idle for
// longer than ttl. A non-positive ttl uses DefaultSequenceTTL.
func NewSequencer(ttl time.Duration) *Sequencer {
	if ttl <= 0 {
		ttl = DefaultSequenceTTL
	}
	s := &Sequencer{
		latest: make(map[string]sequenceEntry),
		ttl:    ttl,
		now:    time.Now,
	}
	s.lastSweep = s.now()
	return s
}

// Next issues the next sequence number for key.
func (s *Sequencer) Next(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.ttl {
		s.sweep(now)
	}
	e := s.latest[key]
	e.seq++
	e.touched = now
	s.latest[key] = e
	return e.seq
}

// IsLatest reports whether seq is the most recent number issued for key.
// A forgotten key has no latest number.
func (s *Sequencer) IsLatest(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.latest[key]
	return ok && e.seq == seq
}

// Len returns the number of remembered keys.
func (s *Sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.latest)
}

func (s *Sequencer) sweep(now time.Time) {
	for k, e := range s.latest {
		if now.Sub(e.touched) >= s.ttl {
			delete(s.latest, k)
		}
	}
	s.lastSweep = now
}
