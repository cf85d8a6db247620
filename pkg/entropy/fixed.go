package entropy

import (
	"context"
	"fmt"
	"sync"
)

// FixedSource replays a scripted sequence of words. It exists to make
// engine keying reproducible: expand a seed into words, wrap them in a
// FixedSource, and hand it to an engine constructor.
type FixedSource struct {
	lock  sync.Mutex
	words []uint32
	next  int
}

// NewFixedSource creates a source that yields the given words in order.
func NewFixedSource(words ...uint32) *FixedSource {
	return &FixedSource{words: words}
}

// Word32 returns the next scripted word, or an error once the script is
// exhausted.
func (s *FixedSource) Word32(ctx context.Context) (uint32, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.next >= len(s.words) {
		return 0, fmt.Errorf("fixed entropy source exhausted after %d words", len(s.words))
	}
	w := s.words[s.next]
	s.next++
	return w, nil
}
