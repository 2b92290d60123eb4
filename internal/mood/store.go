package mood

import "sync"

// Data is the full persisted mapping: user id -> ISO day key -> ordered scores.
// Score order is submission order and must never be rearranged.
type Data map[int64]map[string][]float64

// Store holds the in-memory mood data. All access goes through its methods;
// mutations are serialized so concurrent updates from the bot cannot lose appends.
type Store struct {
	mu   sync.RWMutex
	data Data
}

func NewStore(data Data) *Store {
	if data == nil {
		data = make(Data)
	}
	return &Store{data: data}
}

// Scores returns a copy of the score sequence for the given user and day.
// Unknown user or day yields an empty sequence.
func (s *Store) Scores(userID int64, day string) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	days, ok := s.data[userID]
	if !ok {
		return nil
	}
	scores := days[day]
	out := make([]float64, len(scores))
	copy(out, scores)
	return out
}

// Append adds score to the end of the user's sequence for the given day,
// creating intermediate entries as needed, and returns the updated sequence.
func (s *Store) Append(userID int64, day string, score float64) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	days, ok := s.data[userID]
	if !ok {
		days = make(map[string][]float64)
		s.data[userID] = days
	}
	days[day] = append(days[day], score)
	out := make([]float64, len(days[day]))
	copy(out, days[day])
	return out
}

// Users returns the ids of all users with any recorded data.
func (s *Store) Users() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, 0, len(s.data))
	for id := range s.data {
		out = append(out, id)
	}
	return out
}

// Snapshot returns a deep copy safe to hand to Repository.Save while
// other goroutines keep mutating the store.
func (s *Store) Snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Data, len(s.data))
	for id, days := range s.data {
		cp := make(map[string][]float64, len(days))
		for day, scores := range days {
			sc := make([]float64, len(scores))
			copy(sc, scores)
			cp[day] = sc
		}
		out[id] = cp
	}
	return out
}
