package mood

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"
)

const dayKeyLayout = "2006-01-02"

var (
	// ErrNotANumber rejects input that does not parse as a real number.
	ErrNotANumber = errors.New("not a number")
	// ErrOutOfRange rejects scores outside [0, 10].
	ErrOutOfRange = errors.New("score out of range")
)

// Accepted is the result of a successful submission: the stored score and
// the updated stats for the day. SaveFailed is set when the in-memory
// append succeeded but persisting it did not.
type Accepted struct {
	Score      float64
	Count      int
	Mean       float64
	SaveFailed bool
}

// Service validates incoming ratings and applies them to the store.
// The day a score is filed under comes from the injected clock at the
// moment of ingestion, so submissions straddling midnight land in
// different day buckets.
type Service struct {
	store *Store
	repo  Repository
	now   func() time.Time
}

func NewService(store *Store, repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, repo: repo, now: now}
}

// DayKey formats t as the ISO calendar date used to file scores.
func DayKey(t time.Time) string { return t.Format(dayKeyLayout) }

// Submit parses rawText as a score, rounds it to one decimal place and
// appends it under the current local day, persisting the store afterwards.
// Invalid input returns ErrNotANumber or ErrOutOfRange; the store is not
// touched in either case.
func (s *Service) Submit(userID int64, rawText string) (Accepted, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(rawText), 64)
	if err != nil {
		return Accepted{}, fmt.Errorf("%w: %q", ErrNotANumber, rawText)
	}
	if score < 0 || score > 10 {
		return Accepted{}, fmt.Errorf("%w: %v", ErrOutOfRange, score)
	}
	score = math.Round(score*10) / 10

	day := DayKey(s.now())
	scores := s.store.Append(userID, day, score)

	acc := Accepted{Score: score, Count: len(scores), Mean: mean(scores)}
	if s.repo != nil {
		if err := s.repo.Save(s.store.Snapshot()); err != nil {
			log.Printf("failed to save mood data: %v", err)
			acc.SaveFailed = true
		}
	}
	return acc, nil
}

// TodayScores returns the current day's sequence for the user together
// with the moment the day was evaluated, for labeling.
func (s *Service) TodayScores(userID int64) ([]float64, time.Time) {
	now := s.now()
	return s.store.Scores(userID, DayKey(now)), now
}

// Users lists every user with recorded data.
func (s *Service) Users() []int64 { return s.store.Users() }

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
