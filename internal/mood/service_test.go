package mood

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"
)

type fakeRepo struct {
	mu      sync.Mutex
	saved   []Data
	saveErr error
}

func (r *fakeRepo) Load() (Data, error) { return make(Data), nil }
func (r *fakeRepo) Save(d Data) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, d)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var noon = time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)

func TestSubmit_AcceptsAndReportsStats(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(NewStore(nil), repo, fixedClock(noon))

	if _, err := svc.Submit(42, "5"); err != nil {
		t.Fatalf("submit 5: %v", err)
	}
	acc, err := svc.Submit(42, "8")
	if err != nil {
		t.Fatalf("submit 8: %v", err)
	}

	if acc.Score != 8 || acc.Count != 2 || acc.Mean != 6.5 {
		t.Fatalf("unexpected result: %+v", acc)
	}
	if acc.SaveFailed {
		t.Fatalf("save reported failed: %+v", acc)
	}
	if len(repo.saved) != 2 {
		t.Fatalf("want a save per submit, got %d", len(repo.saved))
	}
	if got := repo.saved[1][42]["2025-03-01"]; !reflect.DeepEqual(got, []float64{5, 8}) {
		t.Fatalf("persisted sequence mismatch: %v", got)
	}
}

func TestSubmit_RoundsToOneDecimal(t *testing.T) {
	svc := NewService(NewStore(nil), &fakeRepo{}, fixedClock(noon))

	acc, err := svc.Submit(1, "7.449999")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if math.Abs(acc.Score-7.4) > 1e-9 {
		t.Fatalf("want 7.4, got %v", acc.Score)
	}
}

func TestSubmit_RejectsOutOfRange(t *testing.T) {
	store := NewStore(nil)
	repo := &fakeRepo{}
	svc := NewService(store, repo, fixedClock(noon))

	for _, raw := range []string{"11", "-1", "10.1"} {
		if _, err := svc.Submit(1, raw); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("submit %q: want ErrOutOfRange, got %v", raw, err)
		}
	}
	if got := store.Scores(1, "2025-03-01"); len(got) != 0 {
		t.Fatalf("store mutated by rejected input: %v", got)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("save occurred for rejected input")
	}
}

func TestSubmit_RejectsNonNumeric(t *testing.T) {
	store := NewStore(nil)
	svc := NewService(store, &fakeRepo{}, fixedClock(noon))

	if _, err := svc.Submit(1, "abc"); !errors.Is(err, ErrNotANumber) {
		t.Fatalf("want ErrNotANumber, got %v", err)
	}
	if got := store.Scores(1, "2025-03-01"); len(got) != 0 {
		t.Fatalf("store mutated by rejected input: %v", got)
	}
}

func TestSubmit_BoundaryValuesAccepted(t *testing.T) {
	svc := NewService(NewStore(nil), &fakeRepo{}, fixedClock(noon))

	for _, raw := range []string{"0", "10"} {
		if _, err := svc.Submit(1, raw); err != nil {
			t.Fatalf("submit %q: %v", raw, err)
		}
	}
}

func TestSubmit_MidnightStraddleUsesSeparateDays(t *testing.T) {
	store := NewStore(nil)
	clock := time.Date(2025, 3, 1, 23, 59, 30, 0, time.Local)
	now := func() time.Time { return clock }
	svc := NewService(store, &fakeRepo{}, now)

	if _, err := svc.Submit(1, "5"); err != nil {
		t.Fatalf("submit before midnight: %v", err)
	}
	clock = clock.Add(time.Minute)
	if _, err := svc.Submit(1, "8"); err != nil {
		t.Fatalf("submit after midnight: %v", err)
	}

	if got := store.Scores(1, "2025-03-01"); !reflect.DeepEqual(got, []float64{5}) {
		t.Fatalf("first day: want [5], got %v", got)
	}
	if got := store.Scores(1, "2025-03-02"); !reflect.DeepEqual(got, []float64{8}) {
		t.Fatalf("second day: want [8], got %v", got)
	}
}

func TestSubmit_SaveFailureKeepsMemoryAndFlags(t *testing.T) {
	store := NewStore(nil)
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	svc := NewService(store, repo, fixedClock(noon))

	acc, err := svc.Submit(1, "5")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !acc.SaveFailed {
		t.Fatalf("save failure not flagged: %+v", acc)
	}
	if got := store.Scores(1, "2025-03-01"); !reflect.DeepEqual(got, []float64{5}) {
		t.Fatalf("in-memory state lost on save failure: %v", got)
	}
}

func TestSubmit_ConcurrentSubmitsLoseNoUpdates(t *testing.T) {
	store := NewStore(nil)
	svc := NewService(store, &fakeRepo{}, fixedClock(noon))

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(1, "5"); err != nil {
				t.Errorf("submit: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := store.Scores(1, "2025-03-01"); len(got) != n {
		t.Fatalf("lost updates: want %d scores, got %d", n, len(got))
	}
}

func TestTodayScores(t *testing.T) {
	store := NewStore(Data{1: {"2025-03-01": {5, 8}}})
	svc := NewService(store, nil, fixedClock(noon))

	scores, day := svc.TodayScores(1)
	if !reflect.DeepEqual(scores, []float64{5, 8}) {
		t.Fatalf("want [5 8], got %v", scores)
	}
	if DayKey(day) != "2025-03-01" {
		t.Fatalf("unexpected day: %v", day)
	}

	if scores, _ := svc.TodayScores(2); len(scores) != 0 {
		t.Fatalf("unknown user: want empty, got %v", scores)
	}
}
