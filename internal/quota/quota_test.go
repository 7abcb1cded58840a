package quota

import (
	"sync"
	"testing"
	"time"
)

func TestTryConsumeRespectsCap(t *testing.T) {
	tr := NewTracker(3, 50)

	granted := 0
	for i := 0; i < 10; i++ {
		if tr.TryConsume(KindDM) {
			granted++
		}
	}

	if granted != 3 {
		t.Errorf("expected 3 permits within the window, got %d", granted)
	}
	if left := tr.Remaining(KindDM); left != 0 {
		t.Errorf("expected 0 remaining, got %d", left)
	}
}

func TestWindowResets(t *testing.T) {
	tr := NewTracker(2, 50)

	current := time.Now()
	tr.now = func() time.Time { return current }

	if !tr.TryConsume(KindDM) || !tr.TryConsume(KindDM) {
		t.Fatal("expected first two permits to be granted")
	}
	if tr.TryConsume(KindDM) {
		t.Fatal("expected third permit to be denied")
	}

	// Advance past the hourly window: counter must reset to zero.
	current = current.Add(time.Hour + time.Second)

	if left := tr.Remaining(KindDM); left != 2 {
		t.Errorf("expected a fresh window of 2, got %d", left)
	}
	if !tr.TryConsume(KindDM) {
		t.Error("expected permit after window reset")
	}
}

func TestKindsAreIndependent(t *testing.T) {
	tr := NewTracker(1, 1)

	if !tr.TryConsume(KindDM) {
		t.Fatal("expected DM permit")
	}
	if !tr.TryConsume(KindOutreach) {
		t.Error("outreach window should not be affected by DM sends")
	}
	if tr.TryConsume(KindOutreach) {
		t.Error("expected outreach quota exhausted")
	}
}

func TestConcurrentConsumersNeverOvershoot(t *testing.T) {
	const limit = 25
	tr := NewTracker(limit, limit)

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tr.TryConsume(KindDM) {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if granted != limit {
		t.Errorf("expected exactly %d grants under concurrency, got %d", limit, granted)
	}
}
