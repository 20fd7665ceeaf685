package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func identity(s string) string { return s }

func TestCollection_FetchAll_ReplacesItems(t *testing.T) {
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}, identity)

	if err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	loading, errMsg := c.Status()
	if loading {
		t.Error("expected loading to be cleared")
	}
	if errMsg != "" {
		t.Errorf("expected empty error message, got %q", errMsg)
	}
}

func TestCollection_FetchAll_EmptyResultIsSuccess(t *testing.T) {
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		return nil, nil
	}, identity)

	if err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(c.Items()) != 0 {
		t.Errorf("expected empty collection, got %v", c.Items())
	}
	loading, errMsg := c.Status()
	if loading || errMsg != "" {
		t.Errorf("empty result must read as success, got loading=%v err=%q", loading, errMsg)
	}
}

func TestCollection_FetchAll_ErrorKeepsOldItems(t *testing.T) {
	fetchErr := errors.New("connection refused")
	failing := false
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		if failing {
			return nil, fetchErr
		}
		return []string{"a"}, nil
	}, identity)

	if err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	failing = true
	if err := c.FetchAll(context.Background()); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	if len(c.Items()) != 1 {
		t.Errorf("expected stale items preserved on error, got %v", c.Items())
	}
	loading, errMsg := c.Status()
	if loading {
		t.Error("expected loading cleared after failure")
	}
	if errMsg != fetchErr.Error() {
		t.Errorf("expected error message %q, got %q", fetchErr.Error(), errMsg)
	}
}

func TestCollection_FetchAll_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	first := true
	var mu sync.Mutex

	c := NewCollection(func(ctx context.Context) ([]string, error) {
		mu.Lock()
		mine := first
		first = false
		mu.Unlock()
		if mine {
			<-release
			return []string{"old"}, nil
		}
		return []string{"new"}, nil
	}, identity)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.FetchAll(context.Background())
	}()

	// Wait until the first fetch is in flight, then dispatch a second one.
	for {
		mu.Lock()
		started := !first
		mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	close(release)
	wg.Wait()

	items := c.Items()
	if len(items) != 1 || items[0] != "new" {
		t.Errorf("expected the newer response to win, got %v", items)
	}
}

func TestCollection_FetchAll_StaleCompletionKeepsLoading(t *testing.T) {
	gates := []chan struct{}{make(chan struct{}), make(chan struct{})}
	var mu sync.Mutex
	calls := 0

	c := NewCollection(func(ctx context.Context) ([]string, error) {
		mu.Lock()
		idx := calls
		calls++
		mu.Unlock()
		<-gates[idx]
		if idx == 0 {
			return []string{"old"}, nil
		}
		return []string{"new"}, nil
	}, identity)

	waitForCalls := func(n int) {
		for {
			mu.Lock()
			started := calls >= n
			mu.Unlock()
			if started {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_ = c.FetchAll(context.Background())
	}()
	waitForCalls(1)

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		_ = c.FetchAll(context.Background())
	}()
	waitForCalls(2)

	// Let the stale fetch finish while the newer one is still in flight.
	close(gates[0])
	<-firstDone

	loading, _ := c.Status()
	if !loading {
		t.Error("expected loading to stay set while the newer fetch is in flight")
	}

	close(gates[1])
	<-secondDone

	loading, _ = c.Status()
	if loading {
		t.Error("expected loading cleared once the newest fetch finished")
	}
	items := c.Items()
	if len(items) != 1 || items[0] != "new" {
		t.Errorf("expected the newer response to win, got %v", items)
	}
}

func TestCollection_FetchAll_CancelledContextDoesNotMutate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		cancel()
		return []string{"late"}, nil
	}, identity)

	if err := c.FetchAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if len(c.Items()) != 0 {
		t.Errorf("cancelled fetch must not mutate the cache, got %v", c.Items())
	}
	loading, _ := c.Status()
	if loading {
		t.Error("expected loading cleared after cancellation")
	}
}

func TestCollection_ReplaceByID(t *testing.T) {
	type record struct{ ID, Name string }
	c := NewCollection(func(ctx context.Context) ([]record, error) {
		return []record{{"1", "one"}, {"2", "two"}}, nil
	}, func(r record) string { return r.ID })

	if err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	if !c.ReplaceByID(record{"2", "TWO"}) {
		t.Fatal("expected replacement to report success")
	}
	if c.ReplaceByID(record{"9", "nine"}) {
		t.Error("expected unknown key to report failure")
	}

	got, ok := c.Get("2")
	if !ok || got.Name != "TWO" {
		t.Errorf("expected updated record, got %+v ok=%v", got, ok)
	}
	other, _ := c.Get("1")
	if other.Name != "one" {
		t.Errorf("expected untouched record, got %+v", other)
	}
}
