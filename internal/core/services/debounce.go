package services

import (
	"context"
	"sync"
	"time"

	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
)

// DebounceEvents coalesces bursts of change events per blob name.
// Editors and copies produce several write notifications for one save;
// each would trigger a full re-index, the early ones against a
// half-written file. An event is forwarded only after its name has been
// quiet for the given delay, the last event for a name winning. The
// returned channel closes once the input channel closes and every
// pending event has been flushed.
func DebounceEvents(ctx context.Context, in <-chan driven.BlobEvent, delay time.Duration) <-chan driven.BlobEvent {
	out := make(chan driven.BlobEvent)

	go func() {
		defer close(out)

		var mu sync.Mutex
		var wg sync.WaitGroup
		timers := make(map[string]*time.Timer)

		for ev := range in {
			ev := ev
			mu.Lock()
			if t, ok := timers[ev.Name]; ok && t.Stop() {
				wg.Done()
			}
			wg.Add(1)
			timers[ev.Name] = time.AfterFunc(delay, func() {
				defer wg.Done()
				mu.Lock()
				delete(timers, ev.Name)
				mu.Unlock()
				select {
				case out <- ev:
				case <-ctx.Done():
				}
			})
			mu.Unlock()
		}
		wg.Wait()
	}()

	return out
}
