package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/utils/errutil"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
)

// ErrCorpusNotLoaded is returned by Corpus before the first successful refresh
var ErrCorpusNotLoaded = goerr.New("corpus has not been loaded yet")

type corpusSnapshot struct {
	cases    []*model.Case
	loadedAt time.Time
}

// CorpusRefreshWorker keeps an in-memory snapshot of the case base and reloads it
// periodically. Readers always see a complete snapshot; a failed reload keeps the
// previous one.
type CorpusRefreshWorker struct {
	repo     interfaces.CaseRepository
	interval time.Duration
	snapshot atomic.Pointer[corpusSnapshot]

	running  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewCorpusRefreshWorker creates a worker. An interval of zero or less disables
// periodic reloading.
func NewCorpusRefreshWorker(repo interfaces.CaseRepository, interval time.Duration) *CorpusRefreshWorker {
	return &CorpusRefreshWorker{
		repo:     repo,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start loads the corpus once and then keeps refreshing it in the background.
// Unlike later refreshes, a failure of the initial load is returned.
func (w *CorpusRefreshWorker) Start(ctx context.Context) error {
	if err := w.Refresh(ctx); err != nil {
		return goerr.Wrap(err, "initial corpus load failed")
	}

	if w.interval <= 0 {
		logging.From(ctx).Info("Corpus refresh disabled")
		return nil
	}

	logging.From(ctx).Info("Corpus refresh worker starting", "interval", w.interval.String())
	w.running = true
	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *CorpusRefreshWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.running {
			<-w.doneCh
		}
		logging.Default().Info("Corpus refresh worker stopped")
	})
}

func (w *CorpusRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				_ = errutil.Handle(ctx, err, "corpus refresh failed, keeping previous snapshot")
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.From(ctx).Info("Corpus refresh worker context cancelled")
			return
		}
	}
}

// Refresh reloads the corpus and swaps the snapshot on success
func (w *CorpusRefreshWorker) Refresh(ctx context.Context) error {
	startTime := time.Now()

	cases, err := w.repo.List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list cases")
	}
	if cases == nil {
		cases = []*model.Case{}
	}

	w.snapshot.Store(&corpusSnapshot{cases: cases, loadedAt: time.Now().UTC()})

	logging.From(ctx).Info("Corpus refreshed",
		"cases", len(cases),
		"duration", time.Since(startTime).String())
	return nil
}

// Corpus returns the current snapshot. The returned cases are shared with other
// readers and must not be modified.
func (w *CorpusRefreshWorker) Corpus(ctx context.Context) ([]*model.Case, error) {
	snap := w.snapshot.Load()
	if snap == nil {
		return nil, ErrCorpusNotLoaded
	}
	return snap.cases, nil
}

// LoadedAt returns when the current snapshot was loaded, or the zero time
func (w *CorpusRefreshWorker) LoadedAt() time.Time {
	snap := w.snapshot.Load()
	if snap == nil {
		return time.Time{}
	}
	return snap.loadedAt
}
