// Package dashboard keeps a live copy of the leaderboard by polling the API.
package dashboard

import (
	"context"
	"dark_patterns_game/internal/model"
	"sort"
	"sync"
	"time"
)

const (
	DefaultInterval = time.Second
	DefaultTimeout  = 5 * time.Second
)

// Fetcher reads the current leaderboard.
type Fetcher func(ctx context.Context) (*model.ScoreBoard, error)

// Snapshot is the poller's view at one point in time. Board is the last
// successful dataset; Err is set while the latest applied fetch failed.
type Snapshot struct {
	Board     *model.ScoreBoard
	UpdatedAt time.Time
	Err       error
}

// Poller fetches on a fixed interval. Every fetch is numbered when it starts and
// a response is dropped if a newer fetch has already been applied, so slow
// responses never overwrite fresher ones.
type Poller struct {
	fetch    Fetcher
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	mu      sync.Mutex
	started uint64
	applied uint64
	snap    Snapshot
	subs    map[int]chan Snapshot
	nextSub int
}

func NewPoller(fetch Fetcher, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Poller{
		fetch:    fetch,
		interval: interval,
		timeout:  timeout,
		now:      time.Now,
		subs:     make(map[int]chan Snapshot),
	}
}

// Run polls until ctx is cancelled and returns once in-flight fetches have finished.
func (p *Poller) Run(ctx context.Context) {
	var wg sync.WaitGroup
	defer wg.Wait()

	launch := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.poll(ctx)
		}()
	}

	launch()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			launch()
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	p.mu.Lock()
	p.started++
	id := p.started
	p.mu.Unlock()

	fctx, cancel := context.WithTimeout(ctx, p.timeout)
	board, err := p.fetch(fctx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	p.apply(id, board, err)
}

func (p *Poller) apply(id uint64, board *model.ScoreBoard, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if id <= p.applied {
		return
	}
	p.applied = id
	if err != nil {
		p.snap.Err = err
	} else {
		p.snap = Snapshot{Board: board, UpdatedAt: p.now()}
	}

	for _, ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		ch <- p.snap
	}
}

// Snapshot returns the current state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Subscribe returns a channel that receives the latest snapshot after every
// applied update. Slow readers only see the most recent one.
func (p *Poller) Subscribe() (<-chan Snapshot, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	ch := make(chan Snapshot, 1)
	p.subs[id] = ch
	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// RankedEntry is a leaderboard row with its position. Rank 1 is the fastest.
type RankedEntry struct {
	Rank int `json:"rank"`
	model.ScoreEntry
}

// Ranked orders scores fastest first. Equal times keep their input order.
func Ranked(scores []model.ScoreEntry) []RankedEntry {
	out := make([]RankedEntry, len(scores))
	for i, s := range scores {
		out[i] = RankedEntry{ScoreEntry: s}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
