package service

import (
	"context"
	"dark_patterns_game/internal/dashboard"
	"sync"
	"time"
)

// LeaderboardFeed polls the score service in-process so that live clients
// share one query per interval instead of each polling the API.
type LeaderboardFeed struct {
	Poller *dashboard.Poller

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLeaderboardFeed(scores *ScoreService, interval time.Duration) *LeaderboardFeed {
	return &LeaderboardFeed{
		Poller: dashboard.NewPoller(scores.ListScoresWithStatistics, interval, dashboard.DefaultTimeout),
	}
}

func (f *LeaderboardFeed) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.done = make(chan struct{})
	go func() {
		defer close(f.done)
		f.Poller.Run(ctx)
	}()
}

// Stop cancels polling and waits for the last fetch to return.
func (f *LeaderboardFeed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel == nil {
		return
	}
	f.cancel()
	<-f.done
	f.cancel = nil
}
