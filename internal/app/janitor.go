package app

import (
    "context"
    "time"

    "go.uber.org/zap"
)

// Sweep evicts sessions idle for longer than the TTL and closes their
// subscribers. It returns the number of evicted sessions.
func (s *Service) Sweep() int {
    if s.ttl <= 0 {
        return 0
    }
    var evicted []string

    s.mu.Lock()
    cutoff := s.now().Add(-s.ttl)
    for id, ss := range s.sessions {
        if ss.Updated.After(cutoff) {
            continue
        }
        delete(s.sessions, id)
        for sub := range s.subs[id] {
            sub.close()
        }
        delete(s.subs, id)
        evicted = append(evicted, id)
    }
    s.mu.Unlock()

    if len(evicted) > 0 {
        s.log.Info("evicted idle sessions", zap.Int("count", len(evicted)), zap.Duration("ttl", s.ttl))
    }
    return len(evicted)
}

// RunJanitor sweeps every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
    if s.ttl <= 0 || interval <= 0 {
        return
    }
    ticker := time.NewTicker(interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            s.Sweep()
        }
    }
}
