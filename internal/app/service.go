package app

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "github.com/jaminalder/tictactoe-history/internal/domain"
)

// Errors exposed by the service layer.
var (
    ErrNotFound = errors.New("game not found")
)

// Session is the in-memory state tracked per browser game.
type Session struct {
    ID      string
    Game    domain.Game
    Created time.Time
    Updated time.Time
}

// Options configure a Service.
type Options struct {
    Logger *zap.Logger
    // Renderer encodes the payload broadcast to subscribers after a change.
    Renderer func(Session) []byte
    // LockHistory is copied into every new game.
    LockHistory bool
    // TTL evicts sessions idle for longer. Zero keeps them forever.
    TTL time.Duration
    Now func() time.Time
}

// subscriber channels are only sent on and closed while Service.mu is held.
type subscriber struct {
    ch        chan []byte
    done      chan struct{}
    closeOnce sync.Once
}

func newSubscriber() *subscriber {
    return &subscriber{ch: make(chan []byte, 1), done: make(chan struct{})}
}

func (s *subscriber) close() {
    s.closeOnce.Do(func() {
        close(s.ch)
        close(s.done)
    })
}

// Service owns all sessions and applies every event to them.
type Service struct {
    mu       sync.Mutex
    sessions map[string]*Session
    subs     map[string]map[*subscriber]struct{}
    render   func(Session) []byte
    log      *zap.Logger
    lock     bool
    ttl      time.Duration
    now      func() time.Time
}

func nopRenderer(Session) []byte { return nil }

// NewService creates a service with defaults for unset options.
func NewService(opts Options) *Service {
    s := &Service{
        sessions: make(map[string]*Session),
        subs:     make(map[string]map[*subscriber]struct{}),
        render:   opts.Renderer,
        log:      opts.Logger,
        lock:     opts.LockHistory,
        ttl:      opts.TTL,
        now:      opts.Now,
    }
    if s.render == nil {
        s.render = nopRenderer
    }
    if s.log == nil {
        s.log = zap.NewNop()
    }
    if s.now == nil {
        s.now = time.Now
    }
    return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(Session) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = nopRenderer
        return
    }
    s.render = renderer
}

// CreateGame registers a new session holding the initial game.
func (s *Service) CreateGame() (*Session, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    id := uuid.NewString()
    now := s.now()
    g := domain.NewGame()
    g.LockHistory = s.lock
    ss := &Session{ID: id, Game: g, Created: now, Updated: now}
    s.sessions[id] = ss
    s.log.Debug("session created", zap.String("session", id))
    cp := *ss
    return &cp, nil
}

// Get returns a copy of the session if present.
func (s *Service) Get(id string) (*Session, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    ss, ok := s.sessions[id]
    if !ok {
        return nil, false
    }
    cp := *ss
    return &cp, true
}

// Len is the number of live sessions.
func (s *Service) Len() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.sessions)
}

// Dispatch applies ev to the session and broadcasts the result when the
// game changed. Rejected moves are not errors: the unchanged session is
// returned with changed == false.
func (s *Service) Dispatch(id string, ev domain.Event) (*Session, bool, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    ss, ok := s.sessions[id]
    if !ok {
        return nil, false, ErrNotFound
    }
    if err := domain.Validate(ss.Game, ev); err != nil {
        return nil, false, fmt.Errorf("session %s: %w", id, err)
    }
    ss.Updated = s.now()
    next, changed := domain.Apply(ss.Game, ev)
    if !changed {
        cp := *ss
        s.log.Debug("event rejected", zap.String("session", id), zap.String("event", fmt.Sprintf("%T", ev)))
        return &cp, false, nil
    }
    // Replace the game wholesale; readers hold their own copies.
    ss.Game = next

    cp := *ss
    s.broadcastLocked(id, s.render(cp))
    return &cp, true, nil
}

// broadcastLocked hands payload to every subscriber of id without blocking.
// Subscribers whose buffer is still full are closed and removed.
func (s *Service) broadcastLocked(id string, payload []byte) {
    set := s.subs[id]
    dropped := 0
    for sub := range set {
        select {
        case sub.ch <- payload:
        default:
            delete(set, sub)
            sub.close()
            dropped++
        }
    }
    if len(set) == 0 {
        delete(s.subs, id)
    }
    if dropped > 0 {
        s.log.Debug("dropped slow subscribers", zap.String("session", id), zap.Int("count", dropped))
    }
}

// Subscribe registers a subscriber for a session. The channel is closed when
// ctx ends, when unsubscribe is called, or when the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.sessions[id]; !ok {
        return nil, nil, ErrNotFound
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := newSubscriber()
    set[sub] = struct{}{}

    unsub := func() {
        s.mu.Lock()
        defer s.mu.Unlock()
        if set, ok := s.subs[id]; ok {
            delete(set, sub)
            if len(set) == 0 {
                delete(s.subs, id)
            }
        }
        sub.close()
    }
    go func() {
        select {
        case <-ctx.Done():
            unsub()
        case <-sub.done:
        }
    }()
    return sub.ch, unsub, nil
}
