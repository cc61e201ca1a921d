package web

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "go.uber.org/zap"

    "github.com/jaminalder/tictactoe-history/internal/app"
)

const defaultHeartbeat = 15 * time.Second

// Options configure the HTTP handler.
type Options struct {
    Logger    *zap.Logger
    Heartbeat time.Duration
}

// NewServer wires routes and returns an http.Handler. It also installs the
// board renderer on s so event streams receive rendered fragments.
func NewServer(s *app.Service, opts Options) http.Handler {
    if opts.Logger == nil {
        opts.Logger = zap.NewNop()
    }
    if opts.Heartbeat <= 0 {
        opts.Heartbeat = defaultHeartbeat
    }
    h := &handlers{svc: s, tpl: loadTemplates(), log: opts.Logger, heartbeat: opts.Heartbeat}
    s.SetRenderer(h.broadcast)

    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    r.Use(requestLogger(opts.Logger))
    r.Use(middleware.Recoverer)

    r.Get("/", h.index)
    r.Get("/healthz", h.healthz)
    r.Post("/game", h.create)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Get("/board", h.board)
        r.Get("/state", h.state)
        r.Get("/events", h.events)
        r.Post("/play", h.play)
        r.Post("/jump", h.jump)
        r.Post("/sort", h.sort)
        r.Post("/reset", h.reset)
    })
    return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
            start := time.Now()
            defer func() {
                log.Debug("request",
                    zap.String("method", r.Method),
                    zap.String("path", r.URL.Path),
                    zap.Int("status", ww.Status()),
                    zap.Int("bytes", ww.BytesWritten()),
                    zap.Duration("took", time.Since(start)),
                    zap.String("request_id", middleware.GetReqID(r.Context())),
                )
            }()
            next.ServeHTTP(ww, r)
        })
    }
}
