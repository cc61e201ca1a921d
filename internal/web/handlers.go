package web

import (
    "encoding/json"
    "errors"
    "io"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-chi/chi/v5"
    "go.uber.org/zap"

    "github.com/jaminalder/tictactoe-history/internal/app"
    "github.com/jaminalder/tictactoe-history/internal/domain"
)

type handlers struct {
    svc       *app.Service
    tpl       *templates
    log       *zap.Logger
    heartbeat time.Duration
}

func (h *handlers) renderBoard(ss app.Session) ([]byte, error) {
    v, err := domain.NewView(ss.Game)
    if err != nil {
        return nil, err
    }
    return renderTemplate(h.tpl.board, boardData{ID: ss.ID, View: v})
}

// broadcast renders the fragment pushed to event stream subscribers.
func (h *handlers) broadcast(ss app.Session) []byte {
    b, err := h.renderBoard(ss)
    if err != nil {
        h.log.Error("render broadcast", zap.String("session", ss.ID), zap.Error(err))
        return nil
    }
    return b
}

func (h *handlers) writeHTML(w http.ResponseWriter, status int, b []byte) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(status)
    _, _ = w.Write(b)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
    b, err := renderTemplate(h.tpl.index, nil)
    if err != nil {
        h.fail(w, r, err)
        return
    }
    h.writeHTML(w, http.StatusOK, b)
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
    ss, err := h.svc.CreateGame()
    if err != nil {
        http.Error(w, "failed to create", http.StatusInternalServerError)
        return
    }
    http.Redirect(w, r, "/game/"+ss.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
    ss, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        http.NotFound(w, r)
        return
    }
    v, err := domain.NewView(ss.Game)
    if err != nil {
        h.fail(w, r, err)
        return
    }
    // Render page with embedded board container
    b, err := renderTemplate(h.tpl.game, boardData{ID: ss.ID, View: v})
    if err != nil {
        h.fail(w, r, err)
        return
    }
    h.writeHTML(w, http.StatusOK, b)
}

func (h *handlers) board(w http.ResponseWriter, r *http.Request) {
    ss, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        http.NotFound(w, r)
        return
    }
    b, err := h.renderBoard(*ss)
    if err != nil {
        h.fail(w, r, err)
        return
    }
    h.writeHTML(w, http.StatusOK, b)
}

// formInt reads an integer form field.
func formInt(r *http.Request, name string) (int, error) {
    if err := r.ParseForm(); err != nil {
        return 0, err
    }
    return strconv.Atoi(strings.TrimSpace(r.Form.Get(name)))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
    cell, err := formInt(r, "cell")
    if err != nil {
        http.Error(w, "invalid cell", http.StatusBadRequest)
        return
    }
    h.dispatch(w, r, domain.CellClicked{Index: cell})
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
    step, err := formInt(r, "step")
    if err != nil {
        http.Error(w, "invalid step", http.StatusBadRequest)
        return
    }
    h.dispatch(w, r, domain.StepClicked{Step: step})
}

func (h *handlers) sort(w http.ResponseWriter, r *http.Request) {
    h.dispatch(w, r, domain.SortToggled{})
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
    h.dispatch(w, r, domain.ResetClicked{})
}

// dispatch applies ev and answers with the re-rendered board fragment.
// Rejected moves render the unchanged board without a message.
func (h *handlers) dispatch(w http.ResponseWriter, r *http.Request, ev domain.Event) {
    id := chi.URLParam(r, "id")
    ss, _, err := h.svc.Dispatch(id, ev)
    if err != nil {
        switch {
        case errors.Is(err, app.ErrNotFound):
            http.NotFound(w, r)
        case errors.Is(err, domain.ErrOutOfBounds):
            http.Error(w, "Out of bounds", http.StatusBadRequest)
        case errors.Is(err, domain.ErrStepOutOfRange):
            http.Error(w, "No such step", http.StatusBadRequest)
        default:
            h.fail(w, r, err)
        }
        return
    }
    b, err := h.renderBoard(*ss)
    if err != nil {
        h.fail(w, r, err)
        return
    }
    h.writeHTML(w, http.StatusOK, b)
}

type moveJSON struct {
    Step        int    `json:"step"`
    Cell        int    `json:"cell"`
    Description string `json:"description"`
    Active      bool   `json:"active"`
}

type stateJSON struct {
    ID        string     `json:"id"`
    Board     [9]string  `json:"board"`
    Step      int        `json:"step"`
    XIsNext   bool       `json:"xIsNext"`
    Status    string     `json:"status"`
    Winner    string     `json:"winner,omitempty"`
    Squares   []int      `json:"winningSquares,omitempty"`
    Latest    bool       `json:"latest"`
    Full      bool       `json:"full"`
    Ascending bool       `json:"ascending"`
    Moves     []moveJSON `json:"moves"`
}

func newStateJSON(id string, v domain.View) stateJSON {
    out := stateJSON{
        ID:        id,
        Step:      v.Step,
        XIsNext:   v.XIsNext,
        Status:    v.Status,
        Latest:    v.Latest,
        Full:      v.Full,
        Ascending: v.Ascending,
        Moves:     make([]moveJSON, 0, len(v.Moves)),
    }
    for i, c := range v.Board {
        out.Board[i] = c.String()
    }
    if v.HasWinner {
        out.Winner = v.Win.Winner.String()
        out.Squares = v.Win.Squares[:]
    }
    for _, m := range v.Moves {
        out.Moves = append(out.Moves, moveJSON{Step: m.Step, Cell: m.Cell, Description: m.Description, Active: m.Active})
    }
    return out
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
    ss, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        http.NotFound(w, r)
        return
    }
    v, err := domain.NewView(ss.Game)
    if err != nil {
        h.fail(w, r, err)
        return
    }
    w.Header().Set("Content-Type", "application/json")
    if err := json.NewEncoder(w).Encode(newStateJSON(ss.ID, v)); err != nil {
        h.log.Warn("encode state", zap.String("session", ss.ID), zap.Error(err))
    }
}

func (h *handlers) healthz(w http.ResponseWriter, _ *http.Request) {
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write([]byte("ok"))
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
    h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
    http.Error(w, "internal error", http.StatusInternalServerError)
}

// writeEvent frames b as one SSE event, one data line per input line.
func writeEvent(w io.Writer, event string, b []byte) {
    _, _ = io.WriteString(w, "event: "+event+"\n")
    for _, line := range strings.Split(strings.TrimRight(string(b), "\n"), "\n") {
        _, _ = io.WriteString(w, "data: "+line+"\n")
    }
    _, _ = io.WriteString(w, "\n")
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if _, ok := h.svc.Get(id); !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("X-Accel-Buffering", "no")
    // In tests or non-EventSource requests, just acknowledge headers and return
    if r.Header.Get("Accept") != "text/event-stream" {
        w.WriteHeader(http.StatusOK)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx := r.Context()
    ch, unsub, err := h.svc.Subscribe(ctx, id)
    if err != nil {
        http.NotFound(w, r)
        return
    }
    defer unsub()
    // heartbeat ticker
    ticker := time.NewTicker(h.heartbeat)
    defer ticker.Stop()
    // Initial flush of headers
    w.WriteHeader(http.StatusOK)
    flusher.Flush()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            _, _ = io.WriteString(w, ": ping\n\n")
            flusher.Flush()
        case b, ok := <-ch:
            if !ok {
                return
            }
            if len(b) == 0 {
                continue
            }
            writeEvent(w, "board", b)
            flusher.Flush()
        }
    }
}
