package web

import (
    "bytes"
    "html/template"

    "github.com/jaminalder/tictactoe-history/internal/domain"
)

type templates struct {
    game  *template.Template
    board *template.Template
    index *template.Template
}

func funcs() template.FuncMap {
    return template.FuncMap{
        "iter":       func(n int) []int { a := make([]int, n); for i := range a { a[i] = i }; return a },
        "cellSymbol": func(c domain.Cell) string { return c.String() },
        "add":        func(a, b int) int { return a + b },
        "mul":        func(a, b int) int { return a * b },
    }
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>` + style + `</style>
</head><body>{{template "content" .}}</body></html>`))
    // Define the board template within the same set so game can include it
    template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
    // Pages are clones of base so executing them renders the full document.
    index := template.Must(base.Clone())
    template.Must(index.New("content").Parse(`<h1>Tic-Tac-Toe</h1><form action="/game" method="post"><button>New game</button></form>`))
    game := template.Must(base.Clone())
    template.Must(game.New("content").Parse(`
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div id="live" sse-swap="board">{{template "board" .}}</div>
</div>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
    return &templates{game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, data any) ([]byte, error) {
    var buf bytes.Buffer
    if err := t.Execute(&buf, data); err != nil {
        return nil, err
    }
    return buf.Bytes(), nil
}

// boardData feeds boardTemplate.
type boardData struct {
    ID   string
    View domain.View
}

const boardTemplate = `
<div id="game" class="game">
  <div class="game-board">
  {{range $r := iter 3}}
    <div class="board-row">
    {{range $c := iter 3}}{{$i := add (mul $r 3) $c}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#game" hx-swap="outerHTML" method="post">
        <input type="hidden" name="cell" value="{{$i}}">
        <button type="submit" class="square{{if $.View.Winning $i}} winning{{end}}">{{cellSymbol (index $.View.Board $i)}}</button>
      </form>
    {{end}}
    </div>
  {{end}}
  </div>
  <div class="game-info">
    <div class="status">{{.View.Status}}</div>
    <form hx-post="/game/{{.ID}}/sort" hx-target="#game" hx-swap="outerHTML" method="post">
      <button type="submit" class="sort-button">{{.View.SortLabel}}</button>
    </form>
    <ol>
    {{range .View.Moves}}
      <li>
        <form hx-post="/game/{{$.ID}}/jump" hx-target="#game" hx-swap="outerHTML" method="post">
          <input type="hidden" name="step" value="{{.Step}}">
          <button type="submit"{{if .Active}} class="active"{{end}}>{{.Description}}</button>
        </form>
      </li>
    {{end}}
    </ol>
    <form hx-post="/game/{{.ID}}/reset" hx-target="#game" hx-swap="outerHTML" method="post">
      <button type="submit" class="reset-button">Reset</button>
    </form>
  </div>
</div>
`

const style = `
body { font: 14px "Century Gothic", Futura, sans-serif; margin: 20px; }
.game { display: flex; flex-direction: row; }
.game-info { margin-left: 20px; }
.board-row { display: flex; }
.board-row form { margin: 0; }
.square { background: #fff; border: 1px solid #999; font-size: 24px; font-weight: bold;
  height: 34px; width: 34px; margin: -1px -1px 0 0; padding: 0; text-align: center; }
.square.winning { background: #ff0; }
.active { font-weight: bold; }
`
