package client

import (
	"blockfall/terminal"
	"blockfall/tetris"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"
)

const boxWidth = 38

//go:embed "layout.tmpl"
var layout string

type templateData struct {
	State   *tetris.State
	Name    string
	Session string
	NoGhost bool
}

type lobbyMessage struct {
	title, options string
}

func defaultLobby() lobbyMessage {
	return lobbyMessage{"Welcome to Terminal Tetris", "(p)lay   (o)nline   (q)uit"}
}

func connecting() lobbyMessage {
	return lobbyMessage{"connecting to server...", "(c)ancel"}
}

func errorMessage() lobbyMessage {
	return lobbyMessage{"something went wrong :(", "(p)lay   (o)nline   (q)uit"}
}

func gameOver() lobbyMessage {
	return lobbyMessage{"Game Over :)", "(space) restart   (esc) lobby"}
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	*templateData
}

func newRender(l *slog.Logger, ng bool, name string) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:   os.Stdout,
		logger:   l,
		template: tmp,
		templateData: &templateData{
			Name:    name,
			NoGhost: ng,
		},
	}, nil
}

func (r *render) reset() {
	fmt.Fprint(r.writer, terminal.Clear)
}

// lobby draws a message box over whatever is on screen.
func (r *render) lobby(m lobbyMessage) {
	if r.templateData.State == nil {
		r.draw()
	}
	r.box(m)
}

// game draws the state. Once the game is over the restart prompt goes on top.
func (r *render) game(st tetris.State, session string) {
	r.templateData.State = &st
	r.templateData.Session = session
	r.draw()
	if st.Status == tetris.GameOver {
		r.box(gameOver())
	}
}

func (r *render) draw() {
	fmt.Fprint(r.writer, terminal.ResetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func (r *render) box(m lobbyMessage) {
	border := "+" + strings.Repeat("-", boxWidth) + "+"
	fmt.Fprint(r.writer, terminal.MoveTo(10, 9)+border)
	fmt.Fprint(r.writer, terminal.MoveTo(11, 9)+"|"+center(m.title, boxWidth)+"|")
	fmt.Fprint(r.writer, terminal.MoveTo(12, 9)+"|"+strings.Repeat(" ", boxWidth)+"|")
	fmt.Fprint(r.writer, terminal.MoveTo(13, 9)+"|"+center(m.options, boxWidth)+"|")
	fmt.Fprint(r.writer, terminal.MoveTo(14, 9)+border)
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"field": field,
		"title": title,
		"score": score,
		"bold":  terminal.Bold,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

// field renders the settled cells, then the ghost, then the piece so the
// piece wins where they overlap.
func field(t *templateData) [tetris.Rows][tetris.Cols]string {
	rendered := [tetris.Rows][tetris.Cols]string{}
	for y := range rendered {
		for x := range rendered[y] {
			rendered[y][x] = terminal.Cell(tetris.Empty)
		}
	}
	if t == nil || t.State == nil {
		return rendered
	}

	for y, row := range t.State.Field {
		for x, c := range row {
			rendered[y][x] = terminal.Cell(c)
		}
	}

	paint := func(p tetris.Piece) {
		for _, c := range p.Cells {
			// a rotation may leave cells outside the field.
			if c.X < 0 || c.X >= tetris.Cols || c.Y < 0 || c.Y >= tetris.Rows {
				continue
			}
			rendered[c.Y][c.X] = terminal.Cell(p.Color)
		}
	}
	if !t.NoGhost {
		paint(t.State.Ghost)
	}
	paint(t.State.Piece)
	return rendered
}

func title(t *templateData) string {
	if t == nil || t.State == nil {
		return tetris.Playing.String()
	}
	return t.State.Status.String()
}

func score(t *templateData) int {
	if t == nil || t.State == nil {
		return 0
	}
	return t.State.Score
}

func center(s string, w int) string {
	if len(s) >= w {
		return s[:w]
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
}
