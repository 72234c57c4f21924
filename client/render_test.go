package client

import (
	"blockfall/terminal"
	"blockfall/tetris"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func emptyField() [tetris.Rows][tetris.Cols]string {
	want := [tetris.Rows][tetris.Cols]string{}
	for y := range want {
		for x := range want[y] {
			want[y][x] = "  "
		}
	}
	return want
}

func testRender(t *testing.T, w io.Writer, td *templateData) *render {
	t.Helper()
	tmpl, err := loadTemplate()
	if err != nil {
		t.Fatalf("unable to load template: %v", err)
	}
	return &render{
		writer:       w,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		template:     tmpl,
		templateData: td,
	}
}

func TestField(t *testing.T) {
	st := tetris.NewTestState(tetris.J)
	st.Field[19][0] = tetris.Red

	blueCell := "\x1b[7m\x1b[34m[]\x1b[0m"
	want := emptyField()
	want[19][0] = "\x1b[7m\x1b[31m[]\x1b[0m"
	want[0][3] = blueCell
	want[1][3] = blueCell
	want[1][4] = blueCell
	want[1][5] = blueCell
	want[18][3] = "[]"
	want[19][3] = "[]"
	want[19][4] = "[]"
	want[19][5] = "[]"
	got := field(&templateData{State: &st})
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}

	t.Run("no ghost", func(t *testing.T) {
		want := emptyField()
		want[19][0] = "\x1b[7m\x1b[31m[]\x1b[0m"
		want[0][3] = blueCell
		want[1][3] = blueCell
		want[1][4] = blueCell
		want[1][5] = blueCell
		got := field(&templateData{State: &st, NoGhost: true})
		if !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("piece drawn over its ghost", func(t *testing.T) {
		st := tetris.NewTestState(tetris.O)
		st.Piece = st.Ghost
		st.Piece.Color = tetris.Yellow
		got := field(&templateData{State: &st})
		if got[19][4] != terminal.Cell(tetris.Yellow) {
			t.Errorf("want yellow cell, got %q", got[19][4])
		}
	})

	t.Run("cells outside the field are skipped", func(t *testing.T) {
		st := tetris.NewTestState(tetris.I)
		st.Piece.Cells[0] = tetris.Point{X: -1, Y: 0}
		st.Piece.Cells[3] = tetris.Point{X: 4, Y: -2}
		got := field(&templateData{State: &st, NoGhost: true})
		if got[0][4] != terminal.Cell(tetris.Cyan) || got[0][5] != terminal.Cell(tetris.Cyan) {
			t.Errorf("want the in-bounds cells drawn, got %v", got[0])
		}
	})

	t.Run("nil state returns empty spaces", func(t *testing.T) {
		if got := field(nil); !reflect.DeepEqual(got, emptyField()) {
			t.Errorf("want empty field, got %v", got)
		}
		if got := field(&templateData{}); !reflect.DeepEqual(got, emptyField()) {
			t.Errorf("want empty field, got %v", got)
		}
	})
}

func TestTitleAndScore(t *testing.T) {
	if got := title(nil); got != "Tetris" {
		t.Errorf("want Tetris, got %q", got)
	}
	if got := score(nil); got != 0 {
		t.Errorf("want 0, got %d", got)
	}

	st := tetris.NewTestState(tetris.T)
	st.Score = 1730
	st.Status = tetris.GameOver
	td := &templateData{State: &st}
	if got := title(td); got != "Game Over" {
		t.Errorf("want Game Over, got %q", got)
	}
	if got := score(td); got != 1730 {
		t.Errorf("want 1730, got %d", got)
	}
}

func TestRenderGame(t *testing.T) {
	w := &strings.Builder{}
	r := testRender(t, w, &templateData{Name: "player"})
	st := tetris.NewTestState(tetris.T)
	st.Score = 1730
	r.game(st, "0f8fad5b-d9cb-469f-a165-70867728950e")

	got := w.String()
	for _, want := range []string{
		terminal.ResetPos,
		"+--------------------+",
		"Score: 1730",
		"player",
		"0f8fad5b",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("want output to contain %q", want)
		}
	}
	if strings.Contains(got, "0f8fad5b-") {
		t.Errorf("want session id shortened")
	}
	if strings.Contains(got, gameOver().title) {
		t.Errorf("want no game over box while playing")
	}
	if strings.Count(got, "\n") != strings.Count(got, "\r\n") {
		t.Errorf("want every new line preceded by a carriage return")
	}

	t.Run("game over draws the restart box", func(t *testing.T) {
		w := &strings.Builder{}
		r := testRender(t, w, &templateData{})
		st.Status = tetris.GameOver
		r.game(st, "")
		got := w.String()
		if !strings.Contains(got, center(gameOver().title, boxWidth)) {
			t.Errorf("want game over title in %q", got)
		}
		if !strings.Contains(got, center(gameOver().options, boxWidth)) {
			t.Errorf("want restart options in %q", got)
		}
	})
}

func TestRenderLobby(t *testing.T) {
	tests := []struct {
		name string
		msg  lobbyMessage
	}{
		{"default lobby message", defaultLobby()},
		{"connecting message", connecting()},
		{"error message", errorMessage()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &strings.Builder{}
			r := testRender(t, w, &templateData{})
			r.lobby(tt.msg)
			got := w.String()
			if !strings.Contains(got, "+--------------------+") {
				t.Errorf("want the empty frame drawn first")
			}
			if !strings.Contains(got, terminal.MoveTo(11, 9)+"|"+center(tt.msg.title, boxWidth)+"|") {
				t.Errorf("want title %q in the box", tt.msg.title)
			}
			if !strings.Contains(got, terminal.MoveTo(13, 9)+"|"+center(tt.msg.options, boxWidth)+"|") {
				t.Errorf("want options %q in the box", tt.msg.options)
			}
		})
	}

	t.Run("over a game only the box is drawn", func(t *testing.T) {
		w := &strings.Builder{}
		st := tetris.NewTestState(tetris.T)
		r := testRender(t, w, &templateData{State: &st})
		r.lobby(defaultLobby())
		if strings.Contains(w.String(), terminal.ResetPos) {
			t.Errorf("want the game left as it is")
		}
	})
}

func TestCenter(t *testing.T) {
	tests := []struct {
		s    string
		w    int
		want string
	}{
		{"ab", 6, "  ab  "},
		{"abc", 6, " abc  "},
		{"abcdef", 6, "abcdef"},
		{"abcdefgh", 6, "abcdef"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := center(tt.s, tt.w); got != tt.want {
			t.Errorf("center(%q, %d): want %q, got %q", tt.s, tt.w, tt.want, got)
		}
	}
}
