package pb

import (
	"blockfall/tetris"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestSnapshotState(t *testing.T) {
	s := tetris.NewTestState(tetris.T)
	s.Field[19][0] = tetris.Red
	s.Field[0][9] = tetris.Blue
	s.Score = 1730
	s.Rows = 12
	s.FallRate = -75 * time.Millisecond
	s.Status = tetris.GameOver
	// a rotation can leave the piece hanging over a wall.
	s.Piece.Cells[0] = tetris.Point{X: -1, Y: 3}

	var c Codec
	b, err := c.Marshal(FromState("abc", s))
	require.NoError(t, err)

	got := &Snapshot{}
	require.NoError(t, c.Unmarshal(b, got))
	assert.Equal(t, "abc", got.SessionID)
	assert.True(t, got.GameOver)

	st, err := got.State()
	require.NoError(t, err)
	assert.Equal(t, s.Field, st.Field)
	assert.Equal(t, s.Piece.Cells, st.Piece.Cells)
	assert.Equal(t, s.Piece.Color, st.Piece.Color)
	assert.Equal(t, s.Ghost.Cells, st.Ghost.Cells)
	assert.Equal(t, tetris.Ghost, st.Ghost.Color)
	assert.Equal(t, 1730, st.Score)
	assert.Equal(t, 12, st.Rows)
	assert.Equal(t, -75*time.Millisecond, st.FallRate)
	assert.Equal(t, tetris.GameOver, st.Status)
}

func TestSnapshotErrors(t *testing.T) {
	t.Run("missing cells", func(t *testing.T) {
		snap := FromState("", tetris.NewTestState(tetris.J))
		snap.Cells = snap.Cells[1:]
		_, err := snap.State()
		assert.Error(t, err)
	})

	t.Run("missing piece", func(t *testing.T) {
		snap := FromState("", tetris.NewTestState(tetris.J))
		snap.Piece = nil
		_, err := snap.State()
		assert.ErrorContains(t, err, "piece")
	})

	t.Run("short ghost", func(t *testing.T) {
		snap := FromState("", tetris.NewTestState(tetris.J))
		snap.Ghost.Cells = snap.Ghost.Cells[:6]
		_, err := snap.State()
		assert.ErrorContains(t, err, "ghost")
	})

	t.Run("truncated message", func(t *testing.T) {
		b := FromState("abc", tetris.NewTestState(tetris.J)).MarshalWire()
		assert.Error(t, (&Snapshot{}).UnmarshalWire(b[:len(b)-3]))
	})
}

func TestCommand(t *testing.T) {
	var c Codec
	b, err := c.Marshal(NewCommand(tetris.HardDrop))
	require.NoError(t, err)

	got := &Command{}
	require.NoError(t, c.Unmarshal(b, got))
	assert.Equal(t, tetris.HardDrop, got.GetAction())

	t.Run("unknown fields are skipped", func(t *testing.T) {
		b := protowire.AppendTag(nil, 9, protowire.BytesType)
		b = protowire.AppendString(b, "later")
		b = append(b, NewCommand(tetris.Rotate).MarshalWire()...)
		got := &Command{}
		require.NoError(t, got.UnmarshalWire(b))
		assert.Equal(t, tetris.Rotate, got.GetAction())
	})

	t.Run("unknown actions are none", func(t *testing.T) {
		assert.Equal(t, tetris.None, (&Command{Action: 42}).GetAction())
	})

	t.Run("other types are rejected", func(t *testing.T) {
		_, err := c.Marshal("drop")
		assert.Error(t, err)
		assert.Error(t, c.Unmarshal(b, &struct{}{}))
	})
}
