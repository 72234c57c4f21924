// Package pb holds the messages exchanged by remote sessions and their
// protobuf wire encoding.
//
//	message Command {
//	  int32 action = 1;
//	}
//
//	message Piece {
//	  string shape = 1;
//	  string color = 2;
//	  repeated sint32 cells = 3; // x, y pairs
//	}
//
//	message Snapshot {
//	  string session_id = 1;
//	  int64 score = 2;
//	  int64 rows = 3;
//	  sint64 fall_rate_ms = 4;
//	  bool game_over = 5;
//	  repeated string cells = 6; // row-major, "" is empty
//	  Piece piece = 7;
//	  Piece ghost = 8;
//	}
package pb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var errTruncated = errors.New("pb: truncated message")

type Command struct {
	Action int32
}

func (c *Command) MarshalWire() []byte {
	var b []byte
	if c.Action != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(c.Action))
	}
	return b
}

func (c *Command) UnmarshalWire(b []byte) error {
	*c = Command{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			c.Action = int32(v) //nolint:gosec
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type Piece struct {
	Shape string
	Color string
	Cells []int32
}

func (p *Piece) MarshalWire() []byte {
	var b []byte
	if p.Shape != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, p.Shape)
	}
	if p.Color != "" {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, p.Color)
	}
	if len(p.Cells) > 0 {
		var packed []byte
		for _, v := range p.Cells {
			packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(int64(v)))
		}
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b
}

func (p *Piece) UnmarshalWire(b []byte) error {
	*p = Piece{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			p.Shape = v
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			p.Color = v
			return n, nil
		case num == 3 && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			for len(packed) > 0 {
				v, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return m, nil
				}
				p.Cells = append(p.Cells, int32(protowire.DecodeZigZag(v))) //nolint:gosec
				packed = packed[m:]
			}
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			// unpacked encoding of the same field.
			v, n := protowire.ConsumeVarint(b)
			p.Cells = append(p.Cells, int32(protowire.DecodeZigZag(v))) //nolint:gosec
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

type Snapshot struct {
	SessionID  string
	Score      int64
	Rows       int64
	FallRateMs int64
	GameOver   bool
	Cells      []string
	Piece      *Piece
	Ghost      *Piece
}

func (s *Snapshot) MarshalWire() []byte {
	var b []byte
	if s.SessionID != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, s.SessionID)
	}
	if s.Score != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(s.Score)) //nolint:gosec
	}
	if s.Rows != 0 {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(s.Rows)) //nolint:gosec
	}
	if s.FallRateMs != 0 {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(s.FallRateMs))
	}
	if s.GameOver {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(s.GameOver))
	}
	for _, c := range s.Cells {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, c)
	}
	if s.Piece != nil {
		b = protowire.AppendTag(b, 7, protowire.BytesType)
		b = protowire.AppendBytes(b, s.Piece.MarshalWire())
	}
	if s.Ghost != nil {
		b = protowire.AppendTag(b, 8, protowire.BytesType)
		b = protowire.AppendBytes(b, s.Ghost.MarshalWire())
	}
	return b
}

func (s *Snapshot) UnmarshalWire(b []byte) error {
	*s = Snapshot{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			s.SessionID = v
			return n, nil
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.Score = int64(v) //nolint:gosec
			return n, nil
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.Rows = int64(v) //nolint:gosec
			return n, nil
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.FallRateMs = protowire.DecodeZigZag(v)
			return n, nil
		case num == 5 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.GameOver = protowire.DecodeBool(v)
			return n, nil
		case num == 6 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			s.Cells = append(s.Cells, v)
			return n, nil
		case (num == 7 || num == 8) && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			p := &Piece{}
			if err := p.UnmarshalWire(v); err != nil {
				return 0, fmt.Errorf("field %d: %w", num, err)
			}
			if num == 7 {
				s.Piece = p
			} else {
				s.Ghost = p
			}
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
}

// walk calls field for every field in b. field consumes the value that
// follows the tag and returns its length, or a negative protowire error code.
func walk(b []byte, field func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("pb: %w", protowire.ParseError(n))
		}
		b = b[n:]
		m, err := field(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return fmt.Errorf("pb: field %d: %w", num, protowire.ParseError(m))
		}
		if m > len(b) {
			return errTruncated
		}
		b = b[m:]
	}
	return nil
}
