package rwg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/notargets/gorwg/geometry3D"
)

// ParseError reports a malformed OBJECT section. Line counts lines from the
// start of the section, 0 when the error is not tied to a line.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

type ObjectKeyword uint8

const (
	KW_UNKNOWN ObjectKeyword = iota
	KW_MESHFILE
	KW_MATERIAL
	KW_INSIDE
	KW_DISPLACED
	KW_ROTATED
	KW_ENDOBJECT
)

var ObjectKeywordMap = map[string]ObjectKeyword{
	"MESHFILE":  KW_MESHFILE,
	"MATERIAL":  KW_MATERIAL,
	"INSIDE":    KW_INSIDE,
	"DISPLACED": KW_DISPLACED,
	"ROTATED":   KW_ROTATED,
	"ENDOBJECT": KW_ENDOBJECT,
}

func NewObjectKeyword(token string) ObjectKeyword {
	return ObjectKeywordMap[strings.ToUpper(token)]
}

func (kw ObjectKeyword) String() string {
	return [...]string{"UNKNOWN", "MESHFILE", "MATERIAL", "INSIDE", "DISPLACED", "ROTATED", "ENDOBJECT"}[kw]
}

// ObjectConfig is the decoded content of an OBJECT ... ENDOBJECT section
type ObjectConfig struct {
	Label    string
	MeshFile string
	Material string
	Inside   string               // Label of the containing object
	OTGT     geometry3D.Transform // One-time transformation, applied at birth
}

// DecodeObjectBlock reads the body of an OBJECT section, the lines following
// "OBJECT label", up to and including the ENDOBJECT line. Blank lines and
// lines starting with # are skipped. On return the reader is positioned just
// past the last line consumed, and linesRead counts the consumed lines.
func DecodeObjectBlock(r *bufio.Reader, label string) (cfg ObjectConfig, linesRead int, err error) {
	var (
		reachedTheEnd bool
		otgt          = geometry3D.Identity()
	)
	cfg.Label = label
	for !reachedTheEnd {
		line, rerr := r.ReadString('\n')
		if len(line) == 0 && rerr != nil {
			if rerr == io.EOF {
				return cfg, linesRead, &ParseError{Line: linesRead, Msg: "unexpected end of file in OBJECT section (missing ENDOBJECT)"}
			}
			return cfg, linesRead, &ParseError{Line: linesRead, Msg: "read error", Err: rerr}
		}
		linesRead++
		tokens := strings.Fields(line)
		if len(tokens) == 0 || tokens[0][0] == '#' {
			continue
		}

		kw := NewObjectKeyword(tokens[0])
		switch kw {
		case KW_MESHFILE, KW_MATERIAL, KW_INSIDE:
			if len(tokens) != 2 {
				return cfg, linesRead, &ParseError{Line: linesRead,
					Msg: fmt.Sprintf("%s keyword requires one argument", kw)}
			}
			switch kw {
			case KW_MESHFILE:
				cfg.MeshFile = tokens[1]
			case KW_MATERIAL:
				cfg.Material = tokens[1]
			case KW_INSIDE:
				cfg.Inside = tokens[1]
			}
		case KW_DISPLACED, KW_ROTATED:
			// Successive lines compose into one running transformation
			delta, consumed, perr := geometry3D.ParseTransformTokens(tokens)
			if perr != nil {
				return cfg, linesRead, &ParseError{Line: linesRead, Msg: "invalid transformation", Err: perr}
			}
			if consumed != len(tokens) {
				return cfg, linesRead, &ParseError{Line: linesRead, Msg: "junk at end of line"}
			}
			otgt = geometry3D.Compose(otgt, delta)
		case KW_ENDOBJECT:
			reachedTheEnd = true
		default:
			return cfg, linesRead, &ParseError{Line: linesRead,
				Msg: fmt.Sprintf("unknown keyword %s in OBJECT section", tokens[0])}
		}
	}
	if len(cfg.MeshFile) == 0 {
		return cfg, linesRead, &ParseError{Msg: "OBJECT section must include a MESHFILE specification"}
	}
	if !otgt.IsIdentity() {
		cfg.OTGT = otgt
	}
	return
}

// ReadObjectBlock decodes an OBJECT section and builds the object it
// describes. See DecodeObjectBlock for the reader and line count contract.
func ReadObjectBlock(r *bufio.Reader, label string) (obj *RWGObject, linesRead int, err error) {
	var cfg ObjectConfig
	if cfg, linesRead, err = DecodeObjectBlock(r, label); err != nil {
		return
	}
	obj, err = NewRWGObjectFromConfig(cfg)
	return
}
