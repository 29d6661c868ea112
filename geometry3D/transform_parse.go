package geometry3D

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

type ParseError struct {
	Token string // offending token, empty at end of input
	Msg   string
}

func (e *ParseError) Error() string {
	if len(e.Token) == 0 {
		return fmt.Sprintf("transformation: %s", e.Msg)
	}
	return fmt.Sprintf("transformation: %s (at %q)", e.Msg, e.Token)
}

type clauseKeyword uint8

const (
	clauseNone clauseKeyword = iota
	clauseDisplaced
	clauseRotated
)

var clauseNameMap = map[string]clauseKeyword{
	"DISPLACED": clauseDisplaced,
	"ROTATED":   clauseRotated,
}

// IsTransformKeyword reports whether tok begins a transformation clause
func IsTransformKeyword(tok string) bool {
	_, ok := clauseNameMap[strings.ToUpper(tok)]
	return ok
}

// ParseTransformTokens consumes successive clauses of the form
//
//	DISPLACED dx dy dz
//	ROTATED theta ABOUT ax ay az    (theta in degrees)
//
// composing them in the order they appear. Parsing stops at the first token
// that does not begin a clause; consumed reports how many tokens were used.
func ParseTransformTokens(tokens []string) (gt Transform, consumed int, err error) {
	gt = Identity()
	for consumed < len(tokens) {
		kw := clauseNameMap[strings.ToUpper(tokens[consumed])]
		var (
			delta Transform
			n     int
		)
		switch kw {
		case clauseDisplaced:
			delta, n, err = parseDisplaced(tokens[consumed:])
		case clauseRotated:
			delta, n, err = parseRotated(tokens[consumed:])
		default:
			if consumed == 0 {
				err = &ParseError{Token: tokens[0], Msg: "expected DISPLACED or ROTATED"}
			}
			return
		}
		if err != nil {
			return Identity(), consumed, err
		}
		gt = Compose(gt, delta)
		consumed += n
	}
	if consumed == 0 {
		err = &ParseError{Msg: "empty transformation"}
	}
	return
}

// ParseTransform parses a complete transformation; trailing tokens are an error
func ParseTransform(text string) (gt Transform, err error) {
	var (
		tokens   = strings.Fields(text)
		consumed int
	)
	if gt, consumed, err = ParseTransformTokens(tokens); err != nil {
		return
	}
	if consumed != len(tokens) {
		err = &ParseError{Token: tokens[consumed], Msg: "junk at end of transformation"}
	}
	return
}

func parseDisplaced(tokens []string) (gt Transform, n int, err error) {
	var d r3.Vec
	if d, err = parseVec(tokens[0], tokens[1:]); err != nil {
		return
	}
	return NewDisplacement(d), 4, nil
}

func parseRotated(tokens []string) (gt Transform, n int, err error) {
	var (
		theta float64
		axis  r3.Vec
	)
	if len(tokens) < 2 {
		err = &ParseError{Token: tokens[0], Msg: "ROTATED requires an angle"}
		return
	}
	if theta, err = parseFloat(tokens[1]); err != nil {
		return
	}
	if len(tokens) < 3 || !strings.EqualFold(tokens[2], "ABOUT") {
		err = &ParseError{Token: tokens[0], Msg: "ROTATED angle must be followed by ABOUT"}
		return
	}
	if axis, err = parseVec(tokens[2], tokens[3:]); err != nil {
		return
	}
	if gt, err = NewRotation(theta, axis); err != nil {
		err = &ParseError{Token: tokens[0], Msg: err.Error()}
		return
	}
	return gt, 6, nil
}

func parseVec(keyword string, tokens []string) (v r3.Vec, err error) {
	if len(tokens) < 3 {
		err = &ParseError{Token: keyword, Msg: fmt.Sprintf("%s requires three numbers", strings.ToUpper(keyword))}
		return
	}
	var x [3]float64
	for i := range x {
		if x[i], err = parseFloat(tokens[i]); err != nil {
			return
		}
	}
	return r3.Vec{X: x[0], Y: x[1], Z: x[2]}, nil
}

func parseFloat(tok string) (f float64, err error) {
	if f, err = strconv.ParseFloat(tok, 64); err != nil {
		err = &ParseError{Token: tok, Msg: "invalid number"}
	}
	return
}
