package token_test

import (
	"testing"

	"mermaid-validate/internal/source"
	"mermaid-validate/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestKindNames(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want string
	}{
		{token.SQE, "SQE"},
		{token.PS, "PS"},
		{token.Link, "LINK"},
		{token.SolidArrow, "SOLID_ARROW"},
		{token.EOF, "EOF"},
		{token.Kind(250), "INVALID"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

// Все объявленные виды должны иметь имя
func TestEveryKindNamed(t *testing.T) {
	for k := token.Invalid + 1; k <= token.BlockEnd; k++ {
		if k.String() == "INVALID" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestIsLineEnd(t *testing.T) {
	for _, k := range []token.Kind{token.Newline, token.Semi, token.EOF} {
		if !tok(k).IsLineEnd() {
			t.Errorf("%v should end a statement", k)
		}
	}
	for _, k := range []token.Kind{token.Space, token.NodeString, token.Link} {
		if tok(k).IsLineEnd() {
			t.Errorf("%v must NOT end a statement", k)
		}
	}
}

func TestShapeCloser(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.SQS:               token.SQE,
		token.PS:                token.PE,
		token.DiamondStart:      token.DiamondStop,
		token.StadiumStart:      token.StadiumEnd,
		token.DoubleCircleStart: token.DoubleCircleEnd,
	}
	for open, want := range pairs {
		if got := token.ShapeCloser(open); got != want {
			t.Errorf("ShapeCloser(%v) = %v, want %v", open, got, want)
		}
		if !tok(open).IsShapeOpen() {
			t.Errorf("%v should open a shape", open)
		}
	}
	if tok(token.NodeString).IsShapeOpen() {
		t.Error("NODE_STRING must not open a shape")
	}
}
