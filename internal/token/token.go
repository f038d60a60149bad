package token

import (
	"mermaid-validate/internal/source"
)

// Token represents a single diagram token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLineEnd reports whether the token terminates a statement.
func (t Token) IsLineEnd() bool {
	switch t.Kind {
	case Newline, Semi, EOF:
		return true
	default:
		return false
	}
}

// IsShapeOpen reports whether the token opens a node shape.
func (t Token) IsShapeOpen() bool {
	return ShapeCloser(t.Kind) != Invalid
}

// ShapeCloser returns the kind that closes the shape opened by k,
// or Invalid when k does not open a shape.
func ShapeCloser(k Kind) Kind {
	switch k {
	case SQS:
		return SQE
	case PS:
		return PE
	case DiamondStart:
		return DiamondStop
	case TagEnd:
		return SQE
	case StadiumStart:
		return StadiumEnd
	case SubroutineStart:
		return SubroutineEnd
	case CylinderStart:
		return CylinderEnd
	case DoubleCircleStart:
		return DoubleCircleEnd
	case EllipseStart:
		return EllipseEnd
	case TrapStart:
		return TrapEnd
	case InvTrapStart:
		return InvTrapEnd
	default:
		return Invalid
	}
}

// Names renders kinds as their terminal names.
func Names(kinds ...Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}
