package rapid

import (
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"go.viam.com/rapidkin/spatialmath"
)

// ErrInvalidLiteral is returned for malformed RAPID aggregate literals.
var ErrInvalidLiteral = errors.New("invalid RAPID literal")

// Literal is a parsed RAPID value: either a single token or an aggregate of literals.
type Literal struct {
	Token  string
	Items  []Literal
	IsList bool
}

// ParseLiteral parses a RAPID value such as [[1, 2, 3], [1, 0, 0, 0]].
func ParseLiteral(text string) (Literal, error) {
	p := &literalParser{text: text}
	lit, err := p.parse()
	if err != nil {
		return Literal{}, err
	}
	p.skipSpace()
	if p.pos != len(p.text) {
		return Literal{}, p.errorf("unexpected trailing text")
	}
	return lit, nil
}

type literalParser struct {
	text string
	pos  int
}

func (p *literalParser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidLiteral, "at offset %d: "+format, append([]interface{}{p.pos}, args...)...)
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.text) && strings.ContainsRune(" \t\r\n", rune(p.text[p.pos])) {
		p.pos++
	}
}

func (p *literalParser) parse() (Literal, error) {
	p.skipSpace()
	if p.pos >= len(p.text) {
		return Literal{}, p.errorf("unexpected end of literal")
	}
	if p.text[p.pos] != '[' {
		return p.parseToken()
	}
	p.pos++
	lit := Literal{IsList: true}
	for {
		p.skipSpace()
		if p.pos < len(p.text) && p.text[p.pos] == ']' && len(lit.Items) == 0 {
			p.pos++
			return lit, nil
		}
		item, err := p.parse()
		if err != nil {
			return Literal{}, err
		}
		lit.Items = append(lit.Items, item)
		p.skipSpace()
		if p.pos >= len(p.text) {
			return Literal{}, p.errorf("missing ]")
		}
		switch p.text[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return lit, nil
		default:
			return Literal{}, p.errorf("unexpected %q", p.text[p.pos])
		}
	}
}

func (p *literalParser) parseToken() (Literal, error) {
	start := p.pos
	for p.pos < len(p.text) && !strings.ContainsRune("[],", rune(p.text[p.pos])) {
		p.pos++
	}
	token := strings.TrimSpace(p.text[start:p.pos])
	if token == "" {
		return Literal{}, p.errorf("empty value")
	}
	return Literal{Token: token}, nil
}

// Float returns the number of a token literal.
func (l Literal) Float() (float64, error) {
	if l.IsList {
		return 0, errors.Wrapf(ErrInvalidLiteral, "expected a number, got %s", l)
	}
	v, err := cast.ToFloat64E(l.Token)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidLiteral, "%q is not a number", l.Token)
	}
	return v, nil
}

// Bool returns the value of a TRUE or FALSE token.
func (l Literal) Bool() (bool, error) {
	if l.IsList {
		return false, errors.Wrapf(ErrInvalidLiteral, "expected a bool, got %s", l)
	}
	v, err := cast.ToBoolE(strings.ToLower(l.Token))
	if err != nil {
		return false, errors.Wrapf(ErrInvalidLiteral, "%q is not a bool", l.Token)
	}
	return v, nil
}

// Floats returns the numbers of an aggregate of exactly n tokens.
func (l Literal) Floats(n int) ([]float64, error) {
	if !l.IsList || len(l.Items) != n {
		return nil, errors.Wrapf(ErrInvalidLiteral, "expected %d numbers, got %s", n, l)
	}
	out := make([]float64, n)
	for i, item := range l.Items {
		v, err := item.Float()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Point returns the vector of a pos aggregate.
func (l Literal) Point() (r3.Vector, error) {
	v, err := l.Floats(3)
	if err != nil {
		return r3.Vector{}, err
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}

// Pose returns the pose of a [[x, y, z], [q1, q2, q3, q4]] aggregate.
func (l Literal) Pose() (spatialmath.Pose, error) {
	if !l.IsList || len(l.Items) != 2 {
		return nil, errors.Wrapf(ErrInvalidLiteral, "expected a pose, got %s", l)
	}
	pt, err := l.Items[0].Point()
	if err != nil {
		return nil, err
	}
	q, err := l.Items[1].Floats(4)
	if err != nil {
		return nil, err
	}
	return spatialmath.NewPose(pt, spatialmath.NewQuaternion(q[0], q[1], q[2], q[3])), nil
}

func (l Literal) String() string {
	if !l.IsList {
		return l.Token
	}
	items := make([]string, len(l.Items))
	for i, item := range l.Items {
		items[i] = item.String()
	}
	return FormatList(items...)
}
