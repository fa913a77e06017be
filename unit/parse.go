package unit

import (
	"fmt"
	"strconv"
	"strings"
)

// parseUnitExpr evaluates the restricted unit-expression grammar
//
//	expr := IDENT (('*' | '/') IDENT | '**' INT)*
//
// resolving each identifier through reg and combining the results with the
// unit algebra. A leading "1/" inverts the rest of the expression. The input
// arrives normalized: no spaces, '^' already rewritten to '**'.
func parseUnitExpr(expr string, reg *Registry) (*Unit, error) {
	if rest, ok := strings.CutPrefix(expr, "1/"); ok {
		u, err := parseUnitExpr(rest, reg)
		if err != nil {
			return nil, err
		}
		return u.Pow(-1)
	}
	p := &exprParser{input: expr, reg: reg}
	return p.parse()
}

type exprParser struct {
	input string
	pos   int
	reg   *Registry
}

func (p *exprParser) parse() (*Unit, error) {
	u, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.input) {
		switch {
		case p.eat("**"):
			return nil, p.syntaxError("unexpected '**'")
		case p.eat("*"):
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			if u, err = u.Mul(rhs); err != nil {
				return nil, err
			}
		case p.eat("/"):
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			if u, err = u.Div(rhs); err != nil {
				return nil, err
			}
		default:
			return nil, p.syntaxError("expected '*', '/' or '**'")
		}
	}
	return u, nil
}

// term parses IDENT ('**' INT)? and resolves the identifier.
func (p *exprParser) term() (*Unit, error) {
	name := p.ident()
	if name == "" {
		return nil, p.syntaxError("expected unit name")
	}
	u, err := p.reg.Get(name)
	if err != nil {
		return nil, err
	}
	if p.eat("**") {
		n, err := p.integer()
		if err != nil {
			return nil, err
		}
		return u.Pow(float64(n))
	}
	return u, nil
}

// ident consumes a [A-Za-z_][A-Za-z0-9_]* run, returning "" when the input
// does not start with one.
func (p *exprParser) ident() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		alpha := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !alpha && !(p.pos > start && c >= '0' && c <= '9') {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

// integer consumes an optionally signed decimal integer.
func (p *exprParser) integer() (int, error) {
	start := p.pos
	if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
		p.pos++
	}
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		return 0, p.syntaxError("expected integer exponent")
	}
	return n, nil
}

func (p *exprParser) eat(tok string) bool {
	if strings.HasPrefix(p.input[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *exprParser) syntaxError(msg string) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrUnitExpression, msg, p.pos, p.input)
}
