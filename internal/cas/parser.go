package cas

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/njchilds90/gosymbol"

	"mathshell/pkg/mathtypes"
)

// Parse reads an expression in calculator syntax. Multiplication may be
// implicit (2x, 2(x+1), (x+1)(x-1), x y), functions may be applied
// without parentheses (sin x), and multi-letter names that are not
// functions, constants or Greek letters split into single-letter symbols
// (xy is x*y). Calls to factor, expand, simplify, diff and integrate are
// evaluated while parsing; limit builds an unevaluated Limit.
func Parse(src string) (mathtypes.Expression, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 {
		return nil, &ParseError{Input: src, Pos: -1, Msg: "empty expression"}
	}
	p := &parser{src: src, toks: toks}
	op, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s", t)
	}
	return p.result(op), nil
}

var mathFuncs = map[string]string{
	"sin": "sin", "cos": "cos", "tan": "tan", "cot": "cot", "sec": "sec", "csc": "csc",
	"asin": "asin", "acos": "acos", "atan": "atan",
	"arcsin": "asin", "arccos": "acos", "arctan": "atan",
	"sinh": "sinh", "cosh": "cosh", "tanh": "tanh",
	"exp": "exp", "log": "log", "ln": "log",
	"sqrt": "sqrt", "Abs": "Abs", "abs": "Abs", "sign": "sign",
}

var commands = map[string]bool{
	"factor": true, "expand": true, "simplify": true,
	"diff": true, "integrate": true, "limit": true, "Limit": true,
}

var constants = map[string]gosymbol.Expr{
	namePi: gosymbol.S(namePi),
	nameE:  gosymbol.S(nameE),
	nameI:  gosymbol.S(nameI),
	"oo":   infinity(1),
}

var greek = map[string]bool{
	"alpha": true, "beta": true, "gamma": true, "delta": true, "epsilon": true,
	"zeta": true, "eta": true, "theta": true, "iota": true, "kappa": true,
	"lambda": true, "mu": true, "nu": true, "xi": true, "omicron": true,
	"rho": true, "sigma": true, "tau": true, "upsilon": true, "phi": true,
	"chi": true, "psi": true, "omega": true,
}

type parser struct {
	src  string
	toks []token
	pos  int
	// decimal is set once a decimal literal has been read.
	decimal bool
}

// operand is a parsed sub-expression. Tuples and unevaluated limits only
// survive at the top level.
type operand struct {
	node  gosymbol.Expr
	tuple []operand
	limit *Limit
}

type argument struct {
	expr operand
	str  string
	name string
	tok  token
	set  bool
}

func (p *parser) mode() numberMode {
	if p.decimal {
		return decimal
	}
	return exact
}

func (p *parser) result(op operand) mathtypes.Expression {
	switch {
	case op.limit != nil:
		return op.limit
	case op.tuple != nil:
		items := make([]mathtypes.Expression, len(op.tuple))
		for i, item := range op.tuple {
			items[i] = p.result(item)
		}
		return &Tuple{items: items}
	}
	if p.decimal {
		return newTerm(foldFloats(op.node), decimal)
	}
	return newTerm(op.node, exact)
}

// foldFloats evaluates the numeric powers left in an expression that
// mixes decimals with radicals, as in sqrt(2)*0.5.
func foldFloats(e gosymbol.Expr) gosymbol.Expr {
	return rewrite(e, func(x gosymbol.Expr) gosymbol.Expr {
		pw, ok := x.(*gosymbol.Pow)
		if !ok {
			return x
		}
		n, ok := pw.ExpExpr().(*gosymbol.Num)
		if !ok {
			return x
		}
		var v float64
		switch b := pw.Base().(type) {
		case *gosymbol.Num:
			v = math.Pow(b.Float64(), n.Float64())
		case *gosymbol.Sym:
			if b.Name() != nameE {
				return x
			}
			v = math.Exp(n.Float64())
		default:
			return x
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return x
		}
		return gosymbol.NFloat(v)
	})
}

// value unwraps an operand for arithmetic, evaluating a nested limit.
func (p *parser) value(t token, op operand) (gosymbol.Expr, error) {
	switch {
	case op.tuple != nil:
		return nil, p.errorf(t, "unexpected tuple")
	case op.limit != nil:
		v, err := evalLimit(op.limit)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return op.node, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(text string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == text
}

func (p *parser) expect(text string) error {
	if !p.isOp(text) {
		t := p.peek()
		return p.errorf(t, "expected %q, found %s", text, t)
	}
	p.next()
	return nil
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return &ParseError{Input: p.src, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

// startsOperand reports whether t can begin an implicit factor.
func startsOperand(t token) bool {
	return t.kind == tokNum || t.kind == tokIdent || (t.kind == tokOp && t.text == "(")
}

// binary combines two operands with f after unwrapping them.
func (p *parser) binary(t token, a, b operand, f func(x, y gosymbol.Expr) gosymbol.Expr) (operand, error) {
	x, err := p.value(t, a)
	if err != nil {
		return operand{}, err
	}
	y, err := p.value(t, b)
	if err != nil {
		return operand{}, err
	}
	return operand{node: f(x, y)}, nil
}

func (p *parser) parseSum() (operand, error) {
	start := p.peek()
	left, err := p.parseTerm()
	if err != nil {
		return operand{}, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.next().text
		right, err := p.parseTerm()
		if err != nil {
			return operand{}, err
		}
		if op == "+" {
			left, err = p.binary(start, left, right, func(x, y gosymbol.Expr) gosymbol.Expr { return gosymbol.AddOf(x, y) })
		} else {
			left, err = p.binary(start, left, right, func(x, y gosymbol.Expr) gosymbol.Expr { return gosymbol.AddOf(x, neg(y)) })
		}
		if err != nil {
			return operand{}, err
		}
	}
	return left, nil
}

func (p *parser) parseTerm() (operand, error) {
	start := p.peek()
	left, err := p.parseUnary()
	if err != nil {
		return operand{}, err
	}
	for {
		var right operand
		divide := false
		switch {
		case p.isOp("*"):
			p.next()
			right, err = p.parseUnary()
		case p.isOp("/"):
			p.next()
			divide = true
			right, err = p.parseUnary()
		case startsOperand(p.peek()):
			right, err = p.parsePower()
		default:
			return left, nil
		}
		if err != nil {
			return operand{}, err
		}
		if divide {
			left, err = p.binary(start, left, right, func(x, y gosymbol.Expr) gosymbol.Expr { return mul(x, p.power(y, gosymbol.N(-1))) })
		} else {
			left, err = p.binary(start, left, right, mul)
		}
		if err != nil {
			return operand{}, err
		}
	}
}

func (p *parser) parseUnary() (operand, error) {
	switch {
	case p.isOp("-"):
		t := p.next()
		op, err := p.parseUnary()
		if err != nil {
			return operand{}, err
		}
		x, err := p.value(t, op)
		if err != nil {
			return operand{}, err
		}
		return operand{node: neg(x)}, nil
	case p.isOp("+"):
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (operand, error) {
	start := p.peek()
	base, err := p.parsePrimary()
	if err != nil {
		return operand{}, err
	}
	if p.isOp("**") {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return operand{}, err
		}
		return p.binary(start, base, exp, p.power)
	}
	return base, nil
}

func (p *parser) parsePrimary() (operand, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		n, err := p.parseNumber(t)
		return operand{node: n}, err
	case tokIdent:
		return p.parseIdent(t)
	case tokOp:
		if t.text == "(" {
			return p.parseGroup(t)
		}
	case tokEOF:
		return operand{}, p.errorf(t, "unexpected end of input")
	}
	return operand{}, p.errorf(t, "unexpected %s", t)
}

func (p *parser) parseNumber(t token) (gosymbol.Expr, error) {
	text := t.text
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, p.errorf(t, "invalid number %s", t)
	}
	if strings.ContainsAny(text, ".eE") {
		p.decimal = true
	}
	return numFromRat(r), nil
}

// parseGroup parses a parenthesized expression or tuple after "(".
func (p *parser) parseGroup(open token) (operand, error) {
	if p.isOp(")") {
		return operand{}, p.errorf(open, "empty parentheses")
	}
	var items []operand
	for {
		e, err := p.parseSum()
		if err != nil {
			return operand{}, err
		}
		items = append(items, e)
		if !p.isOp(",") {
			break
		}
		p.next()
	}
	if !p.isOp(")") {
		return operand{}, p.errorf(open, "unbalanced parentheses")
	}
	p.next()
	if len(items) == 1 {
		return items[0], nil
	}
	return operand{tuple: items}, nil
}

func (p *parser) parseIdent(t token) (operand, error) {
	name := t.text
	fn, isMath := mathFuncs[name]
	isCommand := commands[name]

	if p.isOp("(") {
		if isMath || isCommand {
			open := p.next()
			args, err := p.parseArgs(open)
			if err != nil {
				return operand{}, err
			}
			if isMath {
				n, err := p.applyFunc(t, fn, args)
				return operand{node: n}, err
			}
			return p.applyCommand(t, args)
		}
		if utf8.RuneCountInString(name) > 1 && !isPlainSymbol(name) && constants[name] == nil {
			return operand{}, p.errorf(t, "unknown function %q", name)
		}
		return operand{node: symbolValue(name)}, nil
	}

	if isMath {
		if !startsOperand(p.peek()) {
			return operand{}, p.errorf(t, "function %q needs an argument", name)
		}
		arg, err := p.parsePower()
		if err != nil {
			return operand{}, err
		}
		n, err := p.applyFunc(t, fn, []argument{{expr: arg, tok: t, set: true}})
		return operand{node: n}, err
	}
	if isCommand {
		return operand{}, p.errorf(t, "%s needs parenthesized arguments", name)
	}
	return operand{node: symbolValue(name)}, nil
}

// isPlainSymbol reports names that stay a single symbol even when
// followed by "(": Greek letters, and names carrying digits or "_".
func isPlainSymbol(name string) bool {
	if greek[name] {
		return true
	}
	return strings.ContainsAny(name, "_0123456789")
}

// splittable reports whether a multi-letter name becomes a product of
// single-letter symbols.
func splittable(name string) bool {
	if utf8.RuneCountInString(name) < 2 || greek[name] || constants[name] != nil {
		return false
	}
	return !strings.ContainsAny(name, "_0123456789")
}

func symbolValue(name string) gosymbol.Expr {
	if c, ok := constants[name]; ok {
		return c
	}
	if splittable(name) {
		var fs []gosymbol.Expr
		for _, r := range name {
			fs = append(fs, symbolValue(string(r)))
		}
		return gosymbol.MulOf(fs...)
	}
	return gosymbol.S(name)
}

func (p *parser) parseArgs(open token) ([]argument, error) {
	var args []argument
	if p.isOp(")") {
		p.next()
		return args, nil
	}
	for {
		start := p.peek()
		var a argument
		switch {
		case start.kind == tokIdent && p.toks[p.pos+1].kind == tokOp && p.toks[p.pos+1].text == "=":
			p.next()
			p.next()
			a.name = start.text
			v := p.peek()
			if v.kind == tokString {
				p.next()
				a.str = v.text
			} else {
				e, err := p.parseSum()
				if err != nil {
					return nil, err
				}
				a.expr, a.set = e, true
			}
		case start.kind == tokString:
			p.next()
			a.str = start.text
		default:
			e, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			a.expr, a.set = e, true
		}
		a.tok = start
		args = append(args, a)
		if !p.isOp(",") {
			break
		}
		p.next()
	}
	if !p.isOp(")") {
		return nil, p.errorf(open, "unbalanced parentheses")
	}
	p.next()
	return args, nil
}

func (p *parser) positional(fn token, args []argument, min, max int) ([]gosymbol.Expr, error) {
	var out []gosymbol.Expr
	for _, a := range args {
		if a.name != "" || !a.set {
			return nil, p.errorf(a.tok, "unexpected argument to %s", fn.text)
		}
		x, err := p.value(a.tok, a.expr)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	if len(out) < min || len(out) > max {
		if min == max {
			return nil, p.errorf(fn, "%s takes %d argument(s), got %d", fn.text, min, len(out))
		}
		return nil, p.errorf(fn, "%s takes %d to %d arguments, got %d", fn.text, min, max, len(out))
	}
	return out, nil
}

func (p *parser) applyFunc(t token, fn string, args []argument) (gosymbol.Expr, error) {
	if fn == "log" {
		xs, err := p.positional(t, args, 1, 2)
		if err != nil {
			return nil, err
		}
		if len(xs) == 2 {
			return mul(p.ln(xs[0]), p.power(p.ln(xs[1]), gosymbol.N(-1))), nil
		}
		return p.ln(xs[0]), nil
	}
	xs, err := p.positional(t, args, 1, 1)
	if err != nil {
		return nil, err
	}
	x := xs[0]
	switch fn {
	case "sqrt":
		return p.power(x, gosymbol.F(1, 2)), nil
	case "exp":
		return p.exp(x), nil
	case "sin", "cos", "tan":
		if v, ok := trigValue(fn, x); ok {
			return v, nil
		}
	case "cot":
		return p.power(p.trig("tan", x), gosymbol.N(-1)), nil
	case "sec":
		return p.power(p.trig("cos", x), gosymbol.N(-1)), nil
	case "csc":
		return p.power(p.trig("sin", x), gosymbol.N(-1)), nil
	case "Abs":
		if n, ok := x.(*gosymbol.Num); ok {
			return numFromRat(new(big.Rat).Abs(n.Rat())), nil
		}
		return gosymbol.AbsOf(x), nil
	}
	return funcBuilders[fn](x), nil
}

func (p *parser) trig(fn string, x gosymbol.Expr) gosymbol.Expr {
	if v, ok := trigValue(fn, x); ok {
		return v
	}
	return funcBuilders[fn](x)
}

// ln keeps logarithms of E exact.
func (p *parser) ln(x gosymbol.Expr) gosymbol.Expr {
	if isSymbol(x, nameE) {
		return gosymbol.N(1)
	}
	if pw, ok := x.(*gosymbol.Pow); ok && isSymbol(pw.Base(), nameE) {
		return pw.ExpExpr()
	}
	return gosymbol.LnOf(x)
}

// exp writes exp of a rational as a power of E so that it stays exact.
func (p *parser) exp(x gosymbol.Expr) gosymbol.Expr {
	if n, ok := x.(*gosymbol.Num); ok {
		if n.IsZero() {
			return gosymbol.N(1)
		}
		if p.decimal {
			return gosymbol.NFloat(math.Exp(n.Float64()))
		}
		return gosymbol.PowOf(constants[nameE], n)
	}
	return gosymbol.ExpOf(x)
}

// power builds base**exp, evaluating numeric powers exactly where the
// result is rational or a simplified radical.
func (p *parser) power(base, exp gosymbol.Expr) gosymbol.Expr {
	if isSymbol(base, nameE) {
		if _, ok := exp.(*gosymbol.Num); !ok {
			return gosymbol.ExpOf(exp)
		}
	}
	b, ok1 := base.(*gosymbol.Num)
	e, ok2 := exp.(*gosymbol.Num)
	if !ok1 || !ok2 {
		return gosymbol.PowOf(base, exp)
	}
	if e.IsInteger() {
		if k := e.Rat().Num(); k.IsInt64() {
			if v, ok := powNum(b, k.Int64()); ok {
				return v
			}
		}
		return gosymbol.PowOf(base, exp)
	}
	if p.decimal {
		if v := math.Pow(b.Float64(), e.Float64()); !math.IsNaN(v) && !math.IsInf(v, 0) {
			return gosymbol.NFloat(v)
		}
	}
	return radical(b, e)
}

// radical evaluates b**e for a non-integer rational e = k/q, pulling
// perfect powers out of the root. Square roots of negative numbers
// become multiples of I.
func radical(b, e *gosymbol.Num) gosymbol.Expr {
	r := e.Rat()
	if !r.Num().IsInt64() || !r.Denom().IsInt64() || r.Denom().Int64() > 64 {
		return gosymbol.PowOf(b, e)
	}
	k, q := r.Num().Int64(), r.Denom().Int64()
	if b.IsZero() {
		return gosymbol.PowOf(b, e)
	}
	var unit gosymbol.Expr = gosymbol.N(1)
	if b.IsNegative() {
		if q != 2 {
			return gosymbol.PowOf(b, e)
		}
		unit = gosymbol.PowOf(constants[nameI], gosymbol.N(k))
		b = numFromRat(new(big.Rat).Neg(b.Rat()))
	}
	bk, ok := powNum(b, k)
	if !ok {
		return gosymbol.PowOf(b, e)
	}
	coeff, rest := rootOf(bk, q)
	return tidy(gosymbol.MulOf(unit, coeff, gosymbol.PowOf(rest, gosymbol.F(1, q))))
}

// neg negates e, distributing over a sum.
func neg(e gosymbol.Expr) gosymbol.Expr {
	if c, ok := e.(*gosymbol.ConstantNode); ok && c.String() == "inf" {
		return infinity(-1)
	}
	return mul(gosymbol.N(-1), e)
}

// mul multiplies, distributing a number over a sum: 2*(x + 1) is 2*x + 2.
func mul(a, b gosymbol.Expr) gosymbol.Expr {
	if n, ok := a.(*gosymbol.Num); ok {
		if s, ok := b.(*gosymbol.Add); ok {
			return distribute(n, s)
		}
	}
	if n, ok := b.(*gosymbol.Num); ok {
		if s, ok := a.(*gosymbol.Add); ok {
			return distribute(n, s)
		}
	}
	return gosymbol.MulOf(a, b)
}

func distribute(n *gosymbol.Num, s *gosymbol.Add) gosymbol.Expr {
	terms := make([]gosymbol.Expr, len(s.Terms()))
	for i, t := range s.Terms() {
		terms[i] = gosymbol.MulOf(n, t)
	}
	return gosymbol.AddOf(terms...)
}

func (p *parser) applyCommand(t token, args []argument) (operand, error) {
	switch t.text {
	case "factor", "expand", "simplify":
		xs, err := p.positional(t, args, 1, 1)
		if err != nil {
			return operand{}, err
		}
		switch t.text {
		case "factor":
			return operand{node: factorNode(xs[0])}, nil
		case "expand":
			return operand{node: expandNode(xs[0])}, nil
		}
		return operand{node: simplifyNode(xs[0])}, nil

	case "diff", "integrate":
		xs, err := p.positional(t, args, 1, 3)
		if err != nil {
			return operand{}, err
		}
		if t.text == "integrate" && len(xs) > 2 {
			return operand{}, p.errorf(t, "integrate takes 1 to 2 arguments, got %d", len(xs))
		}
		x, err := p.variableArg(t, xs)
		if err != nil {
			return operand{}, err
		}
		if x == "" {
			if t.text == "diff" {
				return operand{node: gosymbol.N(0)}, nil
			}
			return operand{}, p.errorf(t, "integrate needs an explicit variable for %s", format(xs[0], p.mode()))
		}
		if t.text == "integrate" {
			n, err := integrateNode(xs[0], x)
			return operand{node: n}, err
		}
		order := 1
		if len(xs) == 3 {
			n, ok := xs[2].(*gosymbol.Num)
			if !ok || !n.IsInteger() || n.IsNegative() || !n.Rat().Num().IsInt64() || n.Rat().Num().Int64() > 64 {
				return operand{}, p.errorf(t, "derivative order must be a small non-negative integer")
			}
			order = int(n.Rat().Num().Int64())
		}
		out := xs[0]
		for i := 0; i < order; i++ {
			out = diffNode(out, x)
		}
		return operand{node: out}, nil

	case "limit", "Limit":
		var pos []operand
		var toks []token
		dir := ""
		for _, a := range args {
			switch {
			case a.name == "dir" && a.str != "":
				dir = a.str
			case a.name != "":
				return operand{}, p.errorf(a.tok, "unexpected keyword %q", a.name)
			case !a.set && len(pos) == 3:
				dir = a.str
			case !a.set:
				return operand{}, p.errorf(a.tok, "unexpected string argument")
			default:
				pos = append(pos, a.expr)
				toks = append(toks, a.tok)
			}
		}
		if len(pos) != 3 {
			return operand{}, p.errorf(t, "%s takes 3 arguments, got %d", t.text, len(pos))
		}
		vals := make([]gosymbol.Expr, 3)
		for i := range pos {
			v, err := p.value(toks[i], pos[i])
			if err != nil {
				return operand{}, err
			}
			vals[i] = v
		}
		sym, ok := vals[1].(*gosymbol.Sym)
		if !ok || constantNames[sym.Name()] {
			return operand{}, p.errorf(t, "limit variable must be a symbol, got %s", format(vals[1], p.mode()))
		}
		if dir != "" && dir != "+" && dir != "-" {
			return operand{}, p.errorf(t, "limit direction must be '+' or '-'")
		}
		return operand{limit: &Limit{
			expr:     newTerm(vals[0], p.mode()),
			variable: sym.Name(),
			point:    newTerm(vals[2], p.mode()),
			dir:      dir,
		}}, nil
	}
	return operand{}, p.errorf(t, "unknown function %q", t.text)
}

// variableArg returns the explicit variable of diff or integrate, or the
// only free symbol. An empty name means the expression is constant.
func (p *parser) variableArg(t token, xs []gosymbol.Expr) (string, error) {
	if len(xs) >= 2 {
		s, ok := xs[1].(*gosymbol.Sym)
		if !ok || constantNames[s.Name()] {
			return "", p.errorf(t, "%s variable must be a symbol, got %s", t.text, format(xs[1], p.mode()))
		}
		return s.Name(), nil
	}
	syms := FreeSymbols(newTerm(xs[0], p.mode()))
	switch len(syms) {
	case 0:
		return "", nil
	case 1:
		return syms[0], nil
	}
	return "", p.errorf(t, "%s needs an explicit variable for %s", t.text, format(xs[0], p.mode()))
}

// trigValue returns exact values of sin, cos and tan at multiples of
// pi/6 and pi/4.
func trigValue(fn string, x gosymbol.Expr) (gosymbol.Expr, bool) {
	r, ok := piMultiple(x)
	if !ok {
		return nil, false
	}
	twelfths := new(big.Rat).Mul(r, big.NewRat(12, 1))
	if !twelfths.IsInt() || !twelfths.Num().IsInt64() {
		return nil, false
	}
	k := ((twelfths.Num().Int64() % 24) + 24) % 24
	switch fn {
	case "sin":
		return sinTwelfths(k)
	case "cos":
		return sinTwelfths(k + 6)
	}
	v, ok := tanTwelfths[k%12]
	return v, ok
}

func piMultiple(x gosymbol.Expr) (*big.Rat, bool) {
	if isSymbol(x, namePi) {
		return big.NewRat(1, 1), true
	}
	m, ok := x.(*gosymbol.Mul)
	if !ok || len(m.Factors()) != 2 || !isSymbol(m.Factors()[1], namePi) {
		return nil, false
	}
	n, ok := m.Factors()[0].(*gosymbol.Num)
	if !ok {
		return nil, false
	}
	return n.Rat(), true
}

func sqrtOf(n int64) gosymbol.Expr { return gosymbol.PowOf(gosymbol.N(n), gosymbol.F(1, 2)) }

// sinTwelfths returns sin(k*pi/12).
func sinTwelfths(k int64) (gosymbol.Expr, bool) {
	k = ((k % 24) + 24) % 24
	sign := int64(1)
	if k >= 12 {
		k -= 12
		sign = -1
	}
	if k > 6 {
		k = 12 - k
	}
	var v gosymbol.Expr
	switch k {
	case 0:
		v = gosymbol.N(0)
	case 2:
		v = gosymbol.F(1, 2)
	case 3:
		v = gosymbol.MulOf(gosymbol.F(1, 2), sqrtOf(2))
	case 4:
		v = gosymbol.MulOf(gosymbol.F(1, 2), sqrtOf(3))
	case 6:
		v = gosymbol.N(1)
	default:
		return nil, false
	}
	return gosymbol.MulOf(gosymbol.N(sign), v), true
}

var tanTwelfths = map[int64]gosymbol.Expr{
	0:  gosymbol.N(0),
	2:  gosymbol.MulOf(gosymbol.F(1, 3), sqrtOf(3)),
	3:  gosymbol.N(1),
	4:  sqrtOf(3),
	8:  gosymbol.MulOf(gosymbol.N(-1), sqrtOf(3)),
	9:  gosymbol.N(-1),
	10: gosymbol.MulOf(gosymbol.F(-1, 3), sqrtOf(3)),
}
