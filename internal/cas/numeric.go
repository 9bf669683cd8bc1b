package cas

import (
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/njchilds90/gosymbol"
)

const significantDigits = 15

// formatSig prints with fifteen significant digits, the precision of a
// float64, so 14 prints as 14.0000000000000.
func formatSig(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsInf(v, 1):
		return "oo"
	case math.IsInf(v, -1):
		return "-oo"
	case math.IsNaN(v):
		return "nan"
	}
	s := strconv.FormatFloat(v, 'e', significantDigits-1, 64)
	mant, expPart, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expPart)
	if exp >= -5 && exp < significantDigits {
		return strconv.FormatFloat(v, 'f', significantDigits-1-exp, 64)
	}
	sign := "+"
	if exp < 0 {
		sign = "-"
		exp = -exp
	}
	return mant + "e" + sign + strconv.Itoa(exp)
}

// numFromRat builds an exact gosymbol number of any size. Numerator and
// denominator are assembled from 31-bit limbs, which gosymbol folds
// exactly.
func numFromRat(r *big.Rat) *gosymbol.Num {
	if r.Num().IsInt64() && r.Denom().IsInt64() {
		return gosymbol.F(r.Num().Int64(), r.Denom().Int64())
	}
	n := numFromInt(r.Num())
	d := numFromInt(r.Denom())
	return gosymbol.MulOf(n, gosymbol.PowOf(d, gosymbol.N(-1))).(*gosymbol.Num)
}

func numFromInt(v *big.Int) *gosymbol.Num {
	if v.IsInt64() {
		return gosymbol.N(v.Int64())
	}
	const limb = 31
	abs := new(big.Int).Abs(v)
	var acc gosymbol.Expr = gosymbol.N(0)
	for i := abs.BitLen() / limb; i >= 0; i-- {
		chunk := new(big.Int).Rsh(abs, uint(i*limb))
		chunk.And(chunk, big.NewInt(1<<limb-1))
		acc = gosymbol.AddOf(gosymbol.MulOf(acc, gosymbol.N(1<<limb)), gosymbol.N(chunk.Int64()))
	}
	if v.Sign() < 0 {
		acc = gosymbol.MulOf(gosymbol.N(-1), acc)
	}
	return acc.(*gosymbol.Num)
}

// maxExactExponent bounds the integer powers computed exactly.
const maxExactExponent = 1024

// powNum raises a rational to an integer power exactly.
func powNum(b *gosymbol.Num, e int64) (*gosymbol.Num, bool) {
	if e < -maxExactExponent || e > maxExactExponent {
		return nil, false
	}
	r := b.Rat()
	if r.Sign() == 0 && e < 0 {
		return nil, false
	}
	k := e
	if k < 0 {
		k = -k
	}
	num := new(big.Int).Exp(r.Num(), big.NewInt(k), nil)
	den := new(big.Int).Exp(r.Denom(), big.NewInt(k), nil)
	if e < 0 {
		num, den = den, num
	}
	return numFromRat(new(big.Rat).SetFrac(num, den)), true
}

// trialDivisionCap bounds the search for perfect-power factors.
const trialDivisionCap = 1000

// rootOf splits v**(1/q) into coeff * rest**(1/q) with the largest
// perfect q-th power moved into coeff. v must be positive.
func rootOf(v *gosymbol.Num, q int64) (*gosymbol.Num, *gosymbol.Num) {
	// v = n/d, so v**(1/q) = (n * d**(q-1))**(1/q) / d.
	r := v.Rat()
	n, d := r.Num(), r.Denom()
	m := new(big.Int).Mul(n, new(big.Int).Exp(d, big.NewInt(q-1), nil))

	outside := big.NewInt(1)
	rest := new(big.Int).Set(m)

	if root, ok := exactRoot(rest, q); ok {
		outside.Mul(outside, root)
		rest.SetInt64(1)
	} else if rest.IsInt64() {
		for f := int64(2); f <= trialDivisionCap; f++ {
			fq := new(big.Int).Exp(big.NewInt(f), big.NewInt(q), nil)
			if fq.Cmp(rest) > 0 {
				break
			}
			for new(big.Int).Mod(rest, fq).Sign() == 0 {
				rest.Div(rest, fq)
				outside.Mul(outside, big.NewInt(f))
			}
		}
	}
	return numFromRat(new(big.Rat).SetFrac(outside, d)), numFromInt(rest)
}

// exactRoot returns the integer q-th root of m when m is a perfect power.
func exactRoot(m *big.Int, q int64) (*big.Int, bool) {
	if m.Sign() <= 0 {
		return nil, false
	}
	if q == 2 {
		r := new(big.Int).Sqrt(m)
		return r, new(big.Int).Mul(r, r).Cmp(m) == 0
	}
	// Binary search on [1, 2**(bitlen/q + 1)].
	lo := big.NewInt(1)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(m.BitLen()/int(q)+1))
	bq := big.NewInt(q)
	for lo.Cmp(hi) <= 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Rsh(mid, 1)
		c := new(big.Int).Exp(mid, bq, nil).Cmp(m)
		switch {
		case c == 0:
			return mid, true
		case c < 0:
			lo.Add(mid, big.NewInt(1))
		default:
			hi.Sub(mid, big.NewInt(1))
		}
	}
	return nil, false
}

// constantValues binds the named constants for numeric evaluation.
func constantValues() map[string]float64 {
	return map[string]float64{namePi: math.Pi, nameE: math.E}
}

// evalReal evaluates a tree without I at the given symbol values.
func evalReal(e gosymbol.Expr, env map[string]float64) float64 {
	vars := constantValues()
	for k, v := range env {
		vars[k] = v
	}
	f, err := gosymbol.LambdifyToGoFunction(e)
	if err != nil {
		return math.NaN()
	}
	return f(vars)
}

// evalComplex evaluates e, splitting it into real and imaginary parts
// along the powers of I. It fails when I appears other than linearly.
func evalComplex(e gosymbol.Expr, env map[string]float64) (complex128, bool) {
	if !dependsOn(e, nameI) {
		v := evalReal(e, env)
		return complex(v, 0), !math.IsNaN(v)
	}
	parts := gosymbol.PolyCoeffs(gosymbol.Expand(e), nameI)
	var re, im float64
	for deg, coeff := range parts {
		if dependsOn(coeff, nameI) {
			return 0, false
		}
		v := evalReal(coeff, env)
		if math.IsNaN(v) {
			return 0, false
		}
		switch ((deg % 4) + 4) % 4 {
		case 0:
			re += v
		case 1:
			im += v
		case 2:
			re -= v
		case 3:
			im -= v
		}
	}
	return complex(re, im), true
}

// Evalf evaluates e to a floating-point number.
func Evalf(e *Term) (*Term, error) {
	if len(symbolsOf(e.node)) > 0 || containsInfinity(e.node) {
		return nil, &EvaluationError{Op: "evalf", Expr: e.String(), Reason: "expression is not numeric"}
	}
	v, ok := evalComplex(e.node, nil)
	if !ok || cmplx.IsNaN(v) {
		return nil, &EvaluationError{Op: "evalf", Expr: e.String(), Reason: "value is undefined"}
	}
	return &Term{node: complexNode(v), mode: floating}, nil
}

func complexNode(v complex128) gosymbol.Expr {
	re, im := real(v), imag(v)
	if im == 0 {
		return floatNode(re)
	}
	return gosymbol.AddOf(floatNode(re), gosymbol.MulOf(floatNode(im), gosymbol.S(nameI)))
}

func floatNode(v float64) gosymbol.Expr {
	if math.IsInf(v, 0) {
		return infinity(int(math.Copysign(1, v)))
	}
	return gosymbol.NFloat(v)
}

func containsInfinity(e gosymbol.Expr) bool {
	found := false
	rewrite(e, func(x gosymbol.Expr) gosymbol.Expr {
		if isInfinity(x) {
			found = true
		}
		return x
	})
	return found
}
