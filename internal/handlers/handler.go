// Package handlers answers classified input lines. There is one handler
// per route. Each handler strips its keywords, parses through the parser
// adapter, calls the backend and formats the reply in Uzbek. Handlers
// never return errors: every failure becomes a message carrying the
// handler's label, so one bad line cannot disturb the next.
package handlers

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"mathshell/internal/classify"
	"mathshell/internal/logger"
	"mathshell/internal/parser"
	"mathshell/pkg/mathtypes"
)

// Handler answers the lines of one route.
type Handler interface {
	// Route returns the route this handler serves.
	Route() classify.Route
	// Name returns the route name used for registration and lookup.
	Name() string
	// Description returns a one-line summary.
	Description() string
	// Usage returns the input syntax.
	Usage() string
	// HelpInfo returns structured help for the route.
	HelpInfo() mathtypes.HelpInfo
	// Handle formats the reply for one raw input line.
	Handle(line string) string
}

// MarkdownHandler is implemented by handlers whose reply has a markdown
// rendering for styled terminals.
type MarkdownHandler interface {
	Markdown() string
}

// Deps are the collaborators shared by the handlers.
type Deps struct {
	// Parser parses user text. Required.
	Parser *parser.Adapter
	// Plotter draws charts. Nil means plotting is unavailable.
	Plotter mathtypes.Plotter
	// DefaultVariable is used when an expression has no free symbols.
	DefaultVariable string
	// Status receives progress lines printed while a handler works, such
	// as the plot announcement. Nil discards them.
	Status io.Writer
}

func (d Deps) backend() mathtypes.Backend { return d.Parser.Backend() }

func (d Deps) status() io.Writer {
	if d.Status == nil {
		return io.Discard
	}
	return d.Status
}

func (d Deps) defaultVariable() string {
	if d.DefaultVariable == "" {
		return "x"
	}
	return d.DefaultVariable
}

// base carries what every handler needs.
type base struct {
	deps   Deps
	logger *log.Logger
}

func newBase(deps Deps, component string) base {
	return base{deps: deps, logger: logger.NewStyledLogger(component)}
}

// variableOf returns the lexicographically first free symbol of e, or the
// default variable when e has none.
func (b base) variableOf(e mathtypes.Expression) string {
	if syms := b.deps.backend().FreeSymbols(e); len(syms) > 0 {
		return syms[0]
	}
	return b.deps.defaultVariable()
}

// target parses text into the expression to operate on and its variable.
// The tuple form (f, v) names the variable explicitly.
func (b base) target(text string) (mathtypes.Expression, string, error) {
	e, err := b.deps.Parser.Parse(text)
	if err != nil {
		return nil, "", err
	}
	tup, ok := e.(mathtypes.Tuple)
	if !ok {
		return e, b.variableOf(e), nil
	}
	els := tup.Elements()
	if len(els) == 2 {
		if name, ok := b.symbolName(els[1]); ok {
			return els[0], name, nil
		}
	}
	return nil, "", fmt.Errorf("expected (expression, variable), got %s: %w", e, mathtypes.ErrParse)
}

// symbolName reports whether e is a bare symbol and returns its name.
func (b base) symbolName(e mathtypes.Expression) (string, bool) {
	syms := b.deps.backend().FreeSymbols(e)
	if len(syms) == 1 && syms[0] == e.String() {
		return syms[0], true
	}
	return "", false
}

// unionSymbols merges symbol lists into one sorted, duplicate-free list.
func unionSymbols(lists ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

// stripKeywords removes every occurrence of the keywords from s, ignoring
// case. A keyword made of letters only counts when it stands alone as an
// identifier, so integrals and a_diff are kept.
func stripKeywords(s string, keywords ...string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if n := keywordAt(s, i, keywords); n > 0 {
			b.WriteByte(' ')
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return strings.TrimSpace(b.String())
}

// keywordAt returns the length of the keyword starting at s[i], or 0.
func keywordAt(s string, i int, keywords []string) int {
	for _, k := range keywords {
		if len(s)-i < len(k) || !strings.EqualFold(s[i:i+len(k)], k) {
			continue
		}
		if isWord(k) && (endsIdentifier(s[:i]) || continuesIdentifier(s[i+len(k):])) {
			continue
		}
		return len(k)
	}
	return 0
}

// stripTrailingDx removes a final dx token unless it ends a longer
// identifier such as a_dx.
func stripTrailingDx(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || !strings.EqualFold(s[len(s)-2:], "dx") {
		return s
	}
	rest := s[:len(s)-2]
	if r, _ := utf8.DecodeLastRuneInString(rest); rest != "" && (unicode.IsLetter(r) || r == '_') {
		return s
	}
	return strings.TrimSpace(rest)
}

func isWord(k string) bool {
	for _, r := range k {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func endsIdentifier(prefix string) bool {
	r, _ := utf8.DecodeLastRuneInString(prefix)
	return prefix != "" && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

func continuesIdentifier(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	return rest != "" && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
