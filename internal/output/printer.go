package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Printer writes semantic output in plain, styled or JSON form.
type Printer struct {
	styleProvider StyleProvider
	markdown      *MarkdownRenderer
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	testMode      bool
	silent        bool

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options. By default it
// writes to os.Stdout in ModeAuto, which styles output only when a style
// provider is set and the writer supports colour.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.mode == ModeAuto {
		p.mode = ModePlain
		if p.styleProvider != nil && SupportsColor(p.writer) {
			p.mode = ModeStyled
		}
	}
	return p
}

// Print outputs text without a trailing newline.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Printf outputs formatted text without a trailing newline.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println outputs text followed by a newline.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Banner outputs the greeting.
func (p *Printer) Banner(text string) {
	p.output(SemanticBanner, text, true)
}

// Prompt outputs the input prompt without a trailing newline.
func (p *Printer) Prompt(text string) {
	p.output(SemanticPrompt, text, false)
}

// Info outputs a status line.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs a completion line.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs a warning line.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs an error line.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Chart outputs a rendered chart.
func (p *Printer) Chart(text string) {
	p.output(SemanticChart, text, true)
}

// Response outputs a handler reply line by line. Each line is classified
// with ClassifyLine; "Label: value" lines style the label and the value
// separately. In plain mode the reply is written verbatim.
func (p *Printer) Response(text string) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode == ModeJSON {
		for _, line := range strings.Split(text, "\n") {
			kind, _, _ := ClassifyLine(line)
			p.write(p.renderJSON(kind, line))
		}
		return
	}
	if !p.stylable() {
		p.write(withNewline(text))
		return
	}

	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		kind, label, value := ClassifyLine(line)
		if kind == SemanticLabel {
			b.WriteString(p.style(SemanticLabel).Render(label + ":"))
			b.WriteString(" ")
			b.WriteString(p.style(SemanticResult).Render(value))
		} else {
			b.WriteString(p.style(kind).Render(line))
		}
		b.WriteString("\n")
	}
	p.write(b.String())
}

// Markdown renders md through glamour in styled mode. In plain, test and
// JSON modes fallback is printed through Response instead.
func (p *Printer) Markdown(md, fallback string) {
	if p.silent {
		return
	}
	if p.testMode || !p.IsStylable() {
		p.Response(fallback)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.markdown == nil {
		p.markdown = NewMarkdownRenderer(p.styleProvider)
	}
	rendered, err := p.markdown.Render(md)
	if err != nil {
		p.write(withNewline(fallback))
		return
	}
	p.write(withNewline(rendered))
}

// output is the core method behind every semantic write.
func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	switch p.mode {
	case ModeJSON:
		finalText = p.renderJSON(semantic, text)
	case ModeStyled:
		finalText = p.renderStyled(semantic, text)
	default:
		finalText = text
	}
	if addNewline && p.mode != ModeJSON {
		finalText = withNewline(finalText)
	}
	p.write(finalText)
}

func (p *Printer) write(text string) {
	_, _ = fmt.Fprint(p.writer, text) // Console writes are best effort
}

func (p *Printer) stylable() bool {
	return p.mode == ModeStyled && !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}

func (p *Printer) style(semantic SemanticType) TextStyle {
	if style := p.styleProvider.GetStyle(string(semantic)); style != nil {
		return style
	}
	return plainStyle{}
}

// renderStyled styles each line separately so a trailing newline or a
// multi-line chart keeps its layout.
func (p *Printer) renderStyled(semantic SemanticType, text string) string {
	if !p.stylable() || semantic == SemanticPlain {
		return text
	}
	style := p.style(semantic)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (p *Printer) renderJSON(semantic SemanticType, text string) string {
	out := map[string]interface{}{
		"type":    semantic,
		"message": text,
	}
	jsonBytes, err := json.Marshal(out)
	if err != nil {
		return text + "\n"
	}
	return string(jsonBytes) + "\n"
}

// Writer returns the destination writer.
func (p *Printer) Writer() io.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer
}

// SetWriter changes the output writer.
func (p *Printer) SetWriter(writer io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = writer
}

// SetMode changes the output mode.
func (p *Printer) SetMode(mode Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

// Mode returns the resolved output mode.
func (p *Printer) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// IsStylable returns true if the printer applies styles.
func (p *Printer) IsStylable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stylable()
}

// String returns a representation for debugging.
func (p *Printer) String() string {
	hasStyles := "no"
	if p.IsStylable() {
		hasStyles = "yes"
	}
	return fmt.Sprintf("Printer{mode: %v, styles: %s, writer: %T}", p.Mode(), hasStyles, p.writer)
}

// InfoWriter returns a writer that prints each write as an info line.
// Handlers report progress through it.
func (p *Printer) InfoWriter() io.Writer {
	return semanticWriter{p: p, semantic: SemanticInfo}
}

// ChartWriter returns a writer that prints each write as a chart.
func (p *Printer) ChartWriter() io.Writer {
	return semanticWriter{p: p, semantic: SemanticChart}
}

type semanticWriter struct {
	p        *Printer
	semantic SemanticType
}

func (w semanticWriter) Write(b []byte) (int, error) {
	w.p.output(w.semantic, strings.TrimSuffix(string(b), "\n"), true)
	return len(b), nil
}

func withNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

type plainStyle struct{}

func (plainStyle) Render(text string) string { return text }
