package form

import (
	"context"
	"sync"
)

// pageState is what the fake page looks like at a point in time.
type pageState struct {
	bound       *EditorOptions
	value       string
	border      string
	shown       bool
	color       string
	text        string
	content     string
	processed   bool
	startOnLoad *bool
	renders     int
	// events keeps the mutation order for ordering assertions.
	events []string
}

// fakePage records every element mutation the controller performs.
type fakePage struct {
	mu sync.Mutex
	pageState
}

func newFakePage() *fakePage { return &fakePage{pageState: pageState{processed: true}} }

func (p *fakePage) view() View {
	return View{
		Editor:   fakeEditor{p},
		Banner:   fakeBanner{p},
		Results:  fakeResults{p},
		Renderer: fakeRenderer{p},
	}
}

func (p *fakePage) record(event string) { p.events = append(p.events, event) }

func (p *fakePage) snapshot() pageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := p.pageState
	st.events = append([]string(nil), p.events...)
	return st
}

type fakeEditor struct{ p *fakePage }

func (e fakeEditor) Bind(opts EditorOptions) error {
	e.p.mu.Lock()
	defer e.p.mu.Unlock()
	e.p.bound = &opts
	e.p.record("bind")
	return nil
}

func (e fakeEditor) Value() string {
	e.p.mu.Lock()
	defer e.p.mu.Unlock()
	return e.p.value
}

func (e fakeEditor) SetValue(text string) {
	e.p.mu.Lock()
	defer e.p.mu.Unlock()
	e.p.value = text
	e.p.record("setValue")
}

func (e fakeEditor) SetInputBorder(css string) {
	e.p.mu.Lock()
	defer e.p.mu.Unlock()
	e.p.border = css
	e.p.record("border:" + css)
}

type fakeBanner struct{ p *fakePage }

func (b fakeBanner) Show() {
	b.p.mu.Lock()
	defer b.p.mu.Unlock()
	b.p.shown = true
	b.p.record("show")
}

func (b fakeBanner) SetColor(color string) {
	b.p.mu.Lock()
	defer b.p.mu.Unlock()
	b.p.color = color
	b.p.record("color:" + color)
}

func (b fakeBanner) SetText(text string) {
	b.p.mu.Lock()
	defer b.p.mu.Unlock()
	b.p.text = text
	b.p.record("text")
}

type fakeResults struct{ p *fakePage }

func (r fakeResults) SetContent(markup string) {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()
	r.p.content = markup
	r.p.record("content")
}

func (r fakeResults) ClearProcessed() {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()
	r.p.processed = false
	r.p.record("clearProcessed")
}

type fakeRenderer struct{ p *fakePage }

func (r fakeRenderer) Initialize(startOnLoad bool) {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()
	r.p.startOnLoad = &startOnLoad
	r.p.record("initRenderer")
}

func (r fakeRenderer) Render(scope Results) {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()
	if _, ok := scope.(fakeResults); ok {
		r.p.renders++
		r.p.processed = true
	}
	r.p.record("render")
}

// stubValidator answers every call with the same result.
type stubValidator struct {
	mu     sync.Mutex
	markup string
	err    error
	calls  []string
}

func (v *stubValidator) Validate(_ context.Context, text string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, text)
	return v.markup, v.err
}

func (v *stubValidator) requests() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

// gatedValidator blocks each call until the test releases it, so the test
// decides in which order overlapping submissions resolve.
type gatedValidator struct {
	arrived chan string
	answers map[string]chan answer
	mu      sync.Mutex
}

type answer struct {
	markup string
	err    error
}

func newGatedValidator() *gatedValidator {
	return &gatedValidator{arrived: make(chan string, 8), answers: make(map[string]chan answer)}
}

func (v *gatedValidator) gate(text string) chan answer {
	v.mu.Lock()
	defer v.mu.Unlock()
	ch, ok := v.answers[text]
	if !ok {
		ch = make(chan answer, 1)
		v.answers[text] = ch
	}
	return ch
}

func (v *gatedValidator) Validate(ctx context.Context, text string) (string, error) {
	ch := v.gate(text)
	v.arrived <- text
	select {
	case a := <-ch:
		return a.markup, a.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (v *gatedValidator) release(text string, a answer) { v.gate(text) <- a }
