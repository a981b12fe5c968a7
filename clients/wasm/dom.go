//go:build js && wasm

package main

import (
	"errors"
	"syscall/js"

	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/form"
)

// Element IDs of the form page.
const (
	editorHostID   = "yamlSpecs"
	editorSelector = ".codemirror-textarea"
	messageID      = "message"
	messageSpanID  = "message-span"
	resultsID      = "sequence"
)

// codeMirrorEditor binds the CodeMirror widget to the editor textarea.
type codeMirrorEditor struct {
	doc  js.Value
	host js.Value
	cm   js.Value
}

func newEditor(doc js.Value) *codeMirrorEditor {
	return &codeMirrorEditor{doc: doc, host: doc.Call("getElementById", editorHostID), cm: js.Undefined()}
}

func (e *codeMirrorEditor) Bind(opts form.EditorOptions) error {
	input := e.doc.Call("querySelector", editorSelector)
	if input.IsNull() {
		return errors.New("editor textarea not found")
	}
	cm := js.Global().Get("CodeMirror")
	if cm.IsUndefined() {
		return errors.New("CodeMirror is not loaded")
	}
	e.cm = cm.Call("fromTextArea", input, map[string]interface{}{
		"mode":        opts.Mode,
		"lineNumbers": opts.LineNumbers,
	})
	return nil
}

func (e *codeMirrorEditor) Value() string {
	if e.cm.IsUndefined() {
		return e.host.Get("value").String()
	}
	return e.cm.Call("getValue").String()
}

func (e *codeMirrorEditor) SetValue(text string) {
	if e.cm.IsUndefined() {
		e.host.Set("value", text)
		return
	}
	e.cm.Call("setValue", text)
}

func (e *codeMirrorEditor) SetInputBorder(css string) {
	if !e.host.IsNull() {
		e.host.Get("style").Set("border", css)
	}
	// The textarea is hidden behind CodeMirror, style the visible wrapper too.
	if !e.cm.IsUndefined() {
		e.cm.Call("getWrapperElement").Get("style").Set("border", css)
	}
}

type domBanner struct {
	message js.Value
	span    js.Value
}

func newBanner(doc js.Value) *domBanner {
	return &domBanner{
		message: doc.Call("getElementById", messageID),
		span:    doc.Call("getElementById", messageSpanID),
	}
}

func (b *domBanner) Show()                 { b.message.Get("style").Set("display", "block") }
func (b *domBanner) SetColor(color string) { b.message.Get("style").Set("color", color) }
func (b *domBanner) SetText(text string)   { b.span.Set("textContent", text) }

type domResults struct {
	container js.Value
}

func newResults(doc js.Value) *domResults {
	return &domResults{container: doc.Call("getElementById", resultsID)}
}

func (r *domResults) SetContent(markup string) { r.container.Set("innerHTML", markup) }
func (r *domResults) ClearProcessed()          { r.container.Call("removeAttribute", "data-processed") }

// mermaidRenderer wraps the global mermaid object.
type mermaidRenderer struct{}

func newRenderer() mermaidRenderer { return mermaidRenderer{} }

func (mermaidRenderer) Initialize(startOnLoad bool) {
	mermaid := js.Global().Get("mermaid")
	if mermaid.IsUndefined() {
		return
	}
	mermaid.Call("initialize", map[string]interface{}{"startOnLoad": startOnLoad})
}

func (mermaidRenderer) Render(scope form.Results) {
	mermaid := js.Global().Get("mermaid")
	results, ok := scope.(*domResults)
	if mermaid.IsUndefined() || !ok {
		return
	}
	mermaid.Call("init", js.Undefined(), results.container)
}
