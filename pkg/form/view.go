package form

// EditorOptions configure the code editor when it is bound to its host element.
type EditorOptions struct {
	Mode        string
	LineNumbers bool
}

// Editor is the code editor holding the Blueprint text.
type Editor interface {
	Bind(opts EditorOptions) error
	Value() string
	SetValue(text string)
	// SetInputBorder styles the border of the editor's host element.
	SetInputBorder(css string)
}

// Banner is the message region above the results.
type Banner interface {
	Show()
	SetColor(color string)
	SetText(text string)
}

// Results is the container the diagram markup is rendered into.
type Results interface {
	SetContent(markup string)
	// ClearProcessed removes the marker the renderer leaves on a container it
	// already rendered, so the next Render pass picks it up again.
	ClearProcessed()
}

// Renderer is the diagramming library.
type Renderer interface {
	Initialize(startOnLoad bool)
	Render(scope Results)
}

// View bundles the page elements a Controller works on.
type View struct {
	Editor   Editor
	Banner   Banner
	Results  Results
	Renderer Renderer
}
