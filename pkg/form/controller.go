package form

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Fixed texts and styles of the form.
const (
	EditorMode          = "text/x-yaml"
	PlaceholderText     = "# Paste Blueprint specs yaml here...\n"
	SuccessMessage      = "Blueprint is Valid!"
	GenericErrorMessage = "Something went wrong! Please report this to me@prasadg.dev"

	NeutralBorder  = "1px solid #ced4da"
	NegativeBorder = "1px solid red"
	PositiveColor  = "green"
	NegativeColor  = "red"
)

// Validator sends Blueprint text to the validation endpoint and returns the
// diagram markup. A rejection with a readable message is reported as a
// *StatusError with Code 400.
type Validator interface {
	Validate(ctx context.Context, text string) (string, error)
}

// Controller owns the form's element handles and the validator.
type Controller struct {
	view      View
	validator Validator
	log       *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

func NewController(view View, validator Validator, opts ...Option) (*Controller, error) {
	if view.Editor == nil || view.Banner == nil || view.Results == nil || view.Renderer == nil {
		return nil, errors.New("form: view is missing an element")
	}
	if validator == nil {
		return nil, errors.New("form: validator is required")
	}
	c := &Controller{view: view, validator: validator, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Initialize binds the editor with YAML highlighting and line numbers, sets the
// renderer up so it only renders on request and seeds the placeholder text.
func (c *Controller) Initialize() error {
	if err := c.view.Editor.Bind(EditorOptions{Mode: EditorMode, LineNumbers: true}); err != nil {
		return fmt.Errorf("bind editor: %w", err)
	}
	c.view.Renderer.Initialize(false)
	c.view.Editor.SetValue(PlaceholderText)
	return nil
}

// Submit sends the current editor text to the validator and applies the
// outcome once it arrives. It returns immediately; the returned channel is
// closed after the outcome has been applied. Nothing is checked client side,
// an empty editor is submitted as an empty body.
func (c *Controller) Submit(ctx context.Context) <-chan struct{} {
	text := c.view.Editor.Value()
	c.view.Editor.SetInputBorder(NeutralBorder)
	c.log.Debug("submitting blueprint", zap.Int("bytes", len(text)))

	done := make(chan struct{})
	go func() {
		defer close(done)
		markup, err := c.validator.Validate(ctx, text)
		if err != nil {
			c.fail(err)
			return
		}
		c.succeed(markup)
	}()
	return done
}

func (c *Controller) succeed(markup string) {
	c.view.Banner.Show()
	c.view.Banner.SetColor(PositiveColor)
	c.view.Banner.SetText(SuccessMessage)
	c.view.Results.SetContent(markup)
	c.view.Results.ClearProcessed()
	c.view.Renderer.Render(c.view.Results)
}

func (c *Controller) fail(err error) {
	c.view.Editor.SetInputBorder(NegativeBorder)

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusBadRequest {
		c.DisplayError(statusErr.Body)
		return
	}
	c.log.Debug("validation failed", zap.Error(err))
	c.DisplayError(GenericErrorMessage)
}

// Clear empties the editor. It does not touch the network.
func (c *Controller) Clear() {
	c.view.Editor.SetValue("")
}

// DisplayError shows msg in the banner in the negative color.
func (c *Controller) DisplayError(msg string) {
	c.view.Banner.Show()
	c.view.Banner.SetText(msg)
	c.view.Banner.SetColor(NegativeColor)
}
