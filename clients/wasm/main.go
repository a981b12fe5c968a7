//go:build js && wasm

// Blueprint form WASM client.
// Compiled with: GOOS=js GOARCH=wasm go build -o pkg/api_client/web/form.wasm ./clients/wasm/
package main

import (
	"context"
	"syscall/js"

	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/form"
	"go.uber.org/zap"
)

const defaultEndpoint = "/v1/validate"

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		log = zap.NewNop()
	}
	defer func() { _ = log.Sync() }()

	doc := js.Global().Get("document")
	view := form.View{
		Editor:   newEditor(doc),
		Banner:   newBanner(doc),
		Results:  newResults(doc),
		Renderer: newRenderer(),
	}
	validator := form.NewHTTPValidator(endpoint(), form.ClientOptions{})

	controller, err := form.NewController(view, validator, form.WithLogger(log))
	if err != nil {
		log.Error("form controller", zap.Error(err))
		return
	}
	if err := controller.Initialize(); err != nil {
		log.Error("form initialize", zap.Error(err))
		return
	}

	// Callbacks must not block the event loop; Submit returns immediately.
	onClick(doc, "validate", func() { controller.Submit(context.Background()) })
	onClick(doc, "clearYaml", controller.Clear)

	js.Global().Set("goFormReady", js.ValueOf(true))
	log.Info("blueprint form loaded", zap.String("endpoint", endpoint()))

	// Block forever (WASM must not exit).
	select {}
}

func endpoint() string {
	if v := js.Global().Get("BLUEPRINT_VALIDATE_URL"); v.Type() == js.TypeString && v.String() != "" {
		return v.String()
	}
	return defaultEndpoint
}

func onClick(doc js.Value, id string, fn func()) {
	el := doc.Call("getElementById", id)
	if el.IsNull() {
		return
	}
	el.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn()
		return nil
	}))
	el.Set("disabled", false)
}
