package api_client

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

// web bevat de formulierpagina. form.wasm en wasm_exec.js worden door
// `make wasm` naast index.html gezet.
//
//go:embed web
var webContent embed.FS

// registerStatic serves the embedded form page on / and its assets on /static.
func registerStatic(g *gin.Engine) error {
	webFS, err := fs.Sub(webContent, "web")
	if err != nil {
		return err
	}
	index, err := fs.ReadFile(webFS, "index.html")
	if err != nil {
		return err
	}
	g.StaticFS("/static", http.FS(webFS))
	g.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	return nil
}
