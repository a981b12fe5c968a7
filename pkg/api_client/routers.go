package api_client

import (
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/handler"
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/helper/logging"
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/helper/problem"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
	"go.uber.org/zap"
)

var (
	apiVersionHeader = fizz.Header(
		"API-Version",
		"De API-versie van de response",
		"",
	)

	notFoundResponse = fizz.Response(
		"404",
		"Not Found",
		nil,
		nil,
		nil,
	)
)

// RouterOptions bundelt de instellingen die de router nodig heeft
type RouterOptions struct {
	APIVersion     string
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *zap.Logger
}

func NewRouter(opts RouterOptions, controller *handler.BlueprintController) (*fizz.Fizz, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	tonic.SetErrorHook(problem.ErrorHook)
	tonic.SetRenderHook(renderHook, tonic.MediaType())

	g := gin.New()
	g.Use(logging.Recovery(log), logging.Middleware(log))

	// CORS: de validator wordt ook vanaf andere origins aangeroepen
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "API-Version", logging.RequestIDHeader}
	config.ExposeHeaders = []string{"API-Version", handler.DiagramIDHeader, logging.RequestIDHeader}
	g.Use(cors.New(config))

	g.Use(APIVersionMiddleware(opts.APIVersion))

	if err := registerStatic(g); err != nil {
		return nil, err
	}

	f := fizz.NewFromEngine(g)

	info := &openapi.Info{
		Title:       "Blueprint Visualizer API v1",
		Description: "Valideert Kanister Blueprints en zet ze om naar Mermaid sequence diagrammen",
		Version:     opts.APIVersion,
		Contact: &openapi.Contact{
			Name:  "Blueprint Visualizer",
			Email: "me@prasadg.dev",
		},
	}

	root := f.Group("/v1", "API v1", "Blueprint Visualizer V1 routes")

	blueprints := root.Group("", "Blueprints", "Validatie en visualisatie")
	blueprints.Use(RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))

	// POST /v1/validate
	blueprints.POST("/validate",
		[]fizz.OperationOption{
			fizz.ID("validateBlueprint"),
			fizz.Summary("Valideer Blueprint (POST)"),
			fizz.Description("Body: de Blueprint als YAML tekst. 200 geeft Mermaid sequenceDiagram tekst terug, 400 een leesbare foutmelding als platte tekst."),
			fizz.Response("400", "Blueprint ongeldig, body bevat de melding", "", nil, "Failed to validate Blueprint. Error: blueprint has no actions"),
			fizz.Response("501", "Functie heeft nog geen diagram ondersteuning", "", nil, nil),
			fizz.Response("429", "Too Many Requests", nil, nil, nil),
			fizz.Header(handler.DiagramIDHeader, "ID van het opgeslagen diagram", ""),
			apiVersionHeader,
		},
		tonic.Handler(controller.ValidateBlueprint, 200),
	)

	// GET /v1/diagrams/{id}
	root.GET("/diagrams/:id",
		[]fizz.OperationOption{
			fizz.ID("getDiagram"),
			fizz.Summary("Haal een eerder gerenderd diagram op"),
			apiVersionHeader,
			fizz.Response("400", "Ongeldig diagram ID", nil, nil, nil),
			notFoundResponse,
		},
		tonic.Handler(controller.GetDiagram, 200),
	)

	f.GET("/v1/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f, nil
}

// renderHook laat responses die de handler zelf al geschreven heeft
// (plain text van /v1/validate) ongemoeid.
func renderHook(c *gin.Context, status int, payload interface{}) {
	if c.Writer.Written() {
		return
	}
	tonic.DefaultRenderHook(c, status, payload)
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
