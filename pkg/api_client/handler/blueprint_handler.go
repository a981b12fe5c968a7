package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/helper/problem"
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/models"
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DiagramIDHeader carries the ID under which a rendered diagram was stored.
const DiagramIDHeader = "X-Diagram-ID"

const textContentType = "text/plain; charset=utf-8"

type BlueprintController struct {
	Blueprints   *services.BlueprintService
	Sequences    *services.SequenceService
	Diagrams     *services.DiagramStore
	MaxBodyBytes int64
	log          *zap.Logger
}

func NewBlueprintController(blueprints *services.BlueprintService, sequences *services.SequenceService, diagrams *services.DiagramStore, maxBodyBytes int64, log *zap.Logger) *BlueprintController {
	if log == nil {
		log = zap.NewNop()
	}
	return &BlueprintController{
		Blueprints:   blueprints,
		Sequences:    sequences,
		Diagrams:     diagrams,
		MaxBodyBytes: maxBodyBytes,
		log:          log.Named("handler"),
	}
}

/* ------------------------- VALIDATE ------------------------- */

// POST /v1/validate  (body = raw Blueprint YAML)
//
// The form shows the body of a 400 verbatim, so every user-facing failure is
// written as plain text instead of Problem Details.
func (bc *BlueprintController) ValidateBlueprint(c *gin.Context) error {
	data, err := bc.readBody(c)
	if err != nil {
		bc.plainError(c, http.StatusBadRequest, "Bad Request. Error: %s", err)
		return nil
	}

	bp, err := bc.Blueprints.Parse(data)
	if err != nil {
		bc.plainError(c, http.StatusBadRequest, "Bad Request. Error: %s", err)
		return nil
	}
	if err := bc.Blueprints.Validate(bp); err != nil {
		bc.plainError(c, http.StatusBadRequest, "Failed to validate Blueprint. Error: %s", err)
		return nil
	}

	mermaid, err := bc.Sequences.Render(bp)
	if err != nil {
		if errors.Is(err, services.ErrSequenceUnsupported) {
			bc.plainError(c, http.StatusNotImplemented, "Failed to create flowchart for Blueprint. Error: %s", err)
			return nil
		}
		return problem.NewInternalServerError(err.Error())
	}

	if bc.Diagrams != nil {
		d := bc.Diagrams.Put(bp.Metadata.Name, mermaid)
		c.Header(DiagramIDHeader, d.ID)
	}
	bc.log.Info("blueprint validated",
		zap.String("blueprint", bp.Metadata.Name),
		zap.Int("actions", len(bp.Actions)),
	)
	c.Data(http.StatusOK, textContentType, []byte(mermaid))
	return nil
}

func (bc *BlueprintController) readBody(c *gin.Context) ([]byte, error) {
	body := c.Request.Body
	if body == nil {
		return nil, nil
	}
	if bc.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, bc.MaxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body larger than %d bytes", tooLarge.Limit)
		}
		return nil, err
	}
	return data, nil
}

func (bc *BlueprintController) plainError(c *gin.Context, status int, format string, err error) {
	msg := fmt.Sprintf(format, err)
	bc.log.Warn("blueprint rejected", zap.Int("status", status), zap.Error(err))
	c.Data(status, textContentType, []byte(msg))
}

/* ------------------------- DIAGRAMS ------------------------- */

// GET /v1/diagrams/{id}
func (bc *BlueprintController) GetDiagram(c *gin.Context, p *models.DiagramParams) (*models.Diagram, error) {
	if bc.Diagrams == nil {
		return nil, problem.NewServiceUnavailable("diagram opslag niet geconfigureerd")
	}
	if _, err := uuid.Parse(p.ID); err != nil {
		return nil, problem.NewBadRequest(c.Request.URL.Path, "Ongeldig diagram ID",
			problem.InvalidParam{Name: "id", Reason: err.Error()})
	}
	d, err := bc.Diagrams.Get(p.ID)
	if err != nil {
		if errors.Is(err, services.ErrDiagramNotFound) {
			return nil, problem.NewNotFound(c.Request.URL.Path, "Diagram niet gevonden of verlopen")
		}
		return nil, problem.NewInternalServerError(err.Error())
	}
	return &d, nil
}
