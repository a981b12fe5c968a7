package models

import "time"

// Diagram is een eerder gerenderd sequence diagram dat via zijn ID opgehaald kan worden
type Diagram struct {
	ID        string    `json:"id"`
	Blueprint string    `json:"blueprint,omitempty"`
	Mermaid   string    `json:"mermaid"`
	CreatedAt time.Time `json:"createdAt"`
}

// DiagramParams is de path parameter voor GET /v1/diagrams/{id}
type DiagramParams struct {
	ID string `path:"id" validate:"required" description:"ID uit de X-Diagram-ID header van /v1/validate"`
}
