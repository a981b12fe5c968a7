package models

// SequenceData is the intermediate form between a Blueprint and the Mermaid
// sequenceDiagram text.
type SequenceData struct {
	Participants []string         `json:"participants"`
	Actors       []string         `json:"actors"`
	Actions      []SequenceAction `json:"actions"`
}

type SequenceAction struct {
	Title  string          `json:"title"`
	Phases []SequencePhase `json:"phases"`
}

type SequencePhase struct {
	Description string            `json:"description"`
	Messages    []SequenceMessage `json:"messages"`
}

// SequenceMessage is one arrow in the diagram. CreateParticipant and
// DestroyParticipant emit the matching Mermaid lifecycle statements around it.
type SequenceMessage struct {
	CreateParticipant  bool   `json:"createParticipant,omitempty"`
	DestroyParticipant bool   `json:"destroyParticipant,omitempty"`
	From               string `json:"from"`
	To                 string `json:"to"`
	Action             string `json:"action"`
	Note               string `json:"note,omitempty"`
	ArrowType          string `json:"arrowType"`
}
