package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/models"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Participants and actors drawn in every diagram.
const (
	ParticipantKanister     = "Kanister"
	ParticipantAppNamespace = "App"
	ActorUser               = "User"
)

const (
	arrowSync  = "->>"
	arrowReply = "-->>"
	noteBreak  = " <br> "
)

// ErrSequenceUnsupported is returned when a validated phase uses a function
// that has no sequence renderer yet.
var ErrSequenceUnsupported = errors.New("sequence rendering not supported")

// UnsupportedFunctionError names the function without a sequence renderer.
type UnsupportedFunctionError struct {
	Func string
}

func (e *UnsupportedFunctionError) Error() string {
	return fmt.Sprintf("support for function %s not implemented yet", e.Func)
}

func (e *UnsupportedFunctionError) Is(target error) bool { return target == ErrSequenceUnsupported }

var (
	notePolicyOnce sync.Once
	notePolicy     *bluemonday.Policy
)

// noteSanitizer strips markup from user supplied values. The diagram is
// injected into the page as HTML before Mermaid processes it.
func noteSanitizer() *bluemonday.Policy {
	notePolicyOnce.Do(func() {
		notePolicy = bluemonday.StrictPolicy()
	})
	return notePolicy
}

type messageBuilder func(phase models.BlueprintPhase) []models.SequenceMessage

// SequenceService turns a validated Blueprint into a Mermaid sequenceDiagram.
type SequenceService struct {
	log      *zap.Logger
	builders map[string]messageBuilder
}

func NewSequenceService(log *zap.Logger) *SequenceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SequenceService{
		log: log.Named("sequence"),
		builders: map[string]messageBuilder{
			KubeTaskFuncName:      kubeTaskMessages,
			KubeExecFuncName:      kubeExecMessages,
			ScaleWorkloadFuncName: scaleWorkloadMessages,
		},
	}
}

// Supports reports whether fn has a sequence renderer.
func (s *SequenceService) Supports(fn string) bool {
	_, ok := s.builders[fn]
	return ok
}

// Build maps the Blueprint onto participants, actors and messages.
func (s *SequenceService) Build(bp *models.Blueprint) (models.SequenceData, error) {
	data := models.SequenceData{
		Participants: []string{ParticipantKanister},
		Actors:       []string{ActorUser},
	}
	for _, actionName := range SortedActionNames(bp) {
		action := bp.Actions[actionName]
		seqAction := models.SequenceAction{Title: sanitizeText(actionName)}
		for _, phase := range action.Phases {
			build, ok := s.builders[phase.Func]
			if !ok {
				return models.SequenceData{}, &UnsupportedFunctionError{Func: phase.Func}
			}
			seqAction.Phases = append(seqAction.Phases, models.SequencePhase{
				Description: "phase " + sanitizeText(phase.Name),
				Messages:    build(phase),
			})
		}
		data.Actions = append(data.Actions, seqAction)
	}
	return data, nil
}

// Render builds the sequence data for bp and returns it as Mermaid syntax.
func (s *SequenceService) Render(bp *models.Blueprint) (string, error) {
	data, err := s.Build(bp)
	if err != nil {
		return "", err
	}
	syntax := GenerateMermaidSyntax(data)
	s.log.Debug("rendered sequence diagram", zap.Int("actions", len(data.Actions)), zap.Int("bytes", len(syntax)))
	return syntax, nil
}

// GenerateMermaidSyntax writes data as a Mermaid sequenceDiagram.
func GenerateMermaidSyntax(data models.SequenceData) string {
	var b strings.Builder
	b.WriteString("sequenceDiagram\n")
	for _, actor := range data.Actors {
		b.WriteString("    actor " + actor + "\n")
	}
	for _, participant := range data.Participants {
		b.WriteString("    participant " + participant + "\n")
	}
	for _, act := range data.Actions {
		b.WriteString(fmt.Sprintf("    %s->>%s: %s\n", ActorUser, ParticipantKanister, act.Title))
		for _, phase := range act.Phases {
			b.WriteString(fmt.Sprintf("    note right of %s: %s\n", ParticipantKanister, phase.Description))
			for _, msg := range phase.Messages {
				if msg.CreateParticipant {
					b.WriteString("    create participant " + msg.To + "\n")
				}
				if msg.DestroyParticipant {
					b.WriteString("    destroy " + msg.From + "\n")
				}
				b.WriteString("    " + msg.From + msg.ArrowType + msg.To + ": " + msg.Action + "\n")
				if msg.Note != "" {
					b.WriteString(fmt.Sprintf("    note right of %s: %s\n", msg.To, msg.Note))
				}
			}
		}
		b.WriteString(fmt.Sprintf("    %s-->>%s: %s\n", ParticipantKanister, ActorUser, act.Title+" completed!"))
	}
	return b.String()
}

func kubeTaskMessages(phase models.BlueprintPhase) []models.SequenceMessage {
	ns := appNamespace(phase.Args)
	job := ns + "/kanister-job"
	return podRoundTrip(phase.Func, job, joinNote(
		"Create a tooling pod with",
		"image: "+argString(phase.Args, ImageArg),
		"namespace: "+ns,
		"and execute commands",
	))
}

func kubeExecMessages(phase models.BlueprintPhase) []models.SequenceMessage {
	ns := appNamespace(phase.Args)
	pod := ns + "/" + participantName(argString(phase.Args, PodArg), "pod")
	note := "Execute commands in pod " + argString(phase.Args, PodArg)
	if c := argString(phase.Args, ContainerArg); c != "" {
		note = joinNote(note, "container: "+c)
	}
	return podRoundTrip(phase.Func, pod, note)
}

func scaleWorkloadMessages(phase models.BlueprintPhase) []models.SequenceMessage {
	ns := appNamespace(phase.Args)
	kind := argString(phase.Args, KindArg)
	workload := argString(phase.Args, NameArg)
	target := fmt.Sprintf("%s/%s/%s", ns, participantName(kind, "kind"), participantName(workload, "workload"))
	return podRoundTrip(phase.Func, target, joinNote(
		"Set the replica count",
		fmt.Sprintf("of %s/%s to %s", kind, workload, argString(phase.Args, ReplicasArg)),
	))
}

// podRoundTrip draws Kanister creating target, calling it and target
// reporting back before it is destroyed.
func podRoundTrip(fn, target, note string) []models.SequenceMessage {
	return []models.SequenceMessage{
		{
			CreateParticipant: true,
			From:              ParticipantKanister,
			To:                target,
			Action:            fn,
			Note:              note,
			ArrowType:         arrowSync,
		},
		{
			DestroyParticipant: true,
			From:               target,
			To:                 ParticipantKanister,
			Action:             "Done",
			ArrowType:          arrowReply,
		},
	}
}

// appNamespace returns the namespace argument, or the generic App participant
// when the namespace is missing or still a template expression.
func appNamespace(args map[string]interface{}) string {
	ns := argString(args, NamespaceArg)
	if ns == "" || strings.HasPrefix(ns, "{{") {
		return ParticipantAppNamespace
	}
	return ns
}

func participantName(v, fallback string) string {
	if v == "" || strings.HasPrefix(v, "{{") {
		return fallback
	}
	return v
}

func joinNote(parts ...string) string {
	return strings.Join(parts, noteBreak)
}

// argString renders an argument as sanitized single-line text.
func argString(args map[string]interface{}, name string) string {
	v, ok := args[name]
	if !ok || v == nil {
		return ""
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		if t == float64(int64(t)) {
			s = fmt.Sprintf("%d", int64(t))
		} else {
			s = fmt.Sprintf("%g", t)
		}
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, fmt.Sprint(p))
		}
		s = strings.Join(parts, " ")
	default:
		s = fmt.Sprint(t)
	}
	return sanitizeText(s)
}

// sanitizeText maakt van s een enkele regel tekst zonder HTML
func sanitizeText(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(noteSanitizer().Sanitize(s))
}
