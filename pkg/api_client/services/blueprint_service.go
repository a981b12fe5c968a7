package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/models"
	"github.com/invopop/yaml"
	"go.uber.org/zap"
)

const (
	blueprintAPIVersion = "cr.kanister.io/v1alpha1"
	blueprintKind       = "Blueprint"
)

var (
	// ErrInvalidBlueprint is returned when the request body is not a decodable Blueprint.
	ErrInvalidBlueprint = errors.New("invalid blueprint document")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("blueprint validation failed")
)

// ValidationError describes why a decoded Blueprint was rejected. Reason is
// shown to the user as is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// BlueprintService decodes and validates Kanister Blueprints.
type BlueprintService struct {
	log *zap.Logger
}

func NewBlueprintService(log *zap.Logger) *BlueprintService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BlueprintService{log: log.Named("blueprint")}
}

// Parse decodes YAML (or JSON) into a Blueprint. Empty input decodes to an
// empty Blueprint and is rejected later by Validate.
func (s *BlueprintService) Parse(data []byte) (*models.Blueprint, error) {
	bp := &models.Blueprint{}
	if err := yaml.Unmarshal(data, bp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
	}
	s.log.Debug("parsed blueprint",
		zap.String("name", bp.Metadata.Name),
		zap.Int("actions", len(bp.Actions)),
	)
	return bp, nil
}

// Validate checks the Blueprint header, that it declares actions, and that
// every phase names a registered function with its required arguments.
// Actions are checked in name order so the first reported problem is stable.
func (s *BlueprintService) Validate(bp *models.Blueprint) error {
	if bp == nil {
		return validationErrorf("empty blueprint")
	}
	if bp.APIVersion != "" && bp.APIVersion != blueprintAPIVersion {
		return validationErrorf("unsupported apiVersion %q, expected %q", bp.APIVersion, blueprintAPIVersion)
	}
	if bp.Kind != "" && bp.Kind != blueprintKind {
		return validationErrorf("unsupported kind %q, expected %q", bp.Kind, blueprintKind)
	}
	if len(bp.Actions) == 0 {
		return validationErrorf("blueprint has no actions")
	}

	for _, name := range SortedActionNames(bp) {
		action := bp.Actions[name]
		if len(action.Phases) == 0 {
			return validationErrorf("action %s has no phases", name)
		}
		seen := make(map[string]struct{}, len(action.Phases))
		for i, phase := range action.Phases {
			if err := validatePhase(phase); err != nil {
				return validationErrorf("action %s phase %d: %v", name, i, err)
			}
			if _, dup := seen[phase.Name]; dup {
				return validationErrorf("action %s: duplicated phase name %s", name, phase.Name)
			}
			seen[phase.Name] = struct{}{}
		}
		if action.DeferPhase != nil {
			if err := validatePhase(*action.DeferPhase); err != nil {
				return validationErrorf("action %s deferPhase: %v", name, err)
			}
		}
	}
	return nil
}

func validatePhase(phase models.BlueprintPhase) error {
	if strings.TrimSpace(phase.Name) == "" {
		return errors.New("phase name is required")
	}
	if strings.TrimSpace(phase.Func) == "" {
		return fmt.Errorf("phase %s: func is required", phase.Name)
	}
	spec, ok := LookupFunction(phase.Func)
	if !ok {
		return fmt.Errorf("phase %s: function %s not found, supported functions: %s",
			phase.Name, phase.Func, strings.Join(FunctionNames(), ", "))
	}
	for _, arg := range spec.RequiredArgs {
		if !hasArg(phase.Args, arg) {
			return fmt.Errorf("phase %s: %s requires argument %s", phase.Name, phase.Func, arg)
		}
	}
	for _, group := range spec.OneOfArgs {
		found := false
		for _, arg := range group {
			if hasArg(phase.Args, arg) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("phase %s: %s requires one of arguments %s",
				phase.Name, phase.Func, strings.Join(group, ", "))
		}
	}
	return nil
}

func hasArg(args map[string]interface{}, name string) bool {
	v, ok := args[name]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// SortedActionNames returns the action names of bp in lexical order.
func SortedActionNames(bp *models.Blueprint) []string {
	names := make([]string, 0, len(bp.Actions))
	for name := range bp.Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
