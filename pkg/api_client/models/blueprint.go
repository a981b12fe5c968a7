package models

// Blueprint is the subset of a Kanister Blueprint custom resource that the
// validator understands. Decoding goes through invopop/yaml, so the json tags
// drive the field mapping for YAML input as well.
type Blueprint struct {
	APIVersion string                     `json:"apiVersion,omitempty"`
	Kind       string                     `json:"kind,omitempty"`
	Metadata   ObjectMeta                 `json:"metadata,omitempty"`
	Actions    map[string]BlueprintAction `json:"actions,omitempty"`
}

// ObjectMeta houdt alleen de velden bij die in meldingen terugkomen
type ObjectMeta struct {
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// BlueprintAction is one named action (backup, restore, ...) of a Blueprint.
type BlueprintAction struct {
	Name            string                 `json:"name,omitempty"`
	Kind            string                 `json:"kind,omitempty"`
	ConfigMapNames  []string               `json:"configMapNames,omitempty"`
	SecretNames     []string               `json:"secretNames,omitempty"`
	InputArtifacts  []string               `json:"inputArtifactNames,omitempty"`
	OutputArtifacts map[string]interface{} `json:"outputArtifacts,omitempty"`
	Phases          []BlueprintPhase       `json:"phases,omitempty"`
	DeferPhase      *BlueprintPhase        `json:"deferPhase,omitempty"`
}

// BlueprintPhase is a single function invocation inside an action.
type BlueprintPhase struct {
	Func string                 `json:"func"`
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}
