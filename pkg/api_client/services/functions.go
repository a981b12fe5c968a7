package services

import "sort"

// Kanister function names accepted in a Blueprint phase.
const (
	KubeTaskFuncName      = "KubeTask"
	KubeExecFuncName      = "KubeExec"
	ScaleWorkloadFuncName = "ScaleWorkload"
	PrepareDataFuncName   = "PrepareData"
	BackupDataFuncName    = "BackupData"
	RestoreDataFuncName   = "RestoreData"
	DeleteDataFuncName    = "DeleteData"
	WaitFuncName          = "Wait"
)

// Argument names used by the sequence renderers.
const (
	NamespaceArg   = "namespace"
	ImageArg       = "image"
	CommandArg     = "command"
	PodArg         = "pod"
	ContainerArg   = "container"
	NameArg        = "name"
	KindArg        = "kind"
	ReplicasArg    = "replicas"
	TimeoutArg     = "timeout"
	ConditionsArg  = "conditions"
	VolumesArg     = "volumes"
	IncludePathArg = "includePath"
	PrefixArg      = "backupArtifactPrefix"
	BackupIDArg    = "backupID"
	BackupTagArg   = "backupTag"
)

// FunctionSpec beschrijft de verplichte argumenten van een Kanister functie
type FunctionSpec struct {
	Name         string
	RequiredArgs []string
	// OneOfArgs lists groups where at least one argument of the group must be set.
	OneOfArgs [][]string
}

var functionRegistry = map[string]FunctionSpec{
	KubeTaskFuncName: {
		Name:         KubeTaskFuncName,
		RequiredArgs: []string{ImageArg, CommandArg},
	},
	KubeExecFuncName: {
		Name:         KubeExecFuncName,
		RequiredArgs: []string{NamespaceArg, PodArg, CommandArg},
	},
	ScaleWorkloadFuncName: {
		Name:         ScaleWorkloadFuncName,
		RequiredArgs: []string{ReplicasArg},
	},
	PrepareDataFuncName: {
		Name:         PrepareDataFuncName,
		RequiredArgs: []string{NamespaceArg, ImageArg, CommandArg},
	},
	BackupDataFuncName: {
		Name:         BackupDataFuncName,
		RequiredArgs: []string{NamespaceArg, PodArg, ContainerArg, IncludePathArg, PrefixArg},
	},
	RestoreDataFuncName: {
		Name:         RestoreDataFuncName,
		RequiredArgs: []string{NamespaceArg, ImageArg, PrefixArg},
		OneOfArgs:    [][]string{{BackupIDArg, BackupTagArg}},
	},
	DeleteDataFuncName: {
		Name:         DeleteDataFuncName,
		RequiredArgs: []string{NamespaceArg, PrefixArg},
		OneOfArgs:    [][]string{{BackupIDArg, BackupTagArg}},
	},
	WaitFuncName: {
		Name:         WaitFuncName,
		RequiredArgs: []string{TimeoutArg, ConditionsArg},
	},
}

// LookupFunction returns the registered spec for a Kanister function.
func LookupFunction(name string) (FunctionSpec, bool) {
	spec, ok := functionRegistry[name]
	return spec, ok
}

// FunctionNames returns all registered function names, sorted.
func FunctionNames() []string {
	names := make([]string, 0, len(functionRegistry))
	for name := range functionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
