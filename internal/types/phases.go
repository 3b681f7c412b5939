package types

// Phase is a state of an install run.
type Phase int

const (
	StartPhase Phase = iota
	ProbeDonePhase
	ManagerReadyPhase
	ToolsInstalledPhase
	FilesInstalledPhase
	DonePhase
	FailedPhase
)

// InstallOrder lists the phases an install passes through, in order.
var InstallOrder = []Phase{
	StartPhase,
	ProbeDonePhase,
	ManagerReadyPhase,
	ToolsInstalledPhase,
	FilesInstalledPhase,
	DonePhase,
}

var phaseNames = map[Phase]string{
	StartPhase:          "start",
	ProbeDonePhase:      "probe",
	ManagerReadyPhase:   "package manager",
	ToolsInstalledPhase: "tools",
	FilesInstalledPhase: "files",
	DonePhase:           "done",
	FailedPhase:         "failed",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// ConfirmAnswered is sent when the user settles a confirmation prompt.
type ConfirmAnswered struct {
	Accepted bool
}
