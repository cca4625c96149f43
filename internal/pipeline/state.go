package pipeline

// State is the progress of a pipeline run.
type State int

const (
	StateInit State = iota
	StateCloned
	StatePatched
	StateCommitted
	StateTagged
	StatePushed
	StateReleased
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateCloned:
		return "cloned"
	case StatePatched:
		return "patched"
	case StateCommitted:
		return "committed"
	case StateTagged:
		return "tagged"
	case StatePushed:
		return "pushed"
	case StateReleased:
		return "released"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Step is the name of a pipeline step.
type Step string

const (
	StepInit    Step = "init"
	StepClone   Step = "clone"
	StepPatch   Step = "patch"
	StepCommit  Step = "commit"
	StepTag     Step = "tag"
	StepPush    Step = "push"
	StepRelease Step = "release"
)
