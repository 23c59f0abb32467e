package invoke

// Stage is the progress of one invocation.
type Stage uint8

const (
	StageIdle Stage = iota
	StageArgumentsDecoded
	StageInvoked
	StageResultEncoded
	StageReturned
	StageFailed
)

var stageNames = [...]string{
	StageIdle:             "idle",
	StageArgumentsDecoded: "arguments_decoded",
	StageInvoked:          "invoked",
	StageResultEncoded:    "result_encoded",
	StageReturned:         "returned",
	StageFailed:           "failed",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Terminal reports whether no further transition follows s.
func (s Stage) Terminal() bool {
	return s == StageReturned || s == StageFailed
}
