package engine

// Phase - фаза жизненного цикла игры
type Phase uint32

const (
	PhaseLevelSelection Phase = iota
	PhasePlaying
	PhaseFinished
)

var phaseToString = map[Phase]string{
	PhaseLevelSelection: "LEVEL_SELECTION",
	PhasePlaying:        "PLAYING",
	PhaseFinished:       "FINISHED",
}

func (p Phase) String() string {
	if val, ok := phaseToString[p]; ok {
		return val
	}
	return "UNKNOWN"
}
