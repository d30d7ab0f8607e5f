package model

// MaxIterations bounds every TDD session to five refinement rounds.
const MaxIterations = 5

// ExecutionOutcome is the black-box result of running generated tests.
// It is consumed here, never produced: the runner adapter (or a recorded
// session file) fills it in.
type ExecutionOutcome struct {
	TotalTests      int      `yaml:"total_tests"`
	PassedTests     int      `yaml:"passed_tests"`
	Errors          []string `yaml:"errors,omitempty"`
	DurationSeconds float64  `yaml:"duration_seconds"`
	// Fatal marks a non-recoverable failure (e.g. the implementation does
	// not compile); the evaluator aborts the session on fatal outcomes.
	Fatal bool `yaml:"fatal,omitempty"`
}

// IterationRecord captures one completed TDD iteration. Records are
// appended to the session history and never removed.
type IterationRecord struct {
	Number  int              `yaml:"iteration"`
	Report  QualityReport    `yaml:"report"`
	Outcome ExecutionOutcome `yaml:"outcome"`
	Issues  []string         `yaml:"issues,omitempty"`
	Score   float64          `yaml:"score"`
}

// SessionState tracks the evaluator state machine.
type SessionState int

const (
	// SessionPending is the state before the first iteration.
	SessionPending SessionState = iota
	// SessionRunning covers iterations 1..5.
	SessionRunning
	// SessionComplete is the normal terminal state.
	SessionComplete
	// SessionAborted is the terminal state after a fatal outcome or cancellation.
	SessionAborted
)

func (s SessionState) String() string {
	switch s {
	case SessionPending:
		return "pending"
	case SessionRunning:
		return "running"
	case SessionComplete:
		return "complete"
	case SessionAborted:
		return "aborted"
	}

	return "unknown"
}

// Terminal reports whether no further iterations may run.
func (s SessionState) Terminal() bool {
	return s == SessionComplete || s == SessionAborted
}

// Session is one bounded TDD refinement cycle.
//
// Implementation is the only cross-iteration mutable field; it is replaced
// wholesale each iteration so every IterationRecord stays self-contained.
// FinalScore and Accepted are undefined until State is terminal.
type Session struct {
	ID              string            `yaml:"id"`
	TaskDescription string            `yaml:"task"`
	Language        Language          `yaml:"language"`
	Implementation  string            `yaml:"-"`
	Iterations      []IterationRecord `yaml:"iterations"`
	State           SessionState      `yaml:"-"`
	FinalScore      float64           `yaml:"final_score"`
	Accepted        bool              `yaml:"accepted"`
}

// LastScore returns the most recent iteration score, or zero before the
// first iteration completes.
func (s *Session) LastScore() float64 {
	if len(s.Iterations) == 0 {
		return 0
	}

	return s.Iterations[len(s.Iterations)-1].Score
}
