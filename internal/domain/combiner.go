package domain

// defaultAcceptThreshold is the score at or above which a change is accepted.
const defaultAcceptThreshold = 0.8

// CombinerConfig exposes the combiner's only tunable knobs: the two
// weight pairs and the accept threshold.
type CombinerConfig struct {
	TDDWeight              float64
	LLMWeight              float64
	HighRelevanceTDDWeight float64
	HighRelevanceLLMWeight float64
	RelevanceCutoff        float64
	AcceptThreshold        float64
}

// DefaultCombinerConfig returns the standard weighting: TDD results count
// for 0.7 (0.8 when task relevance is high) and the external alignment
// judgment for the remainder.
func DefaultCombinerConfig() CombinerConfig {
	return CombinerConfig{
		TDDWeight:              0.7,
		LLMWeight:              0.3,
		HighRelevanceTDDWeight: 0.8,
		HighRelevanceLLMWeight: 0.2,
		RelevanceCutoff:        0.8,
		AcceptThreshold:        defaultAcceptThreshold,
	}
}

// CombineOption configures a single Combine call.
type CombineOption func(*combineConfig)

type combineConfig struct {
	taskRelevance float64
	hasRelevance  bool
}

// WithTaskRelevance supplies a task-relevance measurement; values above
// the cutoff shift weight from the alignment score to the TDD score.
func WithTaskRelevance(relevance float64) CombineOption {
	return func(c *combineConfig) {
		c.taskRelevance = relevance
		c.hasRelevance = true
	}
}

// Combiner merges a TDD-derived score with an externally computed
// alignment score into the final accept/reject verdict.
type Combiner struct {
	cfg CombinerConfig
}

// NewCombiner constructs a Combiner with the given knobs.
func NewCombiner(cfg CombinerConfig) *Combiner {
	return &Combiner{cfg: cfg}
}

// Combine is pure: out-of-range inputs are clamped, never rejected.
func (c *Combiner) Combine(tddScore, alignmentScore float64, opts ...CombineOption) (float64, bool) {
	var call combineConfig
	for _, opt := range opts {
		opt(&call)
	}

	tddScore = clamp01(tddScore)
	alignmentScore = clamp01(alignmentScore)

	tddWeight := c.cfg.TDDWeight
	llmWeight := c.cfg.LLMWeight

	if call.hasRelevance && clamp01(call.taskRelevance) > c.cfg.RelevanceCutoff {
		tddWeight = c.cfg.HighRelevanceTDDWeight
		llmWeight = c.cfg.HighRelevanceLLMWeight
	}

	final := tddScore*tddWeight + alignmentScore*llmWeight

	return final, final >= c.cfg.AcceptThreshold
}
