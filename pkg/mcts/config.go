package mcts

// Config holds every registered engine parameter from spec §6: explore_rate,
// playout_count, #_updates_to_promote, print_min_visit, the RAVE and bias
// coefficients, plus the resource bound mcts_max_nodes and a couple of
// supplemented knobs (fastplay, rave fraction). It plays the role the
// teacher's Limits/Limiter pair played (pkg/mcts/limits.go,limiter.go in
// IlikeChooros-go-mcts) but, per spec §5's single-threaded cooperative
// model, there is no time/thread/memory-byte budget to track -- the only
// hard resource bound left is node count.
//
// The text-protocol adapter (internal/gtp) is the sole owner of a live
// Config value; spec §9's "Engine-command glue" note -- "no core data
// should be globally mutable except through the parameter-registration
// adapter" -- is why Config has no package-level mutable defaults.
type Config struct {
	// MCTSMaxNodes bounds the arena (spec §5's mcts_max_nodes). Expansion
	// degrades to a no-op once reached.
	MCTSMaxNodes int

	// GenmovePlayoutCount is the fixed number of playouts GenMove runs
	// before committing to a move (spec §4.3 step 3).
	GenmovePlayoutCount int

	// PriorCount/PriorMean seed every new node's Stat and RaveStat (spec
	// §3, §4.1). PriorMean is in the absolute, Black-positive convention;
	// Node creation frames it subjectively for the node's side to move.
	PriorCount float64
	PriorMean  float64

	// MatureUpdateThreshold is #_updates_to_promote: a node becomes
	// ready_to_expand once its Stat.UpdateCount() exceeds
	// PriorCount + MatureUpdateThreshold (spec §4.3).
	MatureUpdateThreshold float64

	// ExploreRate is the UCB1 exploration coefficient (spec §4.3's
	// tree_explore_coeff).
	ExploreRate float64

	// ProgressiveBias is the coefficient on child.Bias/child.UpdateCount()
	// in the urgency formula (spec §4.3, GLOSSARY "Progressive bias").
	ProgressiveBias float64

	// RaveEnabled toggles the RAVE term of BestRaveChild's urgency formula.
	// When false, urgency's first term degenerates to
	// pl.SubjectiveScore(child.Stat.Mean()) (spec §4.3).
	RaveEnabled bool
	// StatWeight/RaveWeight are the wa/wb weights Mix blends Stat and
	// RaveStat with.
	StatWeight float64
	RaveWeight float64
	// RaveUpdateFraction bounds how far into the move-history tail a RAVE
	// update scans from each trace position (spec §4.3's RAVE update).
	RaveUpdateFraction float64

	// TreeMaxMoves caps how many moves a single playout may make while
	// still in the tree phase (spec §4.3 step 2e). Zero means every
	// playout is rollout-only from the active root (spec §8 boundary
	// behaviour).
	TreeMaxMoves int

	// ResignMean is the subjective-mean threshold below which GenMove
	// returns Resign instead of best.V (spec §4.3 step 5).
	ResignMean float64

	// PrintMinVisit is the default min_visits argument for MCTS.show when
	// the protocol caller doesn't supply one (spec §6).
	PrintMinVisit int

	// FastplayThreshold/FastplayFraction supplement spec §4.3 with
	// michi.go's FASTPLAY20_THRES/FASTPLAY5_THRES early exit (SPEC_FULL §4):
	// once FastplayFraction of GenmovePlayoutCount playouts have run, if the
	// root's best child's subjective mean already exceeds FastplayThreshold,
	// GenMove stops early. FastplayFraction == 0 disables the feature
	// entirely, which is the default -- the mandated "always run exactly
	// playout_count playouts" behaviour.
	FastplayFraction  float64
	FastplayThreshold float64
}

// DefaultConfig returns reasonable defaults grounded on michi.go's constants
// (N_SIMS, RAVE_EQUIV, EXPAND_VISITS, PRIOR_EVEN, RESIGN_THRES) translated
// into this design's parameter names.
func DefaultConfig() *Config {
	return &Config{
		MCTSMaxNodes:          1_000_000,
		GenmovePlayoutCount:   1400,
		PriorCount:            10,
		PriorMean:             0,
		MatureUpdateThreshold: 8,
		ExploreRate:           0.2,
		ProgressiveBias:       0,
		RaveEnabled:           true,
		StatWeight:            1,
		RaveWeight:            3500,
		RaveUpdateFraction:    1.0,
		TreeMaxMoves:          40,
		ResignMean:            -0.8,
		PrintMinVisit:         0,
	}
}
