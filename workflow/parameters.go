package workflow

// Parameters is the flat record of every cutoff a run used, serialized next
// to the output tables so a run can be reproduced from its artifacts alone.
type Parameters struct {
	DetectionCutoff  float64 `yaml:"detectionCutoff"`
	FixedCutoff      float64 `yaml:"fixedCutoff"`
	SimilarityCutoff float64 `yaml:"similarityCutoff"`
	DifferenceCutoff float64 `yaml:"differenceCutoff"`

	SignificanceCutoff float64   `yaml:"significanceCutoff"`
	FrequencyCutoffs   []float64 `yaml:"frequencyCutoffs"`

	AdditiveBackgroundDoubleCheckCutoff    float64 `yaml:"additiveBackgroundDoubleCheckCutoff"`
	AdditiveBackgroundSingleCheckCutoff    float64 `yaml:"additiveBackgroundSingleCheckCutoff"`
	SubtractiveBackgroundDoubleCheckCutoff float64 `yaml:"subtractiveBackgroundDoubleCheckCutoff"`
	SubtractiveBackgroundSingleCheckCutoff float64 `yaml:"subtractiveBackgroundSingleCheckCutoff"`
	DerivativeDetectionCutoff              float64 `yaml:"derivativeDetectionCutoff"`
	DerivativeCheckCutoff                  float64 `yaml:"derivativeCheckCutoff"`
}

// ParametersFrom flattens an Options record into its serializable form.
func ParametersFrom(opts Options) Parameters {
	return Parameters{
		DetectionCutoff:  opts.Cluster.DetectionBreakpoint,
		FixedCutoff:      opts.Cluster.FixedBreakpoint,
		SimilarityCutoff: opts.Cluster.SimilarityBreakpoint,
		DifferenceCutoff: opts.Cluster.DifferenceBreakpoint,

		SignificanceCutoff: opts.Sort.SignificantBreakpoint,
		FrequencyCutoffs:   append([]float64(nil), opts.Sort.FrequencyBreakpoints...),

		AdditiveBackgroundDoubleCheckCutoff:    opts.Lineage.AdditiveDoubleCutoff,
		AdditiveBackgroundSingleCheckCutoff:    opts.Lineage.AdditiveSingleCutoff,
		SubtractiveBackgroundDoubleCheckCutoff: opts.Lineage.SubtractiveDoubleCutoff,
		SubtractiveBackgroundSingleCheckCutoff: opts.Lineage.SubtractiveSingleCutoff,
		DerivativeDetectionCutoff:              opts.Lineage.DerivativeDetectionCutoff,
		DerivativeCheckCutoff:                  opts.Lineage.DerivativeCheckCutoff,
	}
}
