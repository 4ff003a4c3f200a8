package preipo

// Report gathers everything known about one entity: its profile, its cumulative series and
// its metrics. It is the input of the renderers.
type Report struct {
	Analysis
	Profile    Profile
	HasProfile bool
}

// NewReport analyzes an entity of the dataset at the given baseline rate.
// Metrics that cannot be computed are not an error, see Analysis.Computable.
func NewReport(d *Dataset, id string, profiles Profiles, rate float64) (*Report, error) {
	a, err := d.Analyze(id, rate)
	if err != nil {
		return nil, err
	}
	prof, ok := profiles.Get(id)
	return &Report{Analysis: a, Profile: prof, HasProfile: ok}, nil
}
