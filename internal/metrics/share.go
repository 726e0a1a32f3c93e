package metrics

type FeasibleShare struct {
	name     string
	feasible int
	samples  int
}

func NewFeasibleShare() *FeasibleShare {
	return &FeasibleShare{name: "feasible_share"}
}

func (f *FeasibleShare) Name() string { return f.name }

func (f *FeasibleShare) Observe(margin float64, feasible bool) {
	f.samples++
	if feasible {
		f.feasible++
	}
}

func (f *FeasibleShare) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.feasible) / float64(f.samples)
}

func (f *FeasibleShare) Reset() {
	f.feasible = 0
	f.samples = 0
}
