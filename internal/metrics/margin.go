package metrics

import "math"

type MinMargin struct {
	name     string
	min      float64
	feasible int
}

func NewMinMargin() *MinMargin {
	return &MinMargin{
		name: "min_margin",
		min:  math.Inf(1),
	}
}

func (m *MinMargin) Name() string { return m.name }

func (m *MinMargin) Observe(margin float64, feasible bool) {
	if !feasible {
		return
	}
	m.feasible++
	if margin < m.min {
		m.min = margin
	}
}

func (m *MinMargin) Value() float64 {
	if m.feasible == 0 {
		return math.Inf(1)
	}
	return m.min
}

func (m *MinMargin) Reset() {
	m.min = math.Inf(1)
	m.feasible = 0
}

type MeanMargin struct {
	name    string
	total   float64
	samples int
}

func NewMeanMargin() *MeanMargin {
	return &MeanMargin{name: "mean_margin"}
}

func (m *MeanMargin) Name() string { return m.name }

func (m *MeanMargin) Observe(margin float64, feasible bool) {
	if !feasible {
		return
	}
	m.total += margin
	m.samples++
}

func (m *MeanMargin) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanMargin) Reset() {
	m.total = 0
	m.samples = 0
}
