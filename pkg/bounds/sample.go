package bounds

import "iter"

// Plan selects a deterministic subsequence of vertex indices: Samples
// indices starting at First and advancing by Step, modulo Population.
//
// Samples is clamped to [1, Population]. Step and First may be any value and
// are wrapped modulo Population; a Step that wraps to zero is treated as 1. A
// negative Step walks backwards. A Population of zero selects nothing.
//
// The fitters overwrite Population with the vertex count of the point cloud
// they are given.
type Plan struct {
	Population int
	Samples    int
	First      int
	Step       int
}

// FullPlan visits every one of n indices once, in order.
func FullPlan(n int) Plan {
	return Plan{Population: n, Samples: n, Step: 1}
}

// StridePlan visits samples indices spread evenly over n.
func StridePlan(n, samples int) Plan {
	p := Plan{Population: n, Samples: samples, Step: 1}
	if samples > 0 && n > samples {
		p.Step = n / samples
	}
	return p
}

// normalized returns the plan with every field in range.
func (p Plan) normalized() Plan {
	n := p.Population
	if n <= 0 {
		return Plan{}
	}
	p.Samples = min(max(p.Samples, 1), n)
	p.First = wrap(p.First, n)
	p.Step = wrap(p.Step, n)
	if p.Step == 0 {
		p.Step = 1
	}
	return p
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

// Len returns the number of indices the plan yields.
func (p Plan) Len() int {
	return p.normalized().Samples
}

// Indices returns the planned index sequence.
func (p Plan) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		s := NewSampler(p)
		for ; s.Scanning(); s.Next() {
			if !yield(s.Index()) {
				return
			}
		}
	}
}

// Sampler walks the indices of a Plan.
//
//	for s := NewSampler(plan); s.Scanning(); s.Next() {
//		use(s.Index())
//	}
type Sampler struct {
	plan  Plan
	count int
	index int
}

// NewSampler returns a sampler positioned on the first index of p.
func NewSampler(p Plan) *Sampler {
	s := &Sampler{plan: p.normalized()}
	s.Reset()
	return s
}

// Plan returns the normalized plan being walked.
func (s *Sampler) Plan() Plan {
	return s.plan
}

// Reset rewinds to the first index.
func (s *Sampler) Reset() {
	s.count = 0
	s.index = s.plan.First
}

// Scanning reports whether the current position is within the plan.
func (s *Sampler) Scanning() bool {
	return s.count < s.plan.Samples
}

// Index returns the current vertex index.
func (s *Sampler) Index() int {
	return s.index
}

// Count returns how many indices have been passed so far.
func (s *Sampler) Count() int {
	return s.count
}

// Next advances to the following index. Advancing past the end leaves the
// sampler exhausted.
func (s *Sampler) Next() {
	if !s.Scanning() {
		return
	}
	s.count++
	s.index = (s.index + s.plan.Step) % s.plan.Population
}
