package model

// PackageResult represents one package with the boxes placed in it.
type PackageResult struct {
	Package Package `json:"package"`
	Boxes   []Box   `json:"boxes"`
}

// UsedArea returns the total footprint of the boxes in the package.
func (pr PackageResult) UsedArea() float64 {
	var total float64
	for _, b := range pr.Boxes {
		total += b.Area()
	}
	return total
}

// TotalArea returns the package area.
func (pr PackageResult) TotalArea() float64 {
	return pr.Package.Area()
}

// Efficiency returns the usage percentage.
func (pr PackageResult) Efficiency() float64 {
	ta := pr.TotalArea()
	if ta == 0 {
		return 0
	}
	return (pr.UsedArea() / ta) * 100.0
}

// AnnealStats summarizes one annealing run.
type AnnealStats struct {
	Temperatures     int            `json:"temperatures"`
	Proposed         int            `json:"proposed"`
	Infeasible       int            `json:"infeasible"`
	AcceptedDownhill int            `json:"accepted_downhill"`
	AcceptedUphill   int            `json:"accepted_uphill"`
	Rejected         int            `json:"rejected"`
	PackagesRemoved  int            `json:"packages_removed"`
	AcceptedByMove   map[string]int `json:"accepted_by_move,omitempty"`
	InitialArea      float64        `json:"initial_area"`
	FinalArea        float64        `json:"final_area"`
	FinalControl     float64        `json:"final_control"`
}

// Accepted returns the number of candidates that replaced the current state.
func (s AnnealStats) Accepted() int {
	return s.AcceptedDownhill + s.AcceptedUphill
}

// AcceptanceRate returns accepted candidates as a fraction of all proposals.
func (s AnnealStats) AcceptanceRate() float64 {
	if s.Proposed == 0 {
		return 0
	}
	return float64(s.Accepted()) / float64(s.Proposed)
}

// PackResult holds the full solution of one run.
type PackResult struct {
	RunID       string          `json:"run_id"`
	Packages    []PackageResult `json:"packages"`
	Dropped     []BoxSpec       `json:"dropped,omitempty"`
	Area        float64         `json:"area"`
	InitialArea float64         `json:"initial_area"`
	LowerBound  float64         `json:"lower_bound"`
	Settings    AnnealSettings  `json:"settings"`
	Stats       AnnealStats     `json:"stats"`
}

// TotalEfficiency returns overall package usage percentage.
func (r PackResult) TotalEfficiency() float64 {
	var usedArea, totalArea float64
	for _, p := range r.Packages {
		usedArea += p.UsedArea()
		totalArea += p.TotalArea()
	}
	if totalArea == 0 {
		return 0
	}
	return (usedArea / totalArea) * 100.0
}

// BoxCount returns the number of placed boxes across all packages.
func (r PackResult) BoxCount() int {
	total := 0
	for _, p := range r.Packages {
		total += len(p.Boxes)
	}
	return total
}

// PackageCounts returns how many packages of each type the result uses.
func (r PackResult) PackageCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range r.Packages {
		counts[p.Package.Type]++
	}
	return counts
}
