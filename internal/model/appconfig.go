package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to every run unless overridden on the command line
	Catalog        Catalog        `json:"catalog"`
	AnnealSettings AnnealSettings `json:"anneal_settings"`

	// Output preferences
	OutputDir    string `json:"output_dir"`     // Where result files are written, "" = working directory
	WritePDF     bool   `json:"write_pdf"`      // Render a PDF layout after each run
	WriteDXF     bool   `json:"write_dxf"`      // Render a DXF layout after each run
	WriteLabels  bool   `json:"write_labels"`   // Print QR labels after each run
	MaxRecentRun int    `json:"max_recent_run"` // Length of the recent runs list

	RecentRuns []string `json:"recent_runs"` // Paths of recently written result files
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultCatalog and DefaultAnnealSettings.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Catalog:        DefaultCatalog(),
		AnnealSettings: DefaultAnnealSettings(),
		OutputDir:      "",
		WritePDF:       false,
		WriteDXF:       false,
		WriteLabels:    false,
		MaxRecentRun:   10,
		RecentRuns:     []string{},
	}
}

// ApplyToSettings copies the configured schedule into s. Zero values in the
// config leave the corresponding setting untouched, so a partially written
// config file does not break the schedule.
func (c AppConfig) ApplyToSettings(s *AnnealSettings) {
	a := c.AnnealSettings
	if a.InitialControl > 0 {
		s.InitialControl = a.InitialControl
	}
	if a.MinControl > 0 {
		s.MinControl = a.MinControl
	}
	if a.Alpha > 0 {
		s.Alpha = a.Alpha
	}
	if a.StepsPerTemperature > 0 {
		s.StepsPerTemperature = a.StepsPerTemperature
	}
	if a.Precision > 0 {
		s.Precision = a.Precision
	}
	if a.Seed != 0 {
		s.Seed = a.Seed
	}
}

// AddRecentRun records a result path at the front of the recent runs list,
// removing duplicates and trimming the list to MaxRecentRun entries.
func (c *AppConfig) AddRecentRun(path string) {
	runs := []string{path}
	for _, r := range c.RecentRuns {
		if r != path {
			runs = append(runs, r)
		}
	}
	limit := c.MaxRecentRun
	if limit <= 0 {
		limit = 10
	}
	if len(runs) > limit {
		runs = runs[:limit]
	}
	c.RecentRuns = runs
}
