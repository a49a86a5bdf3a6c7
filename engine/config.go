package engine

type Config struct {
	ScheduleFile string
	Schedule     string
	ParamsFile   string
	OutputFile   string
	StartSplash  string
	EndSplash    string
	StartText    string
	FontFile     string
	DLPDevice    string
	LogLevel     string
	FontSize     int
	ScreenWidth  int
	ScreenHeight int
	DisplayIndex int
	Seed         uint64
	Fullscreen   bool
	VSync        bool
	BGColor      Color
	TextColor    Color
}

func DefaultConfig() *Config {
	return &Config{
		ScheduleFile: "schedules.json",
		OutputFile:   "results.csv",
		StartText:    "Keep your eyes on the dot. Press any key to start.",
		LogLevel:     "info",
		FontSize:     24,
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		VSync:        true,
		BGColor:      Gray,
		TextColor:    White,
	}
}

// Params loads the experiment parameters named by the config and applies
// the schedule chosen on the command line.
func (cfg *Config) Params() (*Params, error) {
	p, err := LoadParams(cfg.ParamsFile)
	if err != nil {
		return nil, err
	}
	if cfg.Schedule != "" {
		p.Schedule = cfg.Schedule
	}
	return p, p.Validate()
}
