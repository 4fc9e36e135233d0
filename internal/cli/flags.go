package cli

import "itd/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	Processors  int
	NameFilter  string
	FailFast    bool
	TestCases   bool
	OnlyMarked  bool
	MetricsFile string
	Verbose     bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:  f.ConfigFile,
		Processors:  f.Processors,
		NameFilter:  f.NameFilter,
		FailFast:    f.FailFast,
		TestCases:   f.TestCases,
		OnlyMarked:  f.OnlyMarked,
		MetricsFile: f.MetricsFile,
		Verbose:     f.Verbose,
	}
}
