package plugin

// Builtin returns the stock model set. These are descriptors only - the
// editor cares about faces, ports and params; their audio engines live
// outside this core.
func Builtin() []*Model {
	return []*Model{
		{
			Plugin: "builtin", Slug: "vco", Name: "VCO", Width: 4,
			Inputs:  []string{"pitch", "fm", "sync"},
			Outputs: []string{"sin", "tri", "saw", "sqr"},
			Params: []ParamSpec{
				{Name: "freq", Min: -54, Max: 54, Default: 0},
				{Name: "fine", Min: -1, Max: 1, Default: 0},
				{Name: "pw", Min: 0, Max: 1, Default: 0.5},
				{Name: "range", Min: 0, Max: 2, Default: 1, Kind: KindToggle},
			},
		},
		{
			Plugin: "builtin", Slug: "vcf", Name: "VCF", Width: 4,
			Inputs:  []string{"in", "cutoff cv", "res cv"},
			Outputs: []string{"lpf", "hpf"},
			Params: []ParamSpec{
				{Name: "cutoff", Min: 0, Max: 1, Default: 0.5},
				{Name: "res", Min: 0, Max: 1, Default: 0},
			},
		},
		{
			Plugin: "builtin", Slug: "vca", Name: "VCA", Width: 2,
			Inputs:  []string{"in", "cv"},
			Outputs: []string{"out"},
			Params: []ParamSpec{
				{Name: "level", Min: 0, Max: 1, Default: 1},
			},
		},
		{
			Plugin: "builtin", Slug: "lfo", Name: "LFO", Width: 4,
			Inputs:  []string{"reset"},
			Outputs: []string{"sin", "tri", "saw", "sqr"},
			Params: []ParamSpec{
				{Name: "rate", Min: -8, Max: 8, Default: 0},
				{Name: "shape", Min: 0, Max: 1, Default: 0.5},
				{Name: "mode", Min: 0, Max: 2, Default: 0, Kind: KindCycling},
			},
		},
		{
			Plugin: "builtin", Slug: "mixer", Name: "Mixer", Width: 5,
			Inputs:  []string{"ch1", "ch2", "ch3", "ch4"},
			Outputs: []string{"mix"},
			Params: []ParamSpec{
				{Name: "ch1", Min: 0, Max: 1, Default: 1},
				{Name: "ch2", Min: 0, Max: 1, Default: 1},
				{Name: "ch3", Min: 0, Max: 1, Default: 1},
				{Name: "ch4", Min: 0, Max: 1, Default: 1},
			},
		},
		{
			Plugin: "builtin", Slug: "output", Name: "Output", Width: 3,
			Inputs:  []string{"left", "right"},
			Outputs: []string{},
			Params: []ParamSpec{
				{Name: "level", Min: 0, Max: 1, Default: 0.8},
				{Name: "mute", Min: 0, Max: 1, Default: 0, Kind: KindMomentary},
			},
		},
	}
}
