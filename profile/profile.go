// Package profile holds the built-in device presets a conversion session can
// select by name. The set is fixed at compile time, mirroring the preset
// tables shipped by desktop reflow tools.
package profile

import "strings"

// Profile describes the output geometry for one target display.
type Profile struct {
	Name    string
	Aliases []string
	// WidthPx and HeightPx are the usable screen area in pixels.
	WidthPx  int
	HeightPx int
	// DPI is the physical pixel density, used as the render resolution.
	DPI int
	// Color marks displays that benefit from color output.
	Color bool
	// PaddingPx is extra blank space (left, top, right, bottom) reserved on
	// each output page, in pixels.
	PaddingPx [4]int
}

var profiles = []Profile{
	{Name: "kindle", Aliases: []string{"k2"}, WidthPx: 560, HeightPx: 735, DPI: 167},
	{Name: "dx", Aliases: []string{"kindledx"}, WidthPx: 800, HeightPx: 1080, DPI: 150},
	{Name: "kpw", Aliases: []string{"paperwhite"}, WidthPx: 658, HeightPx: 889, DPI: 212},
	{Name: "kv", Aliases: []string{"voyage", "oasis"}, WidthPx: 1016, HeightPx: 1364, DPI: 300},
	{Name: "ko2", Aliases: []string{"kobo"}, WidthPx: 1040, HeightPx: 1356, DPI: 265, PaddingPx: [4]int{3, 0, 19, 4}},
	{Name: "nook", Aliases: []string{"nookst"}, WidthPx: 552, HeightPx: 725, DPI: 167},
	{Name: "tablet", Aliases: []string{"ipad"}, WidthPx: 768, HeightPx: 1024, DPI: 132, Color: true},
	{Name: "generic", WidthPx: 600, HeightPx: 800, DPI: 167},
}

var byName = func() map[string]*Profile {
	m := make(map[string]*Profile)
	for i := range profiles {
		p := &profiles[i]
		m[p.Name] = p
		for _, a := range p.Aliases {
			m[a] = p
		}
	}
	return m
}()

// Lookup resolves a profile by name or alias, case-insensitively.
func Lookup(name string) (Profile, bool) {
	p, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, false
	}
	return *p, true
}

// Names returns the canonical profile names in registration order.
func Names() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}
