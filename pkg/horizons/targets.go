package horizons

import "strconv"

// Target is a named body or spacecraft with its Horizons numeric id.
// Planets use planet-center ids (x99); spacecraft use negative NAIF ids.
type Target struct {
	Code    string   // short code, e.g. "VGR1"
	Name    string   // display name
	ID      int      // Horizons/NAIF numeric id
	Aliases []string // alternative codes and names
}

// Command returns the COMMAND value selecting this target.
func (t Target) Command() string {
	return strconv.Itoa(t.ID)
}

// Targets is the built-in catalog used for name resolution. It covers the
// planet centers, the Sun and Moon, and commonly queried spacecraft.
// IDs follow https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/req/naif_ids.html
var Targets = []Target{
	{Code: "SUN", Name: "Sun", ID: 10},
	{Code: "MOON", Name: "Moon", ID: 301, Aliases: []string{"LUNA"}},

	{Code: "MERCURY", Name: "Mercury", ID: 199},
	{Code: "VENUS", Name: "Venus", ID: 299},
	{Code: "EARTH", Name: "Earth", ID: 399},
	{Code: "MARS", Name: "Mars", ID: 499},
	{Code: "JUPITER", Name: "Jupiter", ID: 599},
	{Code: "SATURN", Name: "Saturn", ID: 699},
	{Code: "URANUS", Name: "Uranus", ID: 799},
	{Code: "NEPTUNE", Name: "Neptune", ID: 899},
	{Code: "PLUTO", Name: "Pluto", ID: 999},

	{Code: "VGR1", Name: "Voyager 1", ID: -31, Aliases: []string{"VOYAGER 1"}},
	{Code: "VGR2", Name: "Voyager 2", ID: -32, Aliases: []string{"VOYAGER 2"}},
	{Code: "JUNO", Name: "Juno", ID: -61},
	{Code: "MRO", Name: "Mars Reconnaissance Orbiter", ID: -74},
	{Code: "MSL", Name: "Curiosity", ID: -76, Aliases: []string{"CURIOSITY"}},
	{Code: "M20", Name: "Perseverance", ID: -168, Aliases: []string{"PERSEVERANCE", "MARS 2020"}},
	{Code: "MVN", Name: "MAVEN", ID: -202, Aliases: []string{"MAVEN"}},
	{Code: "NH", Name: "New Horizons", ID: -98, Aliases: []string{"NEW HORIZONS"}},
	{Code: "PSP", Name: "Parker Solar Probe", ID: -96, Aliases: []string{"PARKER"}},
	{Code: "SOLO", Name: "Solar Orbiter", ID: -144},
	{Code: "LUCY", Name: "Lucy", ID: -49},
	{Code: "PSYC", Name: "Psyche", ID: -255, Aliases: []string{"PSYCHE"}},
	{Code: "EURC", Name: "Europa Clipper", ID: -159, Aliases: []string{"EUROPA CLIPPER"}},
	{Code: "JUICE", Name: "JUICE", ID: -28},
	{Code: "BEPI", Name: "BepiColombo", ID: -121, Aliases: []string{"BEPICOLOMBO"}},
	{Code: "LRO", Name: "Lunar Reconnaissance Orbiter", ID: -85},
	{Code: "JWST", Name: "James Webb Space Telescope", ID: -170, Aliases: []string{"WEBB", "JAMES WEBB"}},
	{Code: "GAIA", Name: "Gaia", ID: -123},
	{Code: "HST", Name: "Hubble", ID: -48, Aliases: []string{"HUBBLE"}},
	{Code: "TESS", Name: "TESS", ID: -95},
	{Code: "SOHO", Name: "SOHO", ID: -21},
	{Code: "STA", Name: "STEREO-A", ID: -234, Aliases: []string{"STEREO AHEAD"}},
}

// targetsByKey indexes the catalog by normalized code, name, and alias.
var targetsByKey = func() map[string]Target {
	m := make(map[string]Target, len(Targets)*3)
	for _, t := range Targets {
		m[normalizeTarget(t.Code)] = t
		m[normalizeTarget(t.Name)] = t
		for _, a := range t.Aliases {
			m[normalizeTarget(a)] = t
		}
	}
	return m
}()

// LookupTarget resolves a code or name (case-insensitive) to a catalog entry.
func LookupTarget(s string) (Target, bool) {
	t, ok := targetsByKey[normalizeTarget(s)]
	return t, ok
}

// ResolveCommand turns a user-supplied target string into a COMMAND value:
// numeric ids pass through, known names resolve via the catalog, anything
// else is forwarded as a service-side name lookup.
func ResolveCommand(s string) string {
	if _, err := strconv.Atoi(s); err == nil {
		return s
	}
	if t, ok := LookupTarget(s); ok {
		return t.Command()
	}
	return s
}

func normalizeTarget(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}
