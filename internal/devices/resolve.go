package devices

// Resolve expands selector tokens into device names. Only the first
// token picks the mode: "a"/"all" selects the whole table, a known
// group name selects its members, anything else passes the token list
// through verbatim (unknown names fail later, at lookup).
//
// Excluded devices are filtered out of wildcard and group selections
// unless readOnly is set (print/status actions may read sensors).
func (c *Config) Resolve(selectors []string, readOnly bool) []string {
	if len(selectors) == 0 {
		return nil
	}

	switch first := selectors[0]; {
	case first == "a" || first == "all":
		return c.filter(func(d Device) bool { return true }, readOnly)
	case c.HasGroup(first):
		return c.filter(func(d Device) bool { return d.Group == first }, readOnly)
	default:
		return selectors
	}
}

func (c *Config) filter(want func(Device) bool, readOnly bool) []string {
	names := make([]string, 0, len(c.devices))
	for _, d := range c.devices {
		if want(d) && (readOnly || !c.Excluded(d.Name)) {
			names = append(names, d.Name)
		}
	}
	return names
}
