package manifest

import "strconv"

// ResolveMonitorIndex returns the 0-based monitor index this manifest
// targets, and whether it explicitly named an index (false means
// "primary").
func (m *Manifest) ResolveMonitorIndex() (index int, explicit bool) {
	if m.Window.Monitor == "primary" || m.Window.Monitor == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m.Window.Monitor)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
