package module

import "facilities/internal/services/facilities/domain"

// Ports defines facilities module ports exposed via the registry
type Ports struct {
	Reloader domain.ReloaderPort
	Admin    domain.AdminPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
