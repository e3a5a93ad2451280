package overwatch

import (
	"sort"
	"sync"

	reg "github.com/jxo-me/namesilo-ddns/core/registry"
	"github.com/jxo-me/namesilo-ddns/core/service"
)

// ServiceCallback is a service notify it's run loop finished.
// the first parameter is the service name,
// the second parameter is the service config hash,
// the third parameter is an optional error if the service failed
type ServiceCallback func(string, string, error)

// AppManager is the default implementation of over-watched service management.
// Running services are kept in the given registry, keyed by String().
type AppManager struct {
	mu       sync.Mutex
	services reg.IRegistry[service.IDDNSService]
	callback ServiceCallback
}

// NewAppManager creates a new over-watched manager
func NewAppManager(services reg.IRegistry[service.IDDNSService], callback ServiceCallback) Manager {
	return &AppManager{services: services, callback: callback}
}

// Add takes in a new service to manage.
// It stops the service if it already exists in the manager and is running
// It then starts the newly added service
func (m *AppManager) Add(svc service.IDDNSService) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := svc.String()
	// check for existing service
	if m.services.IsRegistered(name) {
		currentService := m.services.Get(name)
		if currentService.Hash() == svc.Hash() {
			return // the exact same service, no changes, so move along
		}
		_ = currentService.Stop() // shutdown the old loop since a new one is starting
		m.services.Unregister(name)
	}
	_ = m.services.Register(name, svc)

	//start the service!
	go m.serviceRun(svc)
}

// Remove shutdowns the service by name and removes it from its current management list
func (m *AppManager) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.services.IsRegistered(name) {
		_ = m.services.Get(name).Stop()
	}
	m.services.Unregister(name)
}

// Services returns all the current Services being managed, ordered by name
func (m *AppManager) Services() []service.IDDNSService {
	all := m.services.GetAll()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]service.IDDNSService, 0, len(names))
	for _, name := range names {
		values = append(values, all[name])
	}
	return values
}

// Shutdown stops and removes every managed service
func (m *AppManager) Shutdown() {
	for _, svc := range m.Services() {
		m.Remove(svc.String())
	}
}

func (m *AppManager) serviceRun(svc service.IDDNSService) {
	err := svc.Start()
	if m.callback != nil {
		m.callback(svc.String(), svc.Hash(), err)
	}
}
