// Package host is the in-process extension host the test runner exposes to
// addins, and the builder that turns fixture definitions into test nodes.
package host

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Host holds the extension points offered to addins
type Host struct {
	mu     sync.RWMutex
	points map[string]ExtensionPoint
	log    logrus.FieldLogger
}

// New creates a host offering the test decorators extension point
func New(log logrus.FieldLogger) *Host {
	h := NewEmpty(log)
	h.Register(NewDecoratorPoint(h.log))
	return h
}

// NewEmpty creates a host without extension points
func NewEmpty(log logrus.FieldLogger) *Host {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Host{
		points: make(map[string]ExtensionPoint),
		log:    log,
	}
}

// Register adds or replaces an extension point
func (h *Host) Register(point ExtensionPoint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.points[point.Name()] = point
}

// ExtensionPoint returns the named extension point, if the host offers it
func (h *Host) ExtensionPoint(name string) (ExtensionPoint, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	point, ok := h.points[name]
	return point, ok
}

// Decorators returns the test decorators point, or nil when not offered
func (h *Host) Decorators() *DecoratorPoint {
	point, ok := h.ExtensionPoint(TestDecoratorsPoint)
	if !ok {
		return nil
	}
	decorators, _ := point.(*DecoratorPoint)
	return decorators
}

// Load invites every addin to install itself and returns how many did
func (h *Host) Load(addins ...Addin) int {
	installed := 0
	for _, addin := range addins {
		name := fmt.Sprintf("%T", addin)
		if d, ok := addin.(Describer); ok {
			info := d.AddinInfo()
			name = info.Name
			h.log.WithFields(logrus.Fields{
				"addin": info.Name,
				"type":  info.Type,
			}).Debug("Loading addin")
		}

		if !addin.Install(h) {
			h.log.WithField("addin", name).Warn("Addin could not be installed")
			continue
		}
		installed++
	}
	return installed
}
