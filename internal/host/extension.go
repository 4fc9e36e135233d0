package host

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"

	"itd/internal/domain"
)

// TestDecoratorsPoint is the name of the extension point for test decorators
const TestDecoratorsPoint = "TestDecorators"

// ExtensionType tells the host which side of the runner an addin belongs to
type ExtensionType string

const (
	ExtensionTypeCore   ExtensionType = "Core"
	ExtensionTypeClient ExtensionType = "Client"
)

// AddinInfo is the static declaration the host uses to discover an addin
type AddinInfo struct {
	Name        string
	Description string
	Type        ExtensionType
}

// Addin installs itself into a host when invited
type Addin interface {
	// Install returns false when the host lacks what the addin needs
	Install(host ExtensionHost) bool
}

// Describer is implemented by addins that publish their AddinInfo
type Describer interface {
	AddinInfo() AddinInfo
}

// ExtensionHost exposes named extension points
type ExtensionHost interface {
	ExtensionPoint(name string) (ExtensionPoint, bool)
}

// ExtensionPoint accepts extensions of the kind it understands
type ExtensionPoint interface {
	Name() string
	Install(extension any)
}

// TestDecorator examines a freshly built test and returns it, modified or
// replaced. method is the descriptor the test was built from.
type TestDecorator interface {
	Decorate(test domain.Test, method *domain.Method) (domain.Test, error)
}

// DecoratorPoint collects test decorators and applies them in install order
type DecoratorPoint struct {
	mu         sync.RWMutex
	decorators []TestDecorator
	log        logrus.FieldLogger
}

// NewDecoratorPoint creates an empty decorator extension point
func NewDecoratorPoint(log logrus.FieldLogger) *DecoratorPoint {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DecoratorPoint{log: log}
}

// Name returns the extension point name
func (p *DecoratorPoint) Name() string {
	return TestDecoratorsPoint
}

// Install registers a decorator. Extensions that are not decorators and
// decorators already installed are ignored.
func (p *DecoratorPoint) Install(extension any) {
	decorator, ok := extension.(TestDecorator)
	if !ok {
		p.log.WithField("extension", fmt.Sprintf("%T", extension)).Warn("Extension is not a test decorator, ignoring")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, existing := range p.decorators {
		if sameExtension(existing, decorator) {
			p.log.WithField("extension", fmt.Sprintf("%T", extension)).Debug("Test decorator already installed")
			return
		}
	}
	p.decorators = append(p.decorators, decorator)
}

// Len returns the number of installed decorators
func (p *DecoratorPoint) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.decorators)
}

// Decorate passes test through every installed decorator
func (p *DecoratorPoint) Decorate(test domain.Test, method *domain.Method) (domain.Test, error) {
	p.mu.RLock()
	decorators := make([]TestDecorator, len(p.decorators))
	copy(decorators, p.decorators)
	p.mu.RUnlock()

	for _, decorator := range decorators {
		decorated, err := decorator.Decorate(test, method)
		if err != nil {
			return nil, fmt.Errorf("decorate %s: %w", test.Info().FullName, err)
		}
		test = decorated
	}
	return test, nil
}

func sameExtension(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
