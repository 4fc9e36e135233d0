// Package decorator installs into the test runner's decorator extension
// point and replaces tests tagged with an inconclusive marker by nodes that
// report their failures as inconclusive.
package decorator

import (
	"github.com/sirupsen/logrus"

	"itd/internal/domain"
	"itd/internal/host"
	"itd/internal/marker"
)

const (
	AddinName        = "InconclusiveTests"
	AddinDescription = "Reports failures of unstable tests as inconclusive."
)

// Decorator wraps tests declared with an inconclusive marker
type Decorator struct {
	log      logrus.FieldLogger
	recorder Recorder
}

// Option configures a Decorator
type Option func(*Decorator)

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Decorator) {
		d.log = log
	}
}

// WithRecorder reports reclassified outcomes to r
func WithRecorder(r Recorder) Option {
	return func(d *Decorator) {
		d.recorder = r
	}
}

// New creates a Decorator
func New(opts ...Option) *Decorator {
	d := &Decorator{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddinInfo describes the addin to the host
func (d *Decorator) AddinInfo() host.AddinInfo {
	return host.AddinInfo{
		Name:        AddinName,
		Description: AddinDescription,
		Type:        host.ExtensionTypeCore,
	}
}

// Install registers the decorator with the host. The host may invite the
// addin more than once; it returns false when the host has no decorator
// extension point.
func (d *Decorator) Install(h host.ExtensionHost) bool {
	decorators, ok := h.ExtensionPoint(host.TestDecoratorsPoint)
	if !ok {
		return false
	}

	decorators.Install(d)
	return true
}

// Decorate returns test unchanged unless method carries an inconclusive
// marker. Marked single tests are replaced; every case of a marked
// parameterized group is replaced in place and the group returned.
func (d *Decorator) Decorate(test domain.Test, method *domain.Method) (domain.Test, error) {
	if method == nil {
		return test, nil
	}

	m, ok := marker.Lookup(method.Markers)
	if !ok {
		return test, nil
	}
	if n := marker.Count(method.Markers); n > 1 {
		d.log.WithFields(logrus.Fields{
			"method":  method.Name,
			"markers": n,
		}).Warn("Method carries more than one inconclusive marker, using the first")
	}
	ticket := m.InconclusiveTicket()

	switch node := test.(type) {
	case *domain.TestMethod:
		tc, err := newInconclusiveTestCase(node, ticket, d.log, d.recorder)
		if err != nil {
			return nil, err
		}
		return tc, nil
	case *domain.ParameterizedMethodSuite:
		if err := d.decorateGroup(node, ticket); err != nil {
			return nil, err
		}
		return node, nil
	default:
		return test, nil
	}
}

// decorateGroup replaces every test method of the group, keeping positions
func (d *Decorator) decorateGroup(group *domain.ParameterizedMethodSuite, ticket string) error {
	replacements := make(map[int]*InconclusiveTestCase)
	for i, test := range group.Tests {
		tm, ok := test.(*domain.TestMethod)
		if !ok {
			continue
		}
		tc, err := newInconclusiveTestCase(tm, ticket, d.log, d.recorder)
		if err != nil {
			return err
		}
		replacements[i] = tc
	}

	for i, tc := range replacements {
		group.Tests[i] = tc
	}
	return nil
}
