// Package marker declares the tag that lets an unstable test report
// failures as inconclusive.
package marker

// Inconclusive is implemented by any marker that downgrades failures of the
// method it is declared on. Markers from other packages are recognized as
// long as they implement it.
type Inconclusive interface {
	InconclusiveTicket() string
}

// InconclusiveTest marks a test method as unstable enough to have its
// failures considered inconclusive. Ticket references the tracking issue.
type InconclusiveTest struct {
	Ticket string
}

// New creates an InconclusiveTest marker for ticket
func New(ticket string) *InconclusiveTest {
	return &InconclusiveTest{Ticket: ticket}
}

// InconclusiveTicket returns the ticket reference
func (m *InconclusiveTest) InconclusiveTicket() string {
	return m.Ticket
}

// Lookup returns the first inconclusive marker among markers.
// A method should carry at most one; when it carries more the first wins.
func Lookup(markers []any) (Inconclusive, bool) {
	for _, m := range markers {
		if inconclusive, ok := m.(Inconclusive); ok {
			return inconclusive, true
		}
	}
	return nil, false
}

// Count returns how many inconclusive markers are present
func Count(markers []any) int {
	n := 0
	for _, m := range markers {
		if _, ok := m.(Inconclusive); ok {
			n++
		}
	}
	return n
}
