package model

// Listener observes traversal progress. Enter fires before a node's
// callback, Leave after the node and all of its children have been
// visited. Implementations must not mutate the model.
type Listener interface {
	Enter(Node)
	Leave(Node)
}

type nopListener struct{}

func (nopListener) Enter(Node) {}
func (nopListener) Leave(Node) {}

// NopListener returns a listener that ignores all notifications.
func NopListener() Listener { return nopListener{} }

// VisitFunc receives every node of a walk in deterministic pre-order.
// Returning a non-nil error aborts the walk.
type VisitFunc func(Node) error

// Walk traverses packages in document order: each package, then its
// classes (with their methods), interfaces (with their methods), then
// functions. The order is deterministic and must not be parallelized;
// analyzers accumulate state across visits.
func Walk(pkgs []*Package, visit VisitFunc, l Listener) error {
	if l == nil {
		l = NopListener()
	}
	for _, p := range pkgs {
		l.Enter(p)
		if err := visit(p); err != nil {
			return err
		}
		for _, c := range p.Classes {
			l.Enter(c)
			if err := visit(c); err != nil {
				return err
			}
			for _, m := range c.Methods {
				l.Enter(m)
				if err := visit(m); err != nil {
					return err
				}
				l.Leave(m)
			}
			l.Leave(c)
		}
		for _, i := range p.Interfaces {
			l.Enter(i)
			if err := visit(i); err != nil {
				return err
			}
			for _, m := range i.Methods {
				l.Enter(m)
				if err := visit(m); err != nil {
					return err
				}
				l.Leave(m)
			}
			l.Leave(i)
		}
		for _, f := range p.Functions {
			l.Enter(f)
			if err := visit(f); err != nil {
				return err
			}
			l.Leave(f)
		}
		l.Leave(p)
	}
	return nil
}

// CountNodes returns the number of nodes a Walk over pkgs will visit.
// Used to size progress reporting.
func CountNodes(pkgs []*Package) int {
	n := 0
	for _, p := range pkgs {
		n++
		for _, c := range p.Classes {
			n += 1 + len(c.Methods)
		}
		for _, i := range p.Interfaces {
			n += 1 + len(i.Methods)
		}
		n += len(p.Functions)
	}
	return n
}
