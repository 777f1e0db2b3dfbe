package model

import "errors"

// ErrCycle reports a class that participates in its own ancestor chain.
// A cyclic parent chain is a structural defect of the upstream model
// and is always fatal.
var ErrCycle = errors.New("inheritance cycle detected")
