// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gerr defines the error taxonomy raised by the graph, property,
// and codec packages. Callers branch on kind with errors.As, not string
// matching.
package gerr

import "fmt"

// InvalidContainerError reports that a container's header or chunk
// structure violates the glTF/GLB binary layout.
type InvalidContainerError struct {
	Reason string
}

func (e *InvalidContainerError) Error() string {
	return fmt.Sprintf("invalid container: %s", e.Reason)
}

// UnresolvedResourceError reports that a URI could not be fetched or that
// a referenced index is out of range.
type UnresolvedResourceError struct {
	Resource string
	Reason   string
}

func (e *UnresolvedResourceError) Error() string {
	return fmt.Sprintf("unresolved resource %q: %s", e.Resource, e.Reason)
}

// OutOfRangeError reports that an accessor or bufferView byte range
// exceeds its buffer, or that an element index exceeds an accessor's count.
type OutOfRangeError struct {
	What  string
	Index int
	Limit int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.What, e.Index, e.Limit)
}

// InvariantViolation reports that a setter would leave a Property
// violating one of its per-type invariants.
type InvariantViolation struct {
	PropertyType string
	Reason       string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s invariant violation: %s", e.PropertyType, e.Reason)
}

// UnsupportedExtensionError reports that a required extension has no
// registered reader/writer.
type UnsupportedExtensionError struct {
	Name string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("unsupported required extension: %s", e.Name)
}

// DisposedError reports an operation attempted on a disposed Property.
type DisposedError struct {
	PropertyType string
	Name         string
}

func (e *DisposedError) Error() string {
	return fmt.Sprintf("operation on disposed %s %q", e.PropertyType, e.Name)
}

// CycleError reports that a Node-child edge would introduce a cycle.
type CycleError struct {
	Parent string
	Child  string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("connecting %q as child of %q would create a cycle", e.Child, e.Parent)
}

// EncoderMissing reports that a transform requires an injected codec
// (image encoder, mesh simplifier) that was not provided.
type EncoderMissing struct {
	Service string
}

func (e *EncoderMissing) Error() string {
	return fmt.Sprintf("required service not injected: %s", e.Service)
}
