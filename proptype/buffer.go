package proptype

import (
	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// Buffer holds a block of binary data, either embedded (Data set, URI
// empty) or external (URI set, resolved lazily through an I/O platform
// shim at codec time).
type Buffer struct {
	property.Base
	uri  string
	data []byte
}

// NewBuffer constructs an empty Buffer registered under g.
func NewBuffer(g *graph.Graph) *Buffer {
	b := &Buffer{}
	b.Init(g, b, "Buffer")
	return b
}

func (b *Buffer) URI() string { return b.uri }

// SetURI marks the buffer external; subsequent SetData calls still work
// (an external buffer may be given in-memory contents ahead of a write,
// e.g. after a transform regenerates it). The codec's writer does not use
// Buffer URIs: it packs all accessor bytes into one synthesized buffer.
func (b *Buffer) SetURI(uri string) error {
	if err := b.RequireLive(); err != nil {
		return err
	}
	b.uri = uri
	return nil
}

// Data returns the buffer's in-memory bytes, or nil if not yet loaded.
func (b *Buffer) Data() []byte { return b.data }

// SetData replaces the buffer's in-memory bytes.
func (b *Buffer) SetData(data []byte) error {
	if err := b.RequireLive(); err != nil {
		return err
	}
	b.data = data
	return nil
}

// ByteLength is derived from the in-memory data, per spec.md §3's "derived"
// annotation — it is never stored independently and cannot drift from the
// backing array.
func (b *Buffer) ByteLength() int { return len(b.data) }

func (b *Buffer) EdgeFields() []property.EdgeFieldSpec { return nil }

func (b *Buffer) EqualAttrs(other property.Property) bool {
	o, ok := other.(*Buffer)
	if !ok {
		return false
	}
	if b.uri != o.uri || len(b.data) != len(o.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (b *Buffer) CloneAttrs(dst property.Property) {
	o := dst.(*Buffer)
	o.uri = b.uri
	o.data = append([]byte(nil), b.data...)
}

func (b *Buffer) HashAttrs() uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(b.uri); i++ {
		h = (h ^ uint32(b.uri[i])) * 16777619
	}
	for _, by := range b.data {
		h = (h ^ uint32(by)) * 16777619
	}
	return h
}

// RequireResolvable returns an UnresolvedResourceError if the buffer is
// external and has not yet been loaded into memory.
func (b *Buffer) RequireResolvable() error {
	if b.uri != "" && b.data == nil {
		return &gerr.UnresolvedResourceError{Resource: b.uri, Reason: "buffer not loaded"}
	}
	return nil
}
