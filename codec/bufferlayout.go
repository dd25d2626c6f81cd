package codec

// glTF bufferView target enum values, used only as a hint for GPU upload;
// ELEMENT_ARRAY_BUFFER for index accessors, ARRAY_BUFFER for vertex
// attributes, 0 (omitted) for anything else.
const (
	targetArrayBuffer        = 34962
	targetElementArrayBuffer = 34963
)

// bufferLayout accumulates every accessor's encoded bytes into one
// document-wide buffer (buffer index 0), one bufferView per (buffer,
// usage) category as spec.md §4.6 step 3 requires, each padded to start
// on a 4-byte boundary as glTF requires.
//
// Grounded on the teacher's loader.go reading bufferViews out of an
// existing binary blob; this is that same flat-blob model run in
// reverse to build one, rather than reproducing a multi-buffer layout
// this module's Buffer Property never needs to preserve on write (a
// Document's accessors are always regenerated onto a single synthesized
// buffer at encode time).
type bufferLayout struct {
	buf   []byte
	views []wireBufferView
}

func newBufferLayout() *bufferLayout {
	return &bufferLayout{}
}

// placeGroup packs every item in items back-to-back inside one new
// bufferView tagged for usage and returns that view's index plus each
// item's byte offset relative to the view's start. Callers are expected
// to invoke this once per non-empty usage category, in the fixed
// index/vertex/other order spec.md §8 scenario 6 requires of the
// emitted bufferViews, so it never mixes two categories into one view
// or splits one category across two.
func (l *bufferLayout) placeGroup(usage bufferViewUsage, items [][]byte) (viewIdx int, offsets []int) {
	if pad := (4 - len(l.buf)%4) % 4; pad != 0 {
		l.buf = append(l.buf, make([]byte, pad)...)
	}
	viewStart := len(l.buf)
	offsets = make([]int, len(items))
	for i, data := range items {
		offsets[i] = len(l.buf) - viewStart
		l.buf = append(l.buf, data...)
	}

	target := 0
	switch usage {
	case usageIndex:
		target = targetElementArrayBuffer
	case usageVertex:
		target = targetArrayBuffer
	}
	l.views = append(l.views, wireBufferView{Buffer: 0, ByteOffset: viewStart, ByteLength: len(l.buf) - viewStart, Target: target})
	return len(l.views) - 1, offsets
}

func (l *bufferLayout) wireBufferViews() []wireBufferView { return l.views }

func (l *bufferLayout) bytes() []byte { return l.buf }
