// Package imageprobe implements spec.md §4.8's ImageProbes: MIME-dispatched
// size/channel/VRAM estimators that parse only a decoder's header, never a
// full pixel buffer.
//
// Grounded on the teacher's texture/texture2D.go DecodeImage, which
// blank-imports image/jpeg and image/png for their side-effect-registered
// decoders and calls the full image.Decode; this package borrows that same
// registration idiom but calls image.DecodeConfig instead, and extends the
// decoder set with golang.org/x/image's webp and bmp packages, which the
// teacher's stdlib-only decoder set never covered.
package imageprobe

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/proptype"
)

// ChannelMask reports which of R, G, B, A a probed image actually carries.
type ChannelMask uint8

const (
	ChannelR ChannelMask = 1 << iota
	ChannelG
	ChannelB
	ChannelA
)

// Has reports whether mask includes c.
func (mask ChannelMask) Has(c ChannelMask) bool { return mask&c != 0 }

// String renders the mask as its present channel letters, e.g. "RGBA".
func (mask ChannelMask) String() string {
	letters := ""
	for _, c := range []struct {
		bit ChannelMask
		ch  byte
	}{{ChannelR, 'R'}, {ChannelG, 'G'}, {ChannelB, 'B'}, {ChannelA, 'A'}} {
		if mask.Has(c.bit) {
			letters += string(c.ch)
		}
	}
	return letters
}

// Result is one probe's findings: header-derived dimensions and channel
// layout, from which GPUByteLength derives a conservative VRAM estimate.
type Result struct {
	Width, Height int
	Channels      ChannelMask
}

// GPUByteLength estimates host-uploaded VRAM use: one byte per channel per
// texel at the base level, inflated by the standard 4/3 geometric-series
// bound when a full mip chain is requested (spec.md §4.8).
func (r Result) GPUByteLength(mipmaps bool) int64 {
	channels := int64(0)
	for _, c := range []ChannelMask{ChannelR, ChannelG, ChannelB, ChannelA} {
		if r.Channels.Has(c) {
			channels++
		}
	}
	base := int64(r.Width) * int64(r.Height) * channels
	if mipmaps {
		base = base * 4 / 3
	}
	return base
}

// Probe decodes just enough of data to report its Result. Probes must not
// read beyond the header; image.DecodeConfig and its x/image analogues
// guarantee that.
type Probe func(data []byte) (Result, error)

// Registry dispatches a MIME type to the Probe that understands it,
// mirroring extension.Registry's name->handler map (spec.md §4.3) one
// level down, for image formats instead of glTF extensions.
type Registry struct {
	probes map[string]Probe
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{probes: make(map[string]Probe)}
}

// Register installs (or replaces) the probe for mimeType.
func (r *Registry) Register(mimeType string, p Probe) {
	r.probes[mimeType] = p
}

// Probe dispatches data to the probe registered for mimeType.
func (r *Registry) Probe(mimeType string, data []byte) (Result, error) {
	p, ok := r.probes[mimeType]
	if !ok {
		return Result{}, &gerr.UnsupportedExtensionError{Name: mimeType}
	}
	return p(data)
}

// ProbeTexture probes t's inline image bytes. Textures that reference an
// external URI instead of carrying inline bytes can't be probed without
// fetching them first, which is the caller's responsibility (via
// ioplatform.Fetch); that case reports an UnresolvedResourceError.
func (r *Registry) ProbeTexture(t *proptype.Texture) (Result, error) {
	if t.Data() == nil {
		return Result{}, &gerr.UnresolvedResourceError{Resource: t.URI(), Reason: "texture has no inline image bytes to probe"}
	}
	return r.Probe(t.MimeType(), t.Data())
}

// Default is the package-level Registry pre-populated with the four
// formats spec.md §4.8 and the DOMAIN STACK expansion call for: PNG and
// JPEG as core fallbacks, WEBP and BMP via golang.org/x/image.
var Default = NewRegistry()

func init() {
	Default.Register("image/png", stdlibProbe)
	Default.Register("image/jpeg", stdlibProbe)
	Default.Register("image/webp", webpProbe)
	Default.Register("image/bmp", bmpProbe)
}

func stdlibProbe(data []byte) (Result, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("imageprobe: %w", err)
	}
	return fromConfig(cfg), nil
}

func webpProbe(data []byte) (Result, error) {
	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("imageprobe: %w", err)
	}
	return fromConfig(cfg), nil
}

func bmpProbe(data []byte) (Result, error) {
	cfg, err := bmp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("imageprobe: %w", err)
	}
	return fromConfig(cfg), nil
}

func fromConfig(cfg image.Config) Result {
	return Result{Width: cfg.Width, Height: cfg.Height, Channels: channelMask(cfg.ColorModel)}
}

// channelMask approximates a decoder's color.Model as the channel set a
// GPU upload would carry: grayscale to a single channel, anything with an
// alpha-capable model to all four, everything else to RGB.
func channelMask(cm color.Model) ChannelMask {
	switch cm {
	case color.GrayModel, color.Gray16Model:
		return ChannelR
	case color.NRGBAModel, color.RGBAModel, color.NRGBA64Model, color.RGBA64Model:
		return ChannelR | ChannelG | ChannelB | ChannelA
	default:
		return ChannelR | ChannelG | ChannelB
	}
}

// mipmapFilters are the glTF sampler minFilter enum values that sample a
// mip chain, used by callers deciding GPUByteLength's mipmaps argument
// from a TextureInfo.MinFilter.
var mipmapFilters = map[proptype.FilterMode]bool{
	proptype.FilterNearestMipmapNearest: true,
	proptype.FilterLinearMipmapNearest:  true,
	proptype.FilterNearestMipmapLinear:  true,
	proptype.FilterLinearMipmapLinear:   true,
}

// NeedsMipmaps reports whether min samples a mip chain.
func NeedsMipmaps(min proptype.FilterMode) bool {
	return mipmapFilters[min]
}
