package imageprobe

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/proptype"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewYCbCr(image.Rect(0, 0, w, h), image.YCbCrSubsampleRatio420)
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func encodeBMP(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))
	return buf.Bytes()
}

func TestProbePNGReportsDimensionsAndAlphaChannel(t *testing.T) {
	data := encodePNG(t, 16, 8)
	result, err := Default.Probe("image/png", data)
	require.NoError(t, err)
	assert.Equal(t, 16, result.Width)
	assert.Equal(t, 8, result.Height)
	assert.True(t, result.Channels.Has(ChannelA))
	assert.Equal(t, "RGBA", result.Channels.String())
}

func TestProbeJPEGReportsRGBWithNoAlpha(t *testing.T) {
	data := encodeJPEG(t, 32, 16)
	result, err := Default.Probe("image/jpeg", data)
	require.NoError(t, err)
	assert.Equal(t, 32, result.Width)
	assert.Equal(t, 16, result.Height)
	assert.False(t, result.Channels.Has(ChannelA))
}

func TestProbeBMPReportsDimensions(t *testing.T) {
	data := encodeBMP(t, 4, 4)
	result, err := Default.Probe("image/bmp", data)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Width)
	assert.Equal(t, 4, result.Height)
}

func TestGPUByteLengthScalesWithMipmaps(t *testing.T) {
	r := Result{Width: 10, Height: 10, Channels: ChannelR | ChannelG | ChannelB}
	base := r.GPUByteLength(false)
	assert.Equal(t, int64(300), base)
	withMips := r.GPUByteLength(true)
	assert.Equal(t, base*4/3, withMips)
	assert.Greater(t, withMips, base)
}

func TestProbeUnregisteredMimeTypeReturnsError(t *testing.T) {
	_, err := Default.Probe("image/tiff", []byte{})
	assert.Error(t, err)
}

func TestProbeTextureRequiresInlineBytes(t *testing.T) {
	tex := proptype.NewTexture(graph.New())
	_ = tex.SetURI("external.png")
	_, err := Default.ProbeTexture(tex)
	assert.Error(t, err)
}

func TestNeedsMipmapsMatchesGLTFFilterEnum(t *testing.T) {
	assert.True(t, NeedsMipmaps(proptype.FilterLinearMipmapLinear))
	assert.False(t, NeedsMipmaps(proptype.FilterLinear))
}
