package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/g3n/gltfedit/graph"
)

func TestRegisterBundledInstallsAllFourExtensions(t *testing.T) {
	r := NewRegistry()
	RegisterBundled(r)
	names := r.Names()
	assert.Contains(t, names, NameMaterialsUnlit)
	assert.Contains(t, names, NameMaterialsPbrSpecularGlossiness)
	assert.Contains(t, names, NameLightsPunctual)
	assert.Contains(t, names, NameTextureBasisu)
}

func TestReaderMissingExtensionIsUnsupported(t *testing.T) {
	r := NewRegistry()
	_, err := r.Reader("KHR_not_a_real_extension")
	assert.Error(t, err)
}

func TestMaterialsUnlitWriterProducesEmptyObject(t *testing.T) {
	r := NewRegistry()
	registerMaterialsUnlit(r)
	g := graph.New()
	unlit := NewMaterialsUnlit(g)

	writer, err := r.Writer(NameMaterialsUnlit)
	assert.NoError(t, err)
	raw, err := writer(unlit, &WriteContext{})
	assert.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}

func TestLightRoundTripsThroughWireFormat(t *testing.T) {
	r := NewRegistry()
	registerLightsPunctual(r)
	g := graph.New()
	l := NewLight(g, LightSpot)
	l.SetIntensity(42)
	l.SetConeAngles(0.1, 0.5)

	writer, _ := r.Writer(NameLightsPunctual)
	raw, err := writer(l, &WriteContext{})
	assert.NoError(t, err)

	reader, _ := r.Reader(NameLightsPunctual)
	parentHolder := NewLight(g, LightPoint) // any Property works as the parent arg
	back, err := reader(raw, parentHolder, &ReadContext{})
	assert.NoError(t, err)

	got := back.(*Light)
	assert.Equal(t, LightSpot, got.Type())
	assert.Equal(t, float32(42), got.Intensity())
	assert.InDelta(t, 0.1, got.InnerConeAngle(), 1e-6)
	assert.InDelta(t, 0.5, got.OuterConeAngle(), 1e-6)
}
