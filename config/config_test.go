package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g3n/gltfedit/document"
	"github.com/g3n/gltfedit/ioplatform"
)

const samplePlan = `
steps:
  - name: dedup
    options:
      propertyTypes: [ACCESSOR, MATERIAL]
  - name: noop
`

func TestParseStringListsStepNames(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.ParseString(samplePlan))
	assert.Equal(t, []string{"dedup", "noop"}, b.Names())
}

func TestParseStringRejectsMalformedYAML(t *testing.T) {
	b := NewBuilder()
	err := b.ParseString("steps: [this is not: a valid, list")
	assert.Error(t, err)
}

func TestBuildDispatchesRegisteredFactories(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.ParseString(samplePlan))

	reg := NewRegistry()
	var gotOptions map[string]interface{}
	reg.Register("dedup", func(options map[string]interface{}) (document.Transform, error) {
		gotOptions = options
		return document.Transform{Name: "dedup", Run: func(*document.Document, *document.TransformContext) error { return nil }}, nil
	})
	reg.Register("noop", func(options map[string]interface{}) (document.Transform, error) {
		return document.Transform{Name: "noop", Run: func(*document.Document, *document.TransformContext) error { return nil }}, nil
	})

	steps, err := b.Build(reg)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "dedup", steps[0].Name)
	assert.Equal(t, "noop", steps[1].Name)

	require.NotNil(t, gotOptions)
	assert.Equal(t, []string{"ACCESSOR", "MATERIAL"}, StringList(gotOptions["propertyTypes"]))
}

func TestBuildRejectsUnknownStepName(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.ParseString(`steps: [{name: mystery}]`))

	_, err := b.Build(NewRegistry())
	assert.Error(t, err)
}

func TestParseFileReadsThroughIOPlatform(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/plan.yaml"
	require.NoError(t, ioplatform.Default.WriteFile(path, []byte(samplePlan)))

	b := NewBuilder()
	require.NoError(t, b.ParseFile(path, ioplatform.Default))
	assert.Equal(t, []string{"dedup", "noop"}, b.Names())
}

func TestStringListIgnoresNonStringElements(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, StringList([]interface{}{"a", 1, "b", nil}))
	assert.Nil(t, StringList("not-a-list"))
}
