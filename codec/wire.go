// Package codec implements the BinaryCodec spec.md §4.6 describes: JSON
// and GLB container (de)serialization between a document.Document and its
// wire representation, including extension dispatch through
// extension.Registry and resource resolution through ioplatform.IOPlatform.
//
// Wire struct set ported from the teacher's loader/gltf/gltf.go, trimmed to
// what a read/write round trip needs (the teacher's cache fields are gone;
// this package never caches GPU-ready data, only wire JSON) and extended
// with Extensions/Extras fields. Only material Extensions are passed to
// extension.Registry; Extras and other unrecognized keys are parsed into
// these structs but not stored on Properties, so they do not round-trip.
package codec

import "encoding/json"

// wireAsset mirrors Root.Asset.
type wireAsset struct {
	Version    string          `json:"version"`
	Generator  string          `json:"generator,omitempty"`
	Copyright  string          `json:"copyright,omitempty"`
	MinVersion string          `json:"minVersion,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type wireBuffer struct {
	Uri        string          `json:"uri,omitempty"`
	ByteLength int             `json:"byteLength"`
	Name       string          `json:"name,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type wireBufferView struct {
	Buffer     int             `json:"buffer"`
	ByteOffset int             `json:"byteOffset,omitempty"`
	ByteLength int             `json:"byteLength"`
	ByteStride int             `json:"byteStride,omitempty"`
	Target     int             `json:"target,omitempty"`
	Name       string          `json:"name,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type wireSparseIndices struct {
	BufferView    int `json:"bufferView"`
	ByteOffset    int `json:"byteOffset,omitempty"`
	ComponentType int `json:"componentType"`
}

type wireSparseValues struct {
	BufferView int `json:"bufferView"`
	ByteOffset int `json:"byteOffset,omitempty"`
}

type wireSparse struct {
	Count   int               `json:"count"`
	Indices wireSparseIndices `json:"indices"`
	Values  wireSparseValues  `json:"values"`
}

type wireAccessor struct {
	BufferView    *int            `json:"bufferView,omitempty"`
	ByteOffset    int             `json:"byteOffset,omitempty"`
	ComponentType int             `json:"componentType"`
	Normalized    bool            `json:"normalized,omitempty"`
	Count         int             `json:"count"`
	Type          string          `json:"type"`
	Max           []float64       `json:"max,omitempty"`
	Min           []float64       `json:"min,omitempty"`
	Sparse        *wireSparse     `json:"sparse,omitempty"`
	Name          string          `json:"name,omitempty"`
	Extensions    json.RawMessage `json:"extensions,omitempty"`
	Extras        json.RawMessage `json:"extras,omitempty"`
}

type wireImage struct {
	Uri        string          `json:"uri,omitempty"`
	MimeType   string          `json:"mimeType,omitempty"`
	BufferView *int            `json:"bufferView,omitempty"`
	Name       string          `json:"name,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type wireSampler struct {
	MagFilter  int             `json:"magFilter,omitempty"`
	MinFilter  int             `json:"minFilter,omitempty"`
	WrapS      int             `json:"wrapS,omitempty"`
	WrapT      int             `json:"wrapT,omitempty"`
	Name       string          `json:"name,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type wireTexture struct {
	Sampler    *int            `json:"sampler,omitempty"`
	Source     *int            `json:"source,omitempty"`
	Name       string          `json:"name,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type wireTextureInfo struct {
	Index      int             `json:"index"`
	TexCoord   int             `json:"texCoord,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type wirePbrMetallicRoughness struct {
	BaseColorFactor          *[4]float32      `json:"baseColorFactor,omitempty"`
	BaseColorTexture         *wireTextureInfo `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float32         `json:"metallicFactor,omitempty"`
	RoughnessFactor          *float32         `json:"roughnessFactor,omitempty"`
	MetallicRoughnessTexture *wireTextureInfo `json:"metallicRoughnessTexture,omitempty"`
}

type wireMaterial struct {
	Name                 string                    `json:"name,omitempty"`
	PbrMetallicRoughness *wirePbrMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *wireTextureInfo          `json:"normalTexture,omitempty"`
	OcclusionTexture     *wireTextureInfo          `json:"occlusionTexture,omitempty"`
	EmissiveTexture      *wireTextureInfo          `json:"emissiveTexture,omitempty"`
	EmissiveFactor       *[3]float32               `json:"emissiveFactor,omitempty"`
	AlphaMode            string                    `json:"alphaMode,omitempty"`
	AlphaCutoff          *float32                  `json:"alphaCutoff,omitempty"`
	DoubleSided          bool                      `json:"doubleSided,omitempty"`
	Extensions           map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras               json.RawMessage           `json:"extras,omitempty"`
}

type wirePrimitive struct {
	Attributes map[string]int            `json:"attributes"`
	Indices    *int                      `json:"indices,omitempty"`
	Material   *int                      `json:"material,omitempty"`
	Mode       *int                      `json:"mode,omitempty"`
	Targets    []map[string]int          `json:"targets,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage           `json:"extras,omitempty"`
}

type wireMesh struct {
	Primitives []wirePrimitive `json:"primitives"`
	Weights    []float32       `json:"weights,omitempty"`
	Name       string          `json:"name,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type wireSkin struct {
	InverseBindMatrices *int            `json:"inverseBindMatrices,omitempty"`
	Skeleton            *int            `json:"skeleton,omitempty"`
	Joints              []int           `json:"joints"`
	Name                string          `json:"name,omitempty"`
	Extensions          json.RawMessage `json:"extensions,omitempty"`
	Extras              json.RawMessage `json:"extras,omitempty"`
}

type wireNode struct {
	Camera      *int            `json:"camera,omitempty"`
	Children    []int           `json:"children,omitempty"`
	Skin        *int            `json:"skin,omitempty"`
	Matrix      *[16]float32    `json:"matrix,omitempty"`
	Mesh        *int            `json:"mesh,omitempty"`
	Rotation    *[4]float32     `json:"rotation,omitempty"`
	Scale       *[3]float32     `json:"scale,omitempty"`
	Translation *[3]float32     `json:"translation,omitempty"`
	Weights     []float32       `json:"weights,omitempty"`
	Name        string          `json:"name,omitempty"`
	Extensions  json.RawMessage `json:"extensions,omitempty"`
	Extras      json.RawMessage `json:"extras,omitempty"`
}

type wirePerspective struct {
	AspectRatio *float32 `json:"aspectRatio,omitempty"`
	Yfov        float32  `json:"yfov"`
	Zfar        *float32 `json:"zfar,omitempty"`
	Znear       float32  `json:"znear"`
}

type wireOrthographic struct {
	Xmag  float32 `json:"xmag"`
	Ymag  float32 `json:"ymag"`
	Zfar  float32 `json:"zfar"`
	Znear float32 `json:"znear"`
}

type wireCamera struct {
	Orthographic *wireOrthographic `json:"orthographic,omitempty"`
	Perspective  *wirePerspective  `json:"perspective,omitempty"`
	Type         string            `json:"type"`
	Name         string            `json:"name,omitempty"`
	Extensions   json.RawMessage   `json:"extensions,omitempty"`
	Extras       json.RawMessage   `json:"extras,omitempty"`
}

type wireTarget struct {
	Node *int   `json:"node,omitempty"`
	Path string `json:"path"`
}

type wireChannel struct {
	Sampler    int             `json:"sampler"`
	Target     wireTarget      `json:"target"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

type wireAnimationSampler struct {
	Input         int             `json:"input"`
	Interpolation string          `json:"interpolation,omitempty"`
	Output        int             `json:"output"`
	Extensions    json.RawMessage `json:"extensions,omitempty"`
	Extras        json.RawMessage `json:"extras,omitempty"`
}

type wireAnimation struct {
	Channels   []wireChannel          `json:"channels"`
	Samplers   []wireAnimationSampler `json:"samplers"`
	Name       string                 `json:"name,omitempty"`
	Extensions json.RawMessage        `json:"extensions,omitempty"`
	Extras     json.RawMessage        `json:"extras,omitempty"`
}

type wireScene struct {
	Nodes      []int           `json:"nodes,omitempty"`
	Name       string          `json:"name,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// wireDocument is the root glTF JSON object.
type wireDocument struct {
	ExtensionsUsed     []string          `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string          `json:"extensionsRequired,omitempty"`
	Accessors          []wireAccessor    `json:"accessors,omitempty"`
	Animations         []wireAnimation   `json:"animations,omitempty"`
	Asset              wireAsset         `json:"asset"`
	Buffers            []wireBuffer      `json:"buffers,omitempty"`
	BufferViews        []wireBufferView  `json:"bufferViews,omitempty"`
	Cameras            []wireCamera      `json:"cameras,omitempty"`
	Images             []wireImage       `json:"images,omitempty"`
	Materials          []wireMaterial    `json:"materials,omitempty"`
	Meshes             []wireMesh        `json:"meshes,omitempty"`
	Nodes              []wireNode        `json:"nodes,omitempty"`
	Samplers           []wireSampler     `json:"samplers,omitempty"`
	Scene              *int              `json:"scene,omitempty"`
	Scenes             []wireScene       `json:"scenes,omitempty"`
	Skins              []wireSkin        `json:"skins,omitempty"`
	Textures           []wireTexture     `json:"textures,omitempty"`
	Extensions         json.RawMessage   `json:"extensions,omitempty"`
	Extras             json.RawMessage   `json:"extras,omitempty"`
}

// GLB container constants, ported verbatim from the teacher's
// loader/gltf/gltf.go (magic "glTF", chunk type tags "JSON"/BIN\0).
const (
	glbMagic = 0x46546C67
	glbJSON  = 0x4E4F534A
	glbBIN   = 0x004E4942
)

type glbHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

type glbChunkHeader struct {
	Length uint32
	Type   uint32
}
