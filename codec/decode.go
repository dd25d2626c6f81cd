package codec

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/g3n/gltfedit/accessorio"
	"github.com/g3n/gltfedit/document"
	"github.com/g3n/gltfedit/extension"
	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/ioplatform"
	"github.com/g3n/gltfedit/property"
	"github.com/g3n/gltfedit/proptype"
)

// DecodeJSON reads a .gltf JSON document from path, resolving external
// buffer/image URIs relative to its directory through plat.
func DecodeJSON(path string, plat ioplatform.IOPlatform) (*document.Document, error) {
	raw, err := plat.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode(raw, nil, path, plat)
}

// DecodeJSONReader reads a .gltf JSON document from r. basePath anchors any
// relative external URIs the document references.
func DecodeJSONReader(r io.Reader, basePath string, plat ioplatform.IOPlatform) (*document.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(raw, nil, basePath, plat)
}

// DecodeGLB reads a .glb binary container from path.
func DecodeGLB(path string, plat ioplatform.IOPlatform) (*document.Document, error) {
	raw, err := plat.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeGLBReader(bytes.NewReader(raw), path, plat)
}

// DecodeGLBReader reads a .glb binary container from r, ported from the
// teacher's ParseBinReader (header check + JSON chunk + optional BIN chunk).
func DecodeGLBReader(r io.Reader, basePath string, plat ioplatform.IOPlatform) (*document.Document, error) {
	var header glbHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, &gerr.InvalidContainerError{Reason: "truncated GLB header: " + err.Error()}
	}
	if header.Magic != glbMagic {
		return nil, &gerr.InvalidContainerError{Reason: "bad GLB magic"}
	}
	if header.Version < 2 {
		return nil, &gerr.InvalidContainerError{Reason: "unsupported GLB version"}
	}

	jsonChunk, err := readGLBChunk(r, glbJSON)
	if err != nil {
		return nil, err
	}
	if jsonChunk == nil {
		return nil, &gerr.InvalidContainerError{Reason: "GLB missing required JSON chunk"}
	}

	binChunk, err := readGLBChunk(r, glbBIN)
	if err != nil {
		return nil, err
	}

	return decode(jsonChunk, binChunk, basePath, plat)
}

func readGLBChunk(r io.Reader, wantType uint32) ([]byte, error) {
	var ch glbChunkHeader
	err := binary.Read(r, binary.LittleEndian, &ch)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &gerr.InvalidContainerError{Reason: "truncated GLB chunk header: " + err.Error()}
	}
	if ch.Type != wantType {
		return nil, &gerr.InvalidContainerError{Reason: "unexpected GLB chunk type"}
	}
	data := make([]byte, ch.Length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, &gerr.InvalidContainerError{Reason: "truncated GLB chunk data: " + err.Error()}
	}
	return data, nil
}

// decode drives the dependency-ordered build described in spec.md §4.6:
// Buffer -> Accessor -> Texture -> Material -> (PrimitiveTarget ->
// Primitive ->) Mesh -> Skin -> Node -> Scene -> Animation, with extension
// readers invoked for each Material's extensions once the Material exists.
// Extensions on other objects and unrecognized keys are not read.
func decode(jsonBytes, binChunk []byte, basePath string, plat ioplatform.IOPlatform) (*document.Document, error) {
	var w wireDocument
	if err := json.Unmarshal(jsonBytes, &w); err != nil {
		return nil, err
	}

	doc := document.New(w.Asset.Generator)
	doc.Root().SetAsset(proptype.Asset{
		Version:    w.Asset.Version,
		Generator:  w.Asset.Generator,
		Copyright:  w.Asset.Copyright,
		MinVersion: w.Asset.MinVersion,
	})

	buffers, err := decodeBuffers(w.Buffers, binChunk, basePath, plat)
	if err != nil {
		return nil, err
	}

	accessors, err := decodeAccessors(doc, w, buffers)
	if err != nil {
		return nil, err
	}

	images, err := decodeImages(w.Images, w.BufferViews, buffers, basePath, plat)
	if err != nil {
		return nil, err
	}

	textures, textureInfos, err := decodeTextures(doc, w, images)
	if err != nil {
		return nil, err
	}

	readCtx := &extension.ReadContext{
		Graph: doc.Graph(),
		TextureAt: func(i int) property.Property {
			if i < 0 || i >= len(textures) {
				return nil
			}
			return textures[i]
		},
		AccessorAt: func(i int) property.Property {
			if i < 0 || i >= len(accessors) {
				return nil
			}
			return accessors[i]
		},
	}

	materials, err := decodeMaterials(doc, w, textures, textureInfos, readCtx)
	if err != nil {
		return nil, err
	}

	meshes, err := decodeMeshes(doc, w, accessors, materials)
	if err != nil {
		return nil, err
	}

	cameras := decodeCameras(doc, w)

	nodes := make([]*proptype.Node, len(w.Nodes))
	for i := range w.Nodes {
		nodes[i] = doc.CreateNode()
	}

	skins, err := decodeSkins(doc, w, nodes, accessors)
	if err != nil {
		return nil, err
	}

	if err := wireNodes(w, nodes, meshes, skins, cameras); err != nil {
		return nil, err
	}

	if err := decodeScenes(doc, w, nodes); err != nil {
		return nil, err
	}

	if err := decodeAnimations(doc, w, nodes, accessors); err != nil {
		return nil, err
	}

	return doc, nil
}

func decodeBuffers(wb []wireBuffer, binChunk []byte, basePath string, plat ioplatform.IOPlatform) ([][]byte, error) {
	out := make([][]byte, len(wb))
	for i, b := range wb {
		var data []byte
		var err error
		switch {
		case b.Uri == "":
			data = binChunk
		case isDataURL(b.Uri):
			data, err = loadDataURL(b.Uri)
		default:
			data, err = plat.ReadFile(plat.Resolve(basePath, b.Uri))
		}
		if err != nil {
			return nil, err
		}
		if len(data) < b.ByteLength {
			return nil, &gerr.OutOfRangeError{What: "buffer", Index: i, Limit: b.ByteLength}
		}
		out[i] = data[:b.ByteLength]
	}
	return out, nil
}

// bufferViewBytes resolves one bufferView's raw byte slice directly from
// its buffer, since this module has no standalone BufferView Property
// (spec.md §3 folds it into Accessor.byteOffset/Buffer).
func bufferViewBytes(bv wireBufferView, buffers [][]byte) ([]byte, error) {
	if bv.Buffer < 0 || bv.Buffer >= len(buffers) {
		return nil, &gerr.OutOfRangeError{What: "bufferView.buffer", Index: bv.Buffer, Limit: len(buffers)}
	}
	buf := buffers[bv.Buffer]
	end := bv.ByteOffset + bv.ByteLength
	if bv.ByteOffset < 0 || end > len(buf) {
		return nil, &gerr.OutOfRangeError{What: "bufferView byte range", Index: end, Limit: len(buf)}
	}
	return buf[bv.ByteOffset:end], nil
}

func decodeAccessors(doc *document.Document, w wireDocument, buffers [][]byte) ([]*proptype.Accessor, error) {
	out := make([]*proptype.Accessor, len(w.Accessors))
	for i, wa := range w.Accessors {
		elementType := proptype.ElementType(wa.Type)
		componentType := proptype.ComponentType(wa.ComponentType)
		a := doc.CreateAccessor(elementType, componentType)
		itemSize := elementType.NumComponents()

		if wa.Normalized {
			if err := a.SetNormalized(true); err != nil {
				return nil, err
			}
		}

		base := make([]float32, wa.Count*itemSize)
		if wa.BufferView != nil {
			if *wa.BufferView < 0 || *wa.BufferView >= len(w.BufferViews) {
				return nil, &gerr.OutOfRangeError{What: "accessor.bufferView", Index: *wa.BufferView, Limit: len(w.BufferViews)}
			}
			bv := w.BufferViews[*wa.BufferView]
			data, err := bufferViewBytes(bv, buffers)
			if err != nil {
				return nil, err
			}
			data = data[wa.ByteOffset:]

			compSize := componentType.ByteSize()
			itemBytes := itemSize * compSize
			stride := bv.ByteStride
			if stride == 0 {
				stride = itemBytes
			}
			for e := 0; e < wa.Count; e++ {
				elemStart := e * stride
				for c := 0; c < itemSize; c++ {
					raw := readComponent(data[elemStart+c*compSize:], componentType)
					base[e*itemSize+c] = accessorio.DecodeComponent(componentType, wa.Normalized, raw)
				}
			}
		}
		if err := a.SetArray(base); err != nil {
			return nil, err
		}

		if wa.Sparse != nil {
			sparse, err := decodeSparse(*wa.Sparse, componentType, wa.Normalized, itemSize, w.BufferViews, buffers)
			if err != nil {
				return nil, err
			}
			if err := a.SetSparse(sparse); err != nil {
				return nil, err
			}
		}

		out[i] = a
	}
	return out, nil
}

func decodeSparse(ws wireSparse, baseComponentType proptype.ComponentType, normalized bool, itemSize int, bufferViews []wireBufferView, buffers [][]byte) (*proptype.Sparse, error) {
	idxComponentType := proptype.ComponentType(ws.Indices.ComponentType)
	idxBV := bufferViews[ws.Indices.BufferView]
	idxData, err := bufferViewBytes(idxBV, buffers)
	if err != nil {
		return nil, err
	}
	idxData = idxData[ws.Indices.ByteOffset:]
	idxSize := idxComponentType.ByteSize()
	indices := make([]uint32, ws.Count)
	for i := 0; i < ws.Count; i++ {
		indices[i] = uint32(readComponent(idxData[i*idxSize:], idxComponentType))
	}

	valBV := bufferViews[ws.Values.BufferView]
	valData, err := bufferViewBytes(valBV, buffers)
	if err != nil {
		return nil, err
	}
	valData = valData[ws.Values.ByteOffset:]
	compSize := baseComponentType.ByteSize()
	values := make([]float32, ws.Count*itemSize)
	for e := 0; e < ws.Count; e++ {
		for c := 0; c < itemSize; c++ {
			raw := readComponent(valData[(e*itemSize+c)*compSize:], baseComponentType)
			values[e*itemSize+c] = accessorio.DecodeComponent(baseComponentType, normalized, raw)
		}
	}

	return &proptype.Sparse{Count: ws.Count, Indices: indices, IndexComponent: idxComponentType, Values: values}, nil
}

// readComponent reads one little-endian component's raw bit pattern,
// sign/zero-extended to int64 for DecodeComponent (f32 keeps its raw bits).
func readComponent(b []byte, ct proptype.ComponentType) int64 {
	switch ct {
	case proptype.ComponentI8:
		return int64(int8(b[0]))
	case proptype.ComponentU8:
		return int64(b[0])
	case proptype.ComponentI16:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case proptype.ComponentU16:
		return int64(binary.LittleEndian.Uint16(b))
	case proptype.ComponentU32:
		return int64(binary.LittleEndian.Uint32(b))
	case proptype.ComponentF32:
		return int64(binary.LittleEndian.Uint32(b))
	default:
		return 0
	}
}

type resolvedImage struct {
	uri      string
	mimeType string
	data     []byte
}

func decodeImages(wi []wireImage, bufferViews []wireBufferView, buffers [][]byte, basePath string, plat ioplatform.IOPlatform) ([]resolvedImage, error) {
	out := make([]resolvedImage, len(wi))
	for i, img := range wi {
		r := resolvedImage{mimeType: img.MimeType}
		switch {
		case img.BufferView != nil:
			data, err := bufferViewBytes(bufferViews[*img.BufferView], buffers)
			if err != nil {
				return nil, err
			}
			r.data = data
		case isDataURL(img.Uri):
			data, err := loadDataURL(img.Uri)
			if err != nil {
				return nil, err
			}
			r.data = data
		case img.Uri != "":
			r.uri = img.Uri
		}
		out[i] = r
	}
	return out, nil
}

func decodeTextures(doc *document.Document, w wireDocument, images []resolvedImage) ([]*proptype.Texture, []proptype.TextureInfo, error) {
	textures := make([]*proptype.Texture, len(w.Textures))
	samplerDefaults := make([]proptype.TextureInfo, len(w.Textures))
	for i, wt := range w.Textures {
		tex := doc.CreateTexture()
		if wt.Source != nil {
			if *wt.Source < 0 || *wt.Source >= len(images) {
				return nil, nil, &gerr.OutOfRangeError{What: "texture.source", Index: *wt.Source, Limit: len(images)}
			}
			img := images[*wt.Source]
			var err error
			if img.uri != "" {
				err = tex.SetURI(img.uri)
			} else {
				err = tex.SetImage(img.mimeType, img.data)
			}
			if err != nil {
				return nil, nil, err
			}
		}
		info := proptype.DefaultTextureInfo()
		if wt.Sampler != nil && *wt.Sampler >= 0 && *wt.Sampler < len(w.Samplers) {
			s := w.Samplers[*wt.Sampler]
			info.MagFilter = proptype.FilterMode(s.MagFilter)
			info.MinFilter = proptype.FilterMode(s.MinFilter)
			if s.WrapS != 0 {
				info.WrapS = proptype.WrapMode(s.WrapS)
			}
			if s.WrapT != 0 {
				info.WrapT = proptype.WrapMode(s.WrapT)
			}
		}
		textures[i] = tex
		samplerDefaults[i] = info
	}
	return textures, samplerDefaults, nil
}

func textureInfoFromRef(ref *wireTextureInfo, textures []*proptype.Texture, samplerDefaults []proptype.TextureInfo) (*proptype.Texture, proptype.TextureInfo, error) {
	if ref == nil {
		return nil, proptype.TextureInfo{}, nil
	}
	if ref.Index < 0 || ref.Index >= len(textures) {
		return nil, proptype.TextureInfo{}, &gerr.OutOfRangeError{What: "textureInfo.index", Index: ref.Index, Limit: len(textures)}
	}
	info := samplerDefaults[ref.Index]
	info.TexCoord = ref.TexCoord
	return textures[ref.Index], info, nil
}

func decodeMaterials(doc *document.Document, w wireDocument, textures []*proptype.Texture, samplerDefaults []proptype.TextureInfo, readCtx *extension.ReadContext) ([]*proptype.Material, error) {
	out := make([]*proptype.Material, len(w.Materials))
	for i, wm := range w.Materials {
		m := doc.CreateMaterial()
		if wm.AlphaMode != "" {
			if err := m.SetAlphaMode(proptype.AlphaMode(wm.AlphaMode)); err != nil {
				return nil, err
			}
		}
		if wm.AlphaCutoff != nil && m.AlphaMode() == proptype.AlphaMask {
			if err := m.SetAlphaCutoff(*wm.AlphaCutoff); err != nil {
				return nil, err
			}
		}
		if err := m.SetDoubleSided(wm.DoubleSided); err != nil {
			return nil, err
		}
		if wm.EmissiveFactor != nil {
			if err := m.SetEmissiveFactor(*wm.EmissiveFactor); err != nil {
				return nil, err
			}
		}

		if pbr := wm.PbrMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				if err := m.SetBaseColorFactor(*pbr.BaseColorFactor); err != nil {
					return nil, err
				}
			}
			if pbr.MetallicFactor != nil {
				if err := m.SetMetallicFactor(*pbr.MetallicFactor); err != nil {
					return nil, err
				}
			}
			if pbr.RoughnessFactor != nil {
				if err := m.SetRoughnessFactor(*pbr.RoughnessFactor); err != nil {
					return nil, err
				}
			}
			if err := setMaterialTextureSlot(m, proptype.SlotBaseColor, pbr.BaseColorTexture, textures, samplerDefaults); err != nil {
				return nil, err
			}
			if err := setMaterialTextureSlot(m, proptype.SlotMetallicRoughness, pbr.MetallicRoughnessTexture, textures, samplerDefaults); err != nil {
				return nil, err
			}
		}
		if err := setMaterialTextureSlot(m, proptype.SlotNormal, wm.NormalTexture, textures, samplerDefaults); err != nil {
			return nil, err
		}
		if err := setMaterialTextureSlot(m, proptype.SlotOcclusion, wm.OcclusionTexture, textures, samplerDefaults); err != nil {
			return nil, err
		}
		if err := setMaterialTextureSlot(m, proptype.SlotEmissive, wm.EmissiveTexture, textures, samplerDefaults); err != nil {
			return nil, err
		}

		for name, raw := range wm.Extensions {
			reader, err := doc.Registry().Reader(name)
			if err != nil {
				return nil, err
			}
			ext, err := reader(raw, m, readCtx)
			if err != nil {
				return nil, err
			}
			m.SetExtension(name, ext)
		}

		out[i] = m
	}
	return out, nil
}

func setMaterialTextureSlot(m *proptype.Material, slot string, ref *wireTextureInfo, textures []*proptype.Texture, samplerDefaults []proptype.TextureInfo) error {
	if ref == nil {
		return nil
	}
	tex, info, err := textureInfoFromRef(ref, textures, samplerDefaults)
	if err != nil {
		return err
	}
	return m.SetTexture(slot, tex, info)
}

func decodeMeshes(doc *document.Document, w wireDocument, accessors []*proptype.Accessor, materials []*proptype.Material) ([]*proptype.Mesh, error) {
	out := make([]*proptype.Mesh, len(w.Meshes))
	for i, wm := range w.Meshes {
		mesh := doc.CreateMesh()
		for _, wp := range wm.Primitives {
			prim := doc.CreatePrimitive()
			if wp.Mode != nil {
				if err := prim.SetMode(proptype.PrimitiveMode(*wp.Mode)); err != nil {
					return nil, err
				}
			}
			for semantic, ai := range wp.Attributes {
				if ai < 0 || ai >= len(accessors) {
					return nil, &gerr.OutOfRangeError{What: "primitive attribute accessor", Index: ai, Limit: len(accessors)}
				}
				if err := prim.SetAttribute(semantic, accessors[ai]); err != nil {
					return nil, err
				}
			}
			if wp.Indices != nil {
				if err := prim.SetIndices(accessors[*wp.Indices]); err != nil {
					return nil, err
				}
			}
			if wp.Material != nil {
				if err := prim.SetMaterial(materials[*wp.Material]); err != nil {
					return nil, err
				}
			}
			for _, wt := range wp.Targets {
				target := doc.CreatePrimitiveTarget()
				for semantic, ai := range wt {
					if err := target.SetAttribute(semantic, accessors[ai]); err != nil {
						return nil, err
					}
				}
				if err := prim.AddTarget(target); err != nil {
					return nil, err
				}
			}
			if err := mesh.AddPrimitive(prim); err != nil {
				return nil, err
			}
		}
		out[i] = mesh
	}
	return out, nil
}

func decodeCameras(doc *document.Document, w wireDocument) []*proptype.Camera {
	out := make([]*proptype.Camera, len(w.Cameras))
	for i, wc := range w.Cameras {
		switch {
		case wc.Perspective != nil:
			p := wc.Perspective
			cam := doc.CreatePerspectiveCamera(p.Yfov, p.Znear)
			if p.AspectRatio != nil {
				cam.SetAspectRatio(*p.AspectRatio)
			}
			if p.Zfar != nil {
				cam.SetZFar(*p.Zfar)
			}
			out[i] = cam
		case wc.Orthographic != nil:
			o := wc.Orthographic
			out[i] = doc.CreateOrthographicCamera(o.Xmag, o.Ymag, o.Znear, o.Zfar)
		}
	}
	return out
}

func decodeSkins(doc *document.Document, w wireDocument, nodes []*proptype.Node, accessors []*proptype.Accessor) ([]*proptype.Skin, error) {
	out := make([]*proptype.Skin, len(w.Skins))
	for i, ws := range w.Skins {
		skin := doc.CreateSkin()
		for _, ji := range ws.Joints {
			if ji < 0 || ji >= len(nodes) {
				return nil, &gerr.OutOfRangeError{What: "skin joint node", Index: ji, Limit: len(nodes)}
			}
			if err := skin.AddJoint(nodes[ji]); err != nil {
				return nil, err
			}
		}
		if ws.Skeleton != nil {
			if err := skin.SetSkeleton(nodes[*ws.Skeleton]); err != nil {
				return nil, err
			}
		}
		// Wired after joints so SetInverseBindMatrices's joint-count
		// invariant check sees the full joint list.
		if ws.InverseBindMatrices != nil {
			if *ws.InverseBindMatrices < 0 || *ws.InverseBindMatrices >= len(accessors) {
				return nil, &gerr.OutOfRangeError{What: "skin.inverseBindMatrices", Index: *ws.InverseBindMatrices, Limit: len(accessors)}
			}
			if err := skin.SetInverseBindMatrices(accessors[*ws.InverseBindMatrices]); err != nil {
				return nil, err
			}
		}
		out[i] = skin
	}
	return out, nil
}

func wireNodes(w wireDocument, nodes []*proptype.Node, meshes []*proptype.Mesh, skins []*proptype.Skin, cameras []*proptype.Camera) error {
	for i, wn := range w.Nodes {
		n := nodes[i]
		if wn.Matrix != nil {
			if err := n.SetMatrix(matrixFromArray(*wn.Matrix)); err != nil {
				return err
			}
		} else if wn.Translation != nil || wn.Rotation != nil || wn.Scale != nil {
			t := n.Translation()
			if wn.Translation != nil {
				t = vector3From(*wn.Translation)
			}
			r := n.Rotation()
			if wn.Rotation != nil {
				r = quaternionFrom(*wn.Rotation)
			}
			s := n.Scale()
			if wn.Scale != nil {
				s = vector3From(*wn.Scale)
			}
			if err := n.SetTRS(t, r, s); err != nil {
				return err
			}
		}
		if wn.Mesh != nil {
			if err := n.SetMesh(meshes[*wn.Mesh]); err != nil {
				return err
			}
		}
		if wn.Skin != nil {
			if err := n.SetSkin(skins[*wn.Skin]); err != nil {
				return err
			}
		}
		if wn.Camera != nil {
			if err := n.SetCamera(cameras[*wn.Camera]); err != nil {
				return err
			}
		}
		for _, ci := range wn.Children {
			if err := n.AddChild(nodes[ci]); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeScenes(doc *document.Document, w wireDocument, nodes []*proptype.Node) error {
	for _, ws := range w.Scenes {
		scene := doc.CreateScene()
		for _, ni := range ws.Nodes {
			if err := scene.AddChild(nodes[ni]); err != nil {
				return err
			}
		}
	}
	if w.Scene != nil && *w.Scene >= 0 && *w.Scene < len(doc.Root().Scenes()) {
		if err := doc.Root().SetDefaultScene(doc.Root().Scenes()[*w.Scene]); err != nil {
			return err
		}
	}
	return nil
}

func decodeAnimations(doc *document.Document, w wireDocument, nodes []*proptype.Node, accessors []*proptype.Accessor) error {
	for _, wa := range w.Animations {
		anim := doc.CreateAnimation()
		samplers := make([]*proptype.AnimationSampler, len(wa.Samplers))
		for i, ws := range wa.Samplers {
			s := doc.CreateAnimationSampler()
			if ws.Interpolation != "" {
				if err := s.SetInterpolation(proptype.Interpolation(ws.Interpolation)); err != nil {
					return err
				}
			}
			if err := s.SetInput(accessors[ws.Input]); err != nil {
				return err
			}
			if err := s.SetOutput(accessors[ws.Output]); err != nil {
				return err
			}
			if err := anim.AddSampler(s); err != nil {
				return err
			}
			samplers[i] = s
		}
		for _, wc := range wa.Channels {
			ch := doc.CreateAnimationChannel(proptype.TargetPath(wc.Target.Path))
			if err := ch.SetSampler(samplers[wc.Sampler]); err != nil {
				return err
			}
			if wc.Target.Node != nil {
				if err := ch.SetTargetNode(nodes[*wc.Target.Node]); err != nil {
					return err
				}
			}
			if err := anim.AddChannel(ch); err != nil {
				return err
			}
		}
	}
	return nil
}
