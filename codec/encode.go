package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"

	"github.com/g3n/gltfedit/accessorio"
	"github.com/g3n/gltfedit/document"
	"github.com/g3n/gltfedit/extension"
	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/ioplatform"
	"github.com/g3n/gltfedit/property"
	"github.com/g3n/gltfedit/proptype"
)

// indexer assigns stable wire indices to Properties in Root list order and
// resolves a Property back to its index, used for every edge->index
// translation on the write path.
type indexer struct {
	index map[property.Property]int
	order []property.Property
}

func newIndexer(items []property.Property) *indexer {
	ix := &indexer{index: make(map[property.Property]int, len(items)), order: items}
	for i, p := range items {
		ix.index[p] = i
	}
	return ix
}

func (ix *indexer) of(p property.Property) (int, bool) {
	if p == nil {
		return 0, false
	}
	i, ok := ix.index[p]
	return i, ok
}

// EncodeJSON serializes doc to a standalone .gltf JSON document and writes
// it through plat. Accessor bytes are embedded as one base64 data: URI
// buffer and inline texture images as data: URI images; no separate
// buffer or image files are written.
func EncodeJSON(doc *document.Document, path string, plat ioplatform.IOPlatform) error {
	w, _, err := encode(doc, false)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return plat.WriteFile(path, raw)
}

// EncodeGLB serializes doc to a single .glb binary container at path.
func EncodeGLB(doc *document.Document, path string, plat ioplatform.IOPlatform) error {
	raw, err := EncodeGLBBytes(doc)
	if err != nil {
		return err
	}
	return plat.WriteFile(path, raw)
}

// EncodeGLBBytes serializes doc to an in-memory .glb container, ported
// from the teacher's intent in ParseBinReader run in reverse: JSON chunk
// first, then one padded BIN chunk holding every buffer's bytes.
func EncodeGLBBytes(doc *document.Document) ([]byte, error) {
	w, bin, err := encode(doc, true)
	if err != nil {
		return nil, err
	}
	jsonBytes, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	jsonBytes = padChunk(jsonBytes, ' ')
	bin = padChunk(bin, 0)

	var buf bytes.Buffer
	total := uint32(12 + 8 + len(jsonBytes))
	if len(bin) > 0 {
		total += uint32(8 + len(bin))
	}
	binary.Write(&buf, binary.LittleEndian, glbHeader{Magic: glbMagic, Version: 2, Length: total})
	binary.Write(&buf, binary.LittleEndian, glbChunkHeader{Length: uint32(len(jsonBytes)), Type: glbJSON})
	buf.Write(jsonBytes)
	if len(bin) > 0 {
		binary.Write(&buf, binary.LittleEndian, glbChunkHeader{Length: uint32(len(bin)), Type: glbBIN})
		buf.Write(bin)
	}
	return buf.Bytes(), nil
}

func padChunk(data []byte, pad byte) []byte {
	rem := len(data) % 4
	if rem == 0 {
		return data
	}
	return append(data, bytes.Repeat([]byte{pad}, 4-rem)...)
}

// bufferViewUsage categorizes an accessor's byte range for bufferView
// grouping, per which kind of edge references it (spec.md §4.6 step 2,
// GLOSSARY "Accessor usage category") rather than its element/component
// type: a Primitive's index edge means usageIndex, an attribute or morph
// target edge means usageVertex, and an accessor reached by neither
// (inverse-bind-matrices, animation sampler input/output, ...) is
// usageOther. The iota order below doubles as bufferLayout's required
// view emission order (index, vertex, other).
type bufferViewUsage int

const (
	usageIndex bufferViewUsage = iota
	usageVertex
	usageOther
	usageCount
)

// encode builds the wire document plus, when glb is true, a single
// consolidated BIN chunk. When glb is false, buffers without a URI are
// embedded as base64 data: URIs instead.
func encode(doc *document.Document, glb bool) (*wireDocument, []byte, error) {
	root := doc.Root()

	accessorItems := toProperties(root.Accessors())
	textureItems := toProperties(root.Textures())
	materialItems := toProperties(root.Materials())
	nodeItems := toProperties(root.Nodes())
	meshItems := toProperties(root.Meshes())
	skinItems := toProperties(root.Skins())
	sceneItems := toProperties(root.Scenes())

	accessorIx := newIndexer(accessorItems)
	textureIx := newIndexer(textureItems)
	nodeIx := newIndexer(nodeItems)
	meshIx := newIndexer(meshItems)
	skinIx := newIndexer(skinItems)

	writeCtx := &extension.WriteContext{
		IndexOfTexture:  textureIx.of,
		IndexOfAccessor: accessorIx.of,
	}

	// Consolidate every accessor's bytes into one blob written as wire
	// buffer 0 in both modes (the BIN chunk in GLB mode, a data: URI in
	// JSON mode; Buffer Properties and their URIs are not written) and lay
	// out bufferViews over it.
	w := &wireDocument{
		Asset: wireAsset{
			Version:    root.Asset().Version,
			Generator:  root.Asset().Generator,
			Copyright:  root.Asset().Copyright,
			MinVersion: root.Asset().MinVersion,
		},
	}

	usages, err := accessorUsages(root, accessorIx)
	if err != nil {
		return nil, nil, err
	}

	layout := newBufferLayout()
	placements := make([]struct{ viewIdx, byteOffset int }, len(accessorItems))

	var groups [usageCount][]int
	for i, u := range usages {
		groups[u] = append(groups[u], i)
	}
	for u := bufferViewUsage(0); u < usageCount; u++ {
		idxs := groups[u]
		if len(idxs) == 0 {
			continue
		}
		datas := make([][]byte, len(idxs))
		for j, i := range idxs {
			datas[j] = encodedAccessorBytes(accessorItems[i].(*proptype.Accessor))
		}
		viewIdx, offsets := layout.placeGroup(u, datas)
		for j, i := range idxs {
			placements[i] = struct{ viewIdx, byteOffset int }{viewIdx, offsets[j]}
		}
	}

	for i, ap := range accessorItems {
		a := ap.(*proptype.Accessor)
		p := placements[i]
		w.Accessors = append(w.Accessors, encodeAccessor(a, p.viewIdx, p.byteOffset))
	}

	w.BufferViews = layout.wireBufferViews()
	if blob := layout.bytes(); len(blob) > 0 {
		wb := wireBuffer{ByteLength: len(blob)}
		if !glb {
			wb.Uri = dataURLPrefix + "application/octet-stream;base64," + base64.StdEncoding.EncodeToString(blob)
		}
		w.Buffers = []wireBuffer{wb}
	}

	for _, tp := range textureItems {
		t := tp.(*proptype.Texture)
		wt := wireTexture{}
		if t.URI() != "" || t.MimeType() != "" {
			img := wireImage{Uri: t.URI(), MimeType: t.MimeType()}
			if t.URI() == "" && len(t.Data()) > 0 {
				img.Uri = dataURLPrefix + t.MimeType() + ";base64," + base64.StdEncoding.EncodeToString(t.Data())
			}
			imgIdx := len(w.Images)
			w.Images = append(w.Images, img)
			wt.Source = intPtr(imgIdx)
		}
		w.Textures = append(w.Textures, wt)
	}

	samplerOf := map[int]proptype.TextureInfo{}
	for _, mp := range materialItems {
		m := mp.(*proptype.Material)
		wm := wireMaterial{AlphaMode: string(m.AlphaMode()), DoubleSided: m.DoubleSided()}
		if m.AlphaMode() == proptype.AlphaMask {
			cutoff := m.AlphaCutoff()
			wm.AlphaCutoff = &cutoff
		}
		ef := m.EmissiveFactor()
		if ef != [3]float32{0, 0, 0} {
			wm.EmissiveFactor = &ef
		}

		pbr := &wirePbrMetallicRoughness{}
		bcf := m.BaseColorFactor()
		if bcf != [4]float32{1, 1, 1, 1} {
			pbr.BaseColorFactor = &bcf
		}
		if mf := m.MetallicFactor(); mf != 1 {
			pbr.MetallicFactor = &mf
		}
		if rf := m.RoughnessFactor(); rf != 1 {
			pbr.RoughnessFactor = &rf
		}
		pbr.BaseColorTexture = encodeTextureSlot(m, proptype.SlotBaseColor, textureIx, samplerOf)
		pbr.MetallicRoughnessTexture = encodeTextureSlot(m, proptype.SlotMetallicRoughness, textureIx, samplerOf)
		if *pbr != (wirePbrMetallicRoughness{}) {
			wm.PbrMetallicRoughness = pbr
		}

		wm.NormalTexture = encodeTextureSlot(m, proptype.SlotNormal, textureIx, samplerOf)
		wm.OcclusionTexture = encodeTextureSlot(m, proptype.SlotOcclusion, textureIx, samplerOf)
		wm.EmissiveTexture = encodeTextureSlot(m, proptype.SlotEmissive, textureIx, samplerOf)

		for _, name := range m.ExtensionNames() {
			ext := m.GetExtension(name)
			writer, err := doc.Registry().Writer(name)
			if err != nil {
				return nil, nil, err
			}
			raw, err := writer(ext, writeCtx)
			if err != nil {
				return nil, nil, err
			}
			if wm.Extensions == nil {
				wm.Extensions = map[string]json.RawMessage{}
			}
			wm.Extensions[name] = raw
		}

		w.Materials = append(w.Materials, wm)
	}

	// One wireSampler per texture that's actually referenced, since the
	// wire format ties sampler state to the Texture while this module's
	// TextureInfo lives on the referencing edge; the first reference
	// encountered above wins.
	for i := range w.Textures {
		info, ok := samplerOf[i]
		if !ok {
			continue
		}
		sIdx := len(w.Samplers)
		w.Samplers = append(w.Samplers, wireSampler{
			MagFilter: int(info.MagFilter), MinFilter: int(info.MinFilter),
			WrapS: int(info.WrapS), WrapT: int(info.WrapT),
		})
		w.Textures[i].Sampler = intPtr(sIdx)
	}

	materialIx := newIndexer(materialItems)
	for _, mp := range meshItems {
		mesh := mp.(*proptype.Mesh)
		wm := wireMesh{}
		for _, p := range mesh.Primitives() {
			wp := wirePrimitive{Attributes: map[string]int{}}
			for _, semantic := range p.Semantics() {
				idx, _ := accessorIx.of(p.Attribute(semantic))
				wp.Attributes[semantic] = idx
			}
			if idxAcc := p.Indices(); idxAcc != nil {
				i, _ := accessorIx.of(idxAcc)
				wp.Indices = intPtr(i)
			}
			if mat := p.Material(); mat != nil {
				i, _ := materialIx.of(mat)
				wp.Material = intPtr(i)
			}
			mode := int(p.Mode())
			wp.Mode = &mode
			for _, t := range p.Targets() {
				wt := map[string]int{}
				for _, semantic := range t.Semantics() {
					i, _ := accessorIx.of(t.Attribute(semantic))
					wt[semantic] = i
				}
				wp.Targets = append(wp.Targets, wt)
			}
			wm.Primitives = append(wm.Primitives, wp)
		}
		w.Meshes = append(w.Meshes, wm)
	}

	_, cameraIx := encodeCameras(root, &w.Cameras)

	for _, sp := range skinItems {
		s := sp.(*proptype.Skin)
		ws := wireSkin{}
		for _, j := range s.Joints() {
			i, _ := nodeIx.of(j)
			ws.Joints = append(ws.Joints, i)
		}
		if sk := s.Skeleton(); sk != nil {
			i, _ := nodeIx.of(sk)
			ws.Skeleton = intPtr(i)
		}
		if ibm := s.InverseBindMatrices(); ibm != nil {
			i, _ := accessorIx.of(ibm)
			ws.InverseBindMatrices = intPtr(i)
		}
		w.Skins = append(w.Skins, ws)
	}

	for _, np := range nodeItems {
		n := np.(*proptype.Node)
		wn := wireNode{}
		if m := n.Matrix(); m != nil {
			arr := matrixToArray(*m)
			wn.Matrix = &arr
		} else {
			t, r, s := vector3ToArray(n.Translation()), quaternionToArray(n.Rotation()), vector3ToArray(n.Scale())
			if t != [3]float32{0, 0, 0} {
				wn.Translation = &t
			}
			if r != [4]float32{0, 0, 0, 1} {
				wn.Rotation = &r
			}
			if s != [3]float32{1, 1, 1} {
				wn.Scale = &s
			}
		}
		if mesh := n.Mesh(); mesh != nil {
			i, _ := meshIx.of(mesh)
			wn.Mesh = intPtr(i)
		}
		if skin := n.Skin(); skin != nil {
			i, _ := skinIx.of(skin)
			wn.Skin = intPtr(i)
		}
		if cam := n.Camera(); cam != nil {
			i, _ := cameraIx.of(cam)
			wn.Camera = intPtr(i)
		}
		for _, c := range n.Children() {
			i, _ := nodeIx.of(c)
			wn.Children = append(wn.Children, i)
		}
		w.Nodes = append(w.Nodes, wn)
	}

	sceneIx := newIndexer(sceneItems)
	for _, scp := range sceneItems {
		sc := scp.(*proptype.Scene)
		ws := wireScene{}
		for _, n := range sc.Children() {
			i, _ := nodeIx.of(n)
			ws.Nodes = append(ws.Nodes, i)
		}
		w.Scenes = append(w.Scenes, ws)
	}
	if ds := root.DefaultScene(); ds != nil {
		i, _ := sceneIx.of(ds)
		w.Scene = intPtr(i)
	}

	samplerIx := map[*proptype.AnimationSampler]int{}
	for _, ap := range root.Animations() {
		wa := wireAnimation{}
		for si, s := range ap.Samplers() {
			input, _ := accessorIx.of(s.Input())
			output, _ := accessorIx.of(s.Output())
			wa.Samplers = append(wa.Samplers, wireAnimationSampler{
				Input: input, Output: output, Interpolation: string(s.Interpolation()),
			})
			samplerIx[s] = si
		}
		for _, ch := range ap.Channels() {
			samplerIdx := 0
			if s := ch.Sampler(); s != nil {
				samplerIdx = samplerIx[s]
			}
			wc := wireChannel{Sampler: samplerIdx, Target: wireTarget{Path: string(ch.TargetPath())}}
			if tn := ch.TargetNode(); tn != nil {
				i, _ := nodeIx.of(tn)
				wc.Target.Node = intPtr(i)
			}
			wa.Channels = append(wa.Channels, wc)
		}
		w.Animations = append(w.Animations, wa)
	}

	var bin []byte
	if glb {
		bin = layout.bytes()
	}
	return w, bin, nil
}

func toProperties[T property.Property](items []T) []property.Property {
	out := make([]property.Property, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func intPtr(i int) *int { return &i }

func encodeCameras(root *proptype.Root, out *[]wireCamera) ([]property.Property, *indexer) {
	var items []property.Property
	// Cameras are discovered through Nodes since Root has no camera list.
	seen := map[*proptype.Camera]bool{}
	for _, n := range root.Nodes() {
		if c := n.Camera(); c != nil && !seen[c] {
			seen[c] = true
			items = append(items, c)
		}
	}
	for _, cp := range items {
		c := cp.(*proptype.Camera)
		wc := wireCamera{Type: string(c.Type())}
		if c.Type() == proptype.CameraPerspective {
			p := &wirePerspective{Yfov: c.YFov(), Znear: c.ZNear()}
			if ar := c.AspectRatio(); ar != 0 {
				p.AspectRatio = &ar
			}
			if zf := c.ZFar(); zf != 0 {
				p.Zfar = &zf
			}
			wc.Perspective = p
		} else {
			wc.Orthographic = &wireOrthographic{Xmag: c.XMag(), Ymag: c.YMag(), Znear: c.ZNear(), Zfar: c.ZFar()}
		}
		*out = append(*out, wc)
	}
	return items, newIndexer(items)
}

// encodedAccessorBytes returns the little-endian storage-space encoding
// of a's dense base array (sparse substitutions are re-proposed, not
// baked in, matching the materialize-on-read/compact-on-write split).
func encodedAccessorBytes(a *proptype.Accessor) []byte {
	compSize := a.ComponentType().ByteSize()
	data := a.Array()
	out := make([]byte, len(data)*compSize)
	for i, f := range data {
		raw := accessorio.EncodeComponent(a.ComponentType(), a.Normalized(), f)
		writeComponent(out[i*compSize:], a.ComponentType(), raw)
	}
	return out
}

func writeComponent(b []byte, ct proptype.ComponentType, raw int64) {
	switch ct {
	case proptype.ComponentI8, proptype.ComponentU8:
		b[0] = byte(raw)
	case proptype.ComponentI16, proptype.ComponentU16:
		binary.LittleEndian.PutUint16(b, uint16(raw))
	case proptype.ComponentU32, proptype.ComponentF32:
		binary.LittleEndian.PutUint32(b, uint32(raw))
	}
}

// accessorUsages categorizes every accessor in accessorIx.order by how
// it is referenced from the scene graph (spec.md §4.6 step 2): a
// Primitive's index edge means usageIndex, an attribute or morph-target
// edge means usageVertex, and an accessor reached by neither edge kind
// (inverse-bind-matrices, animation sampler input/output, an orphaned
// accessor) is usageOther. An accessor reached by both an index edge
// and a vertex edge is a GLOSSARY-defined invariant violation.
func accessorUsages(root *proptype.Root, accessorIx *indexer) ([]bufferViewUsage, error) {
	usage := make([]bufferViewUsage, len(accessorIx.order))
	assigned := make([]bool, len(usage))

	assign := func(a *proptype.Accessor, u bufferViewUsage) error {
		if a == nil {
			return nil
		}
		i, ok := accessorIx.of(a)
		if !ok {
			return nil
		}
		if assigned[i] && usage[i] != u {
			return &gerr.InvariantViolation{PropertyType: "Accessor", Reason: "accessor is referenced as both an index and a vertex attribute"}
		}
		usage[i] = u
		assigned[i] = true
		return nil
	}

	for _, m := range root.Meshes() {
		for _, p := range m.Primitives() {
			if err := assign(p.Indices(), usageIndex); err != nil {
				return nil, err
			}
			for _, semantic := range p.Semantics() {
				if err := assign(p.Attribute(semantic), usageVertex); err != nil {
					return nil, err
				}
			}
			for _, t := range p.Targets() {
				for _, semantic := range t.Semantics() {
					if err := assign(t.Attribute(semantic), usageVertex); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	for i := range usage {
		if !assigned[i] {
			usage[i] = usageOther
		}
	}
	return usage, nil
}

func encodeAccessor(a *proptype.Accessor, bvIdx, byteOffset int) wireAccessor {
	min, max := accessorio.GetMinMaxRaw(a)
	wa := wireAccessor{
		BufferView:    intPtr(bvIdx),
		ByteOffset:    byteOffset,
		ComponentType: int(a.ComponentType()),
		Normalized:    a.Normalized(),
		Count:         a.Count(),
		Type:          string(a.ElementType()),
	}
	wa.Min = append(wa.Min, min...)
	wa.Max = append(wa.Max, max...)
	return wa
}

func encodeTextureSlot(m *proptype.Material, slot string, textureIx *indexer, samplerOf map[int]proptype.TextureInfo) *wireTextureInfo {
	tex, info := m.Texture(slot)
	if tex == nil {
		return nil
	}
	i, _ := textureIx.of(tex)
	if _, exists := samplerOf[i]; !exists {
		samplerOf[i] = info
	}
	return &wireTextureInfo{Index: i, TexCoord: info.TexCoord}
}

