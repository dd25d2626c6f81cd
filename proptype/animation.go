package proptype

import (
	"github.com/g3n/gltfedit/gerr"
	"github.com/g3n/gltfedit/graph"
	"github.com/g3n/gltfedit/property"
)

// AnimationSampler maps an input (time) Accessor to an output (value)
// Accessor under an interpolation mode.
type AnimationSampler struct {
	property.Base
	interpolation Interpolation
}

// NewAnimationSampler constructs an AnimationSampler with LINEAR
// interpolation, registered under g.
func NewAnimationSampler(g *graph.Graph) *AnimationSampler {
	s := &AnimationSampler{interpolation: InterpLinear}
	s.Init(g, s, "AnimationSampler")
	return s
}

func (s *AnimationSampler) Interpolation() Interpolation { return s.interpolation }

func (s *AnimationSampler) SetInterpolation(mode Interpolation) error {
	if err := s.RequireLive(); err != nil {
		return err
	}
	s.interpolation = mode
	return nil
}

// SetInput connects the input (keyframe time) Accessor, which per
// spec.md §3 must be SCALAR f32.
func (s *AnimationSampler) SetInput(acc *Accessor) error {
	if err := s.RequireLive(); err != nil {
		return err
	}
	if acc != nil && (acc.ElementType() != TypeScalar || acc.ComponentType() != ComponentF32) {
		return &gerr.InvariantViolation{PropertyType: "AnimationSampler", Reason: "input accessor must be SCALAR f32"}
	}
	return s.setSingleAccessor("input", acc)
}

func (s *AnimationSampler) Input() *Accessor { return s.singleAccessor("input") }

func (s *AnimationSampler) SetOutput(acc *Accessor) error {
	if err := s.RequireLive(); err != nil {
		return err
	}
	return s.setSingleAccessor("output", acc)
}

func (s *AnimationSampler) Output() *Accessor { return s.singleAccessor("output") }

func (s *AnimationSampler) setSingleAccessor(name string, acc *Accessor) error {
	g := s.Graph()
	for _, e := range g.ListChildEdges(s) {
		if e.Name == name {
			g.Disconnect(e.Handle)
		}
	}
	if acc != nil {
		if _, err := g.Connect(s, acc, name, nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *AnimationSampler) singleAccessor(name string) *Accessor {
	for _, e := range s.Graph().ListChildEdges(s) {
		if e.Name == name {
			if a, ok := e.Child.(*Accessor); ok {
				return a
			}
		}
	}
	return nil
}

func (s *AnimationSampler) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{
		{Name: "input", Kind: property.SingleEdge},
		{Name: "output", Kind: property.SingleEdge},
	}
}

func (s *AnimationSampler) EqualAttrs(other property.Property) bool {
	o, ok := other.(*AnimationSampler)
	return ok && s.interpolation == o.interpolation
}

func (s *AnimationSampler) CloneAttrs(dst property.Property) {
	dst.(*AnimationSampler).interpolation = s.interpolation
}

func (s *AnimationSampler) HashAttrs() uint32 { return fnvString(string(s.interpolation)) }

func fnvString(v string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(v); i++ {
		h = (h ^ uint32(v[i])) * 16777619
	}
	return h
}

// AnimationChannel drives a Node's target property from an
// AnimationSampler.
type AnimationChannel struct {
	property.Base
	targetPath TargetPath
}

// NewAnimationChannel constructs an AnimationChannel targeting path,
// registered under g.
func NewAnimationChannel(g *graph.Graph, path TargetPath) *AnimationChannel {
	c := &AnimationChannel{targetPath: path}
	c.Init(g, c, "AnimationChannel")
	return c
}

func (c *AnimationChannel) TargetPath() TargetPath { return c.targetPath }

func (c *AnimationChannel) SetSampler(s *AnimationSampler) error {
	if err := c.RequireLive(); err != nil {
		return err
	}
	g := c.Graph()
	for _, e := range g.ListChildEdges(c) {
		if e.Name == "sampler" {
			g.Disconnect(e.Handle)
		}
	}
	if s != nil {
		if _, err := g.Connect(c, s, "sampler", nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (c *AnimationChannel) Sampler() *AnimationSampler {
	for _, e := range c.Graph().ListChildEdges(c) {
		if e.Name == "sampler" {
			if s, ok := e.Child.(*AnimationSampler); ok {
				return s
			}
		}
	}
	return nil
}

func (c *AnimationChannel) SetTargetNode(n *Node) error {
	if err := c.RequireLive(); err != nil {
		return err
	}
	g := c.Graph()
	for _, e := range g.ListChildEdges(c) {
		if e.Name == "target" {
			g.Disconnect(e.Handle)
		}
	}
	if n != nil {
		if _, err := g.Connect(c, n, "target", nil, false); err != nil {
			return err
		}
	}
	return nil
}

func (c *AnimationChannel) TargetNode() *Node {
	for _, e := range c.Graph().ListChildEdges(c) {
		if e.Name == "target" {
			if n, ok := e.Child.(*Node); ok {
				return n
			}
		}
	}
	return nil
}

func (c *AnimationChannel) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{
		{Name: "sampler", Kind: property.SingleEdge},
		{Name: "target", Kind: property.SingleEdge},
	}
}

func (c *AnimationChannel) EqualAttrs(other property.Property) bool {
	o, ok := other.(*AnimationChannel)
	return ok && c.targetPath == o.targetPath
}

func (c *AnimationChannel) CloneAttrs(dst property.Property) {
	dst.(*AnimationChannel).targetPath = c.targetPath
}

func (c *AnimationChannel) HashAttrs() uint32 { return fnvString(string(c.targetPath)) }

// Animation owns an ordered list of AnimationSamplers and
// AnimationChannels. Per spec.md §3's invariant, every channel's sampler
// must already be in this animation's own sampler list.
type Animation struct {
	property.Base
}

// NewAnimation constructs an empty Animation registered under g.
func NewAnimation(g *graph.Graph) *Animation {
	a := &Animation{}
	a.Init(g, a, "Animation")
	return a
}

func (a *Animation) AddSampler(s *AnimationSampler) error {
	if err := a.RequireLive(); err != nil {
		return err
	}
	_, err := a.Graph().Connect(a, s, "samplers", nil, false)
	return err
}

func (a *Animation) Samplers() []*AnimationSampler {
	var out []*AnimationSampler
	for _, e := range a.Graph().ListChildEdges(a) {
		if e.Name == "samplers" {
			if s, ok := e.Child.(*AnimationSampler); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// AddChannel appends channel, rejecting it with gerr.InvariantViolation
// if its sampler is not already one of this Animation's own samplers.
func (a *Animation) AddChannel(channel *AnimationChannel) error {
	if err := a.RequireLive(); err != nil {
		return err
	}
	sampler := channel.Sampler()
	if sampler != nil {
		owned := false
		for _, s := range a.Samplers() {
			if s == sampler {
				owned = true
				break
			}
		}
		if !owned {
			return &gerr.InvariantViolation{PropertyType: "Animation", Reason: "channel's sampler must be in this animation's sampler list"}
		}
	}
	_, err := a.Graph().Connect(a, channel, "channels", nil, false)
	return err
}

func (a *Animation) Channels() []*AnimationChannel {
	var out []*AnimationChannel
	for _, e := range a.Graph().ListChildEdges(a) {
		if e.Name == "channels" {
			if c, ok := e.Child.(*AnimationChannel); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func (a *Animation) EdgeFields() []property.EdgeFieldSpec {
	return []property.EdgeFieldSpec{
		{Name: "samplers", Kind: property.OrderedList},
		{Name: "channels", Kind: property.OrderedList},
	}
}

func (a *Animation) EqualAttrs(other property.Property) bool {
	_, ok := other.(*Animation)
	return ok
}

func (a *Animation) CloneAttrs(property.Property) {}

func (a *Animation) HashAttrs() uint32 { return 0 }
