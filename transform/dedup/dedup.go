// Package dedup implements the "dedup" transform from spec.md §4.7/§8
// scenario 2: collapse structurally-identical Properties of the selected
// types down to one survivor, repointing every reference at it.
//
// Grounded on no direct teacher ancestor (g3n's loader only ever reads a
// glTF document once and never needs to deduplicate it); built directly
// against property.Hash/property.Equals (bucket-then-verify, the same
// shape as Go's own map implementation uses for collision handling) and
// graphutil.SwapDeep for the repointing step.
package dedup

import (
	"github.com/g3n/gltfedit/document"
	"github.com/g3n/gltfedit/graphutil"
	"github.com/g3n/gltfedit/property"
	"github.com/g3n/gltfedit/proptype"
)

// PropertyType names one of the property collections dedup knows how to
// compare and collapse.
type PropertyType string

const (
	TypeAccessor PropertyType = "ACCESSOR"
	TypeMaterial PropertyType = "MATERIAL"
	TypeTexture  PropertyType = "TEXTURE"
)

// Options configures a dedup pass. PropertyTypes defaults to
// []PropertyType{TypeAccessor}, matching spec.md §8 scenario 2.
type Options struct {
	PropertyTypes []PropertyType
}

// DefaultOptions returns dedup's documented defaults (spec.md §4.7
// requires every transform with options to document them).
func DefaultOptions() Options {
	return Options{PropertyTypes: []PropertyType{TypeAccessor}}
}

// withDefaults fills in any unset field of opts from DefaultOptions,
// the dedup-specific instance of the shallow-merge spec.md §4.7
// describes generically as document.WithDefaults.
func withDefaults(opts Options) Options {
	if len(opts.PropertyTypes) == 0 {
		opts.PropertyTypes = DefaultOptions().PropertyTypes
	}
	return opts
}

// New builds the "dedup" Transform. Running it twice in a row is a no-op
// the second time (spec.md §8's "dedup ∘ dedup ≡ dedup" law): once every
// duplicate in a bucket has been collapsed to its survivor, a second pass
// finds single-element buckets everywhere and swaps/disposes nothing.
func New(opts Options) document.Transform {
	opts = withDefaults(opts)
	return document.Transform{
		Name: "dedup",
		Run: func(d *document.Document, ctx *document.TransformContext) error {
			for _, pt := range opts.PropertyTypes {
				if err := dedupType(d, pt); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func dedupType(d *document.Document, pt PropertyType) error {
	items := itemsOf(d.Root(), pt)
	if len(items) < 2 {
		return nil
	}

	cache := map[property.Property]uint32{}
	buckets := map[uint32][]int{}
	for i, p := range items {
		h := property.Hash(p, nil, cache)
		buckets[h] = append(buckets[h], i)
	}

	disposed := make([]bool, len(items))
	for _, idxs := range buckets {
		for i := 0; i < len(idxs); i++ {
			if disposed[idxs[i]] {
				continue
			}
			survivor := items[idxs[i]]
			for j := i + 1; j < len(idxs); j++ {
				if disposed[idxs[j]] {
					continue
				}
				candidate := items[idxs[j]]
				if !property.Equals(survivor, candidate, nil) {
					continue
				}
				// Drop Root's own ownership edge to candidate first, so
				// the SwapDeep sweep below (which also visits Root)
				// doesn't repoint it into a second "accessors"/
				// "materials"/"textures" edge aimed at survivor.
				removeFromRoot(d.Root(), pt, candidate)
				if err := graphutil.SwapDeep(d.Root(), candidate, survivor); err != nil {
					return err
				}
				candidate.Dispose()
				disposed[idxs[j]] = true
			}
		}
	}
	return nil
}

func removeFromRoot(root *proptype.Root, pt PropertyType, p property.Property) {
	switch pt {
	case TypeAccessor:
		root.RemoveAccessor(p.(*proptype.Accessor))
	case TypeMaterial:
		root.RemoveMaterial(p.(*proptype.Material))
	case TypeTexture:
		root.RemoveTexture(p.(*proptype.Texture))
	}
}

func itemsOf(root *proptype.Root, pt PropertyType) []property.Property {
	switch pt {
	case TypeAccessor:
		src := root.Accessors()
		out := make([]property.Property, len(src))
		for i, a := range src {
			out[i] = a
		}
		return out
	case TypeMaterial:
		src := root.Materials()
		out := make([]property.Property, len(src))
		for i, m := range src {
			out[i] = m
		}
		return out
	case TypeTexture:
		src := root.Textures()
		out := make([]property.Property, len(src))
		for i, t := range src {
			out[i] = t
		}
		return out
	default:
		return nil
	}
}
