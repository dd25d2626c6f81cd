package document

import "fmt"

// Transform is a named mutation over a Document, threaded through
// Document.Transform with a TransformContext recording the call stack so
// nested transforms can detect and skip redundant downstream work (spec.md
// §4.7). Name identifies the transform for IsTransformPending checks made
// both by itself (as "self") and by other transforms further down the
// pipeline.
type Transform struct {
	Name string
	Run  func(d *Document, ctx *TransformContext) error
}

// TransformContext carries the running stack of transform names across a
// Document.Transform call, including into any transforms it recursively
// invokes via nested Document.Transform calls.
type TransformContext struct {
	Stack []string
}

// IsTransformPending reports whether name appears anywhere in ctx's stack
// above the caller (i.e. an ancestor transform already scheduled to run
// name), letting a transform elide a cleanup step it knows an outer
// transform will perform — e.g. "dedup" skipping its own prune pass when
// invoked from inside "prune" itself.
func IsTransformPending(ctx *TransformContext, self, name string) bool {
	selfIdx := -1
	for i, n := range ctx.Stack {
		if n == self {
			selfIdx = i
		}
	}
	for i, n := range ctx.Stack {
		if i != selfIdx && n == name {
			return true
		}
	}
	return false
}

// Transform applies each of pipeline in order against a fresh top-level
// TransformContext. Transforms that need to recurse call
// d.TransformWithContext so the stack (and IsTransformPending) sees the
// full nesting.
func (d *Document) Transform(pipeline ...Transform) error {
	return d.TransformWithContext(&TransformContext{}, pipeline...)
}

// TransformWithContext runs pipeline against an existing context,
// pushing and popping each transform's own name around its Run call.
func (d *Document) TransformWithContext(ctx *TransformContext, pipeline ...Transform) error {
	for _, t := range pipeline {
		ctx.Stack = append(ctx.Stack, t.Name)
		err := t.Run(d, ctx)
		ctx.Stack = ctx.Stack[:len(ctx.Stack)-1]
		if err != nil {
			return fmt.Errorf("transform %s: %w", t.Name, err)
		}
	}
	return nil
}

// WithDefaults shallow-merges overrides onto a copy of defaults: any key
// present in overrides replaces the default, every other default key is
// kept. Both maps are left untouched.
func WithDefaults(defaults, overrides map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
