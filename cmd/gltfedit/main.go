// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gltfedit loads a glTF/GLB asset, optionally runs a named
// transform pipeline described by a YAML manifest, and writes the
// result back out, in whichever of the two container forms the output
// path's extension selects.
//
// Ported from the teacher's hellog3n, the minimum example program
// wiring the library up into a runnable binary; this command keeps
// that "one main, flags in, library calls out" shape but swaps the
// window/render loop for a load -> transform -> save pipeline.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/g3n/gltfedit/codec"
	"github.com/g3n/gltfedit/config"
	"github.com/g3n/gltfedit/document"
	"github.com/g3n/gltfedit/glog"
	"github.com/g3n/gltfedit/ioplatform"
	"github.com/g3n/gltfedit/transform/dedup"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gltfedit:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("gltfedit", flag.ContinueOnError)
	in := fs.String("in", "", "input .gltf or .glb path")
	out := fs.String("out", "", "output .gltf or .glb path")
	plan := fs.String("plan", "", "YAML transform pipeline manifest")
	verbose := fs.Bool("v", false, "log each transform step at INFO level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("both -in and -out are required")
	}

	logger := glog.New("gltfedit", nil)
	if *verbose {
		logger.SetLevel(glog.INFO)
	} else {
		logger.SetLevel(glog.WARN)
	}
	logger.AddWriter(glog.NewConsole(false))

	doc, err := load(*in)
	if err != nil {
		return fmt.Errorf("load %s: %w", *in, err)
	}
	doc.SetLogger(logger)
	logger.Info("loaded %s: %d nodes, %d meshes, %d accessors", *in,
		len(doc.Root().Nodes()), len(doc.Root().Meshes()), len(doc.Root().Accessors()))

	if *plan != "" {
		steps, err := buildPipeline(*plan)
		if err != nil {
			return fmt.Errorf("plan %s: %w", *plan, err)
		}
		for _, step := range steps {
			logger.Info("running transform %s", step.Name)
		}
		if err := doc.Transform(steps...); err != nil {
			return fmt.Errorf("transform: %w", err)
		}
		logger.Info("after transforms: %d accessors, %d materials, %d textures",
			len(doc.Root().Accessors()), len(doc.Root().Materials()), len(doc.Root().Textures()))
	}

	if err := save(doc, *out); err != nil {
		return fmt.Errorf("save %s: %w", *out, err)
	}
	return nil
}

func load(path string) (*document.Document, error) {
	if isGLB(path) {
		return codec.DecodeGLB(path, ioplatform.Default)
	}
	return codec.DecodeJSON(path, ioplatform.Default)
}

func save(doc *document.Document, path string) error {
	if isGLB(path) {
		return codec.EncodeGLB(doc, path, ioplatform.Default)
	}
	return codec.EncodeJSON(doc, path, ioplatform.Default)
}

func isGLB(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".glb")
}

// transformRegistry wires every named transform step cmd/gltfedit knows
// about into a config.Registry. config itself never imports
// transform/dedup (or any sibling transform package), so this is the one
// place that registration happens, per config's own ledger entry.
func transformRegistry() *config.Registry {
	reg := config.NewRegistry()
	reg.Register("dedup", func(options map[string]interface{}) (document.Transform, error) {
		opts := dedup.Options{}
		if raw, ok := options["propertyTypes"]; ok {
			for _, name := range config.StringList(raw) {
				opts.PropertyTypes = append(opts.PropertyTypes, dedup.PropertyType(name))
			}
		}
		return dedup.New(opts), nil
	})
	return reg
}

func buildPipeline(planPath string) ([]document.Transform, error) {
	b := config.NewBuilder()
	if err := b.ParseFile(planPath, ioplatform.Default); err != nil {
		return nil, err
	}
	return b.Build(transformRegistry())
}
