// Package pkg provides the core libraries for alpsviz.
//
// # Overview
//
// alpsviz turns an ALPS (Application-Level Profile Semantics) profile into an
// application state diagram: every semantic descriptor that owns or receives
// a transition becomes a state, every safe, unsafe or idempotent descriptor
// becomes an edge between states. The pkg directory is organized as:
//
//  1. [alps] - The raw descriptor tree and reference syntax
//  2. [io] - Loading JSON, XML and YAML profiles and exporting built ones
//  3. [resolve] - Following href and rt references across files
//  4. [profile] - The descriptor table, the link graph and tag filtering
//  5. [render] - DOT generation, label strategies and rasterization
//  6. [pipeline] - Orchestration (parse → layout → render) with caching
//  7. [server] and [watch] - Live preview over HTTP and re-rendering on change
//
// # Architecture
//
// The typical data flow through alpsviz:
//
//	profile files (json, xml, yaml)
//	         ↓
//	    [resolve] package (merge referenced descriptors)
//	         ↓
//	    [profile] package (descriptor table + link graph + tag subset)
//	         ↓
//	    [render] package (DOT, then SVG/PNG via Graphviz)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "blog.json",
//	    Label:   "title",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("blog.svg", result.Artifacts["svg"], 0o644)
//
// Every failure is a coded error from [errors]; see that package for codes.
//
// [alps]: github.com/matzehuels/alpsviz/pkg/alps
// [io]: github.com/matzehuels/alpsviz/pkg/io
// [resolve]: github.com/matzehuels/alpsviz/pkg/resolve
// [profile]: github.com/matzehuels/alpsviz/pkg/profile
// [render]: github.com/matzehuels/alpsviz/pkg/render
// [pipeline]: github.com/matzehuels/alpsviz/pkg/pipeline
// [server]: github.com/matzehuels/alpsviz/pkg/server
// [watch]: github.com/matzehuels/alpsviz/pkg/watch
// [errors]: github.com/matzehuels/alpsviz/pkg/errors
package pkg
