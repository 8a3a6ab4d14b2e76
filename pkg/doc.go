// Package pkg provides the libraries behind vpctree, a renderer of AWS VPC
// resources as directory-style text trees.
//
// # Overview
//
// vpctree reads a snapshot of AWS CLI "describe-*" output and prints the
// resources of one Virtual Private Cloud as a tree:
//
//	vpc-0a1b2c3d : main : 10.0.0.0/16
//	├──Subnets:
//	│  └──sn-01 : subnet-01 : eu-west-2a : 10.0.1.0/24
//	│     └──Instances:
//	│        └──i-01 : web : ami-1234 : t2.micro : running : 10.0.1.5
//	│           └──SecurityGroups:
//	│              └──sg-01
//	├──Security Groups:
//	...
//
// # Architecture
//
// The data flow through vpctree:
//
//	Snapshot documents
//	         ↓
//	    [source] (load, filter to one VPC)
//	         ↓
//	    [report] (describe each resource kind)
//	         ↓
//	    [tree] (prefix codec, renderer, grafting)
//	         ↓
//	    text lines
//
// [pipeline] ties the stages together behind a [cache], so that the CLI and
// the HTTP server share one code path.
//
// # Main Packages
//
// [tree] - The rendering core. [tree.Prefix] maps an ancestry path to its
// connector string, [tree.Render] lays out a heading and its items, and
// [tree.Assemble] grafts independently rendered subtrees under one root.
// The package knows nothing about AWS.
//
// [resource] - Entity types decoded from AWS CLI JSON, tag accessors and the
// filters that select the entities of one VPC or subnet.
//
// [source] - The [source.Source] interface and [source.Fetch], which gathers
// every collection a report needs concurrently. [source/snapshot] implements
// it over JSON files.
//
// [report] - One describer per resource kind plus [report.VPC], which renders
// the sections in parallel and assembles them.
//
// [pipeline] - The [pipeline.Runner]: validation, cache lookup, fetch, render
// and cache store.
//
// # Infrastructure
//
// [cache] - File, redis, memcached and no-op caches behind one interface.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for fetch, render, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/tree
// [tree.Prefix]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/tree#Prefix
// [tree.Render]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/tree#Render
// [tree.Assemble]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/tree#Assemble
// [resource]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/resource
// [source]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/source
// [source.Source]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/source#Source
// [source.Fetch]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/source#Fetch
// [source/snapshot]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/source/snapshot
// [report]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/report
// [report.VPC]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/report#VPC
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/vpctree/pkg/buildinfo
package pkg
