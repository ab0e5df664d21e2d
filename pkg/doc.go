// Package pkg provides the libraries behind graphclip, a JSON copy/paste
// format for Blueprint node graphs.
//
// # Overview
//
// A graph is serialized into a self-contained document listing its nodes,
// their pins and the connections between them. The document can be stored,
// shared, and pasted back into the same or another graph, where the nodes are
// recreated and reconnected. Anything that cannot be restored (unknown node
// types, missing functions, dangling connections) is skipped and reported
// without aborting the paste.
//
// # Architecture
//
//	host graph ([host] interfaces, [blueprint] reference model)
//	         ↓  io.Encoder
//	    [schema] Document  ⇄  JSON
//	         ↓  io.Decoder
//	host graph (new nodes, restored links)
//
// # Main Packages
//
// [host] - The contract the codec works against: graphs, nodes, pins, the
// type registry and the symbol library.
//
// [blueprint] - In-memory reference host with node kinds, default pin
// allocation, a TOML symbol library and an undo journal.
//
// [schema] - Document wire types, structural validation and version
// migration.
//
// [io] - Encoder, Decoder and JSON read/write helpers.
//
// [store] - Named document shelf on the file system, in memory, Redis or
// MongoDB.
//
// [render/nodelink] - Graphviz diagrams of documents.
//
// [server] - HTTP API over validation, the store and rendering.
//
// [config], [errors], [observability], [buildinfo] - Ambient support.
//
// # Quick Start
//
//	lib := blueprint.DefaultLibrary()
//	doc, err := io.ImportJSON("examples/begin_play.json")
//	g := blueprint.New("EventGraph")
//	report, err := io.NewDecoder(lib, lib).Paste(g, doc)
//	fmt.Println(report) // nodes 2/2, connections 1/1
//
// # Testing
//
//	go test ./...                         # All tests
//	GRAPHCLIP_TEST_REDIS_URL=redis://localhost:6379/15 go test ./pkg/store
//
// [host]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/host
// [blueprint]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/blueprint
// [schema]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/schema
// [io]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/io
// [store]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/store
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/render/nodelink
// [server]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/graphclip/pkg/buildinfo
package pkg
