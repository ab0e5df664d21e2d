// Package server exposes the codec and the snippet store over HTTP.
//
// # Endpoints
//
//	GET    /health                       liveness and version
//	POST   /v1/validate                  parse, migrate and validate a document
//	GET    /v1/snippets                  list snippet names
//	GET    /v1/snippets/{name}           fetch a snippet (ETag aware)
//	PUT    /v1/snippets/{name}           validate and store a document
//	DELETE /v1/snippets/{name}           remove a snippet
//	POST   /v1/snippets/{name}/paste     paste a document into a snippet
//	GET    /v1/snippets/{name}/dot       Graphviz DOT of a snippet
//	GET    /v1/snippets/{name}/svg       rendered SVG of a snippet
//
// Errors are returned as {"error": "...", "code": "..."} with a status
// derived from the error code: 400 for bad names and input, 404 for missing
// snippets, 422 for documents that fail to parse or validate.
//
// Paste decodes the stored snippet into a fresh graph, pastes the request
// document into it as one transaction, and stores the re-encoded result. The
// decode report is returned so clients can see which nodes and connections
// were skipped.
package server
