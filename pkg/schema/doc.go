// Package schema defines the JSON document that carries a graph between
// editors, and the structural checks run on it before decoding.
//
// # Document Format
//
//	{
//	  "metadata": {"version": "1.0", "producerVersion": "0.4.0", "exportDate": "2026-01-02T15:04:05Z"},
//	  "graph": {
//	    "nodes": [
//	      {"id": "...", "type": "K2Node_CallFunction", "title": "Print String",
//	       "position": {"x": 300, "y": 0},
//	       "functionName": "PrintString",
//	       "pins": [{"name": "execute", "direction": "input", "pinCategory": "exec"}]}
//	    ],
//	    "connections": [
//	      {"from": {"nodeId": "...", "pinName": "then"},
//	       "to":   {"nodeId": "...", "pinName": "execute"}}
//	    ]
//	  }
//	}
//
// Only "graph" is required. "metadata", "nodes" and "connections" may be
// absent. Every node needs a non-empty "id" and "type"; every connection
// needs both endpoints with a non-empty "nodeId" and "pinName". Positions,
// pins and identity fields are never required.
//
// # Versions
//
// [CurrentVersion] is written by encoders. [Migrate] upgrades older
// documents in place and refuses documents from a future major version.
package schema
