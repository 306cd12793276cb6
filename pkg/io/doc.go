// Package io provides JSON import and export for generated documents.
//
// # JSON Format
//
// A document file wraps [doc.Document] in a small envelope:
//
//	{
//	  "format": "screenforge/document",
//	  "version": 1,
//	  "generator": "screenforge v1.0.0",
//	  "document": {
//	    "pages": [{"name": "📱 DDA Mobile — All Screens", "nodes": [...]}],
//	    "paint_styles": [{"name": "Light/Background", "paints": [...]}],
//	    "text_styles": [{"name": "Typography/H1", ...}]
//	  }
//	}
//
// Nodes nest through a "children" array. Parent links are rebuilt on import.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader. Both check the envelope and validate the geometry
// of every node, so a document that imports cleanly satisfies the same
// constraints as one produced by the engine.
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write to
// any io.Writer. Export followed by import reproduces the document.
//
// # Concurrency
//
// Export reads the document and must not run concurrently with a batch that
// mutates it.
package io
