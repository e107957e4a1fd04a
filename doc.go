/*
Package inkwell is a session engine for iteratively drafting structured
documents (syllabi, exams, assignments) over an append-only event log.

It synthesizes create/read/update/delete semantics on top of a log that
only supports appending and reading: every state change writes a full
snapshot record, deletion writes a tombstone, and reads resolve the
latest surviving snapshot per session. This Hexagonal Architecture keeps
the drafting logic decoupled from storage (memory, JSONL files, Redis)
and from the surfaces that drive it (CLI, HTTP, MCP agents).

# Key Features

  - Append-only persistence: state is reconstructed from snapshots, with
    latest-wins resolution and tombstone deletes.
  - Template catalog: builtin document kinds with required and optional
    fields, extensible from YAML files.
  - Deterministic rendering: the same session state always produces the
    same document bytes, with unfilled fields clearly marked.
  - Finalization pipeline: completeness gating, final markdown, and a
    derived HTML export.

# Usage

Initialize the engine, create a session, fill fields, and finalize.

	package main

	import (
		"context"
		"log"

		"github.com/okapen/inkwell"
		"github.com/okapen/inkwell/pkg/domain"
	)

	func main() {
		eng, err := inkwell.New()
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		created, err := eng.Create(ctx, "syllabus", domain.Identity{
			CourseCode: "CS101",
			Title:      "Introduction to Programming",
		})
		if err != nil {
			log.Fatal(err)
		}

		// Fill fields one at a time; the draft regenerates after each.
		if _, err := eng.SetField(ctx, created.SessionID, "instructor_name", "Dr. Grace Hopper"); err != nil {
			log.Fatal(err)
		}

		// Check what is still missing before finalizing.
		status, err := eng.Status(ctx, created.SessionID)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("missing:", status.Missing)

		// Once complete, finalize writes the final document and the
		// derived HTML export.
		result, err := eng.Finalize(ctx, created.SessionID)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("final:", result.TextLocation)
	}
*/
package inkwell
