package zodforge

// Package zodforge turns declarative field definitions into validators.
//
// A schema document (see schema/) lists typed fields with ordered validation
// rules. The compiler derives a single validator description per field and
// renders it twice:
//
//   - a live runtime validator (Parse/Validate over untyped values), and
//   - a Zod source fragment that reconstructs the same validator in a
//     TypeScript host.
//
// Both renderings consume the identical description, so acceptance semantics
// never diverge between them.
//
// Design policy:
// - Keep only public contracts in the root package; put implementations under internal/.
// - Place the document model under schema/, entry points under compiler/, and the CLI under cmd/zodforge.
// - Conversion is lenient: unknown type tags and rule tags degrade to permissive
//   behavior, and misconfiguration surfaces at validate time, never at build time.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	fields, err := schema.DecodeJSON(data)
//	v := compiler.Compile(fields)
//	out, err := v.Parse(ctx, payload)
//
//	src := compiler.Render(fields) // "z.object({ ... })"
