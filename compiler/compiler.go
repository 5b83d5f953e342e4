// Package compiler assembles schema documents into validator descriptions
// and renders them through the two backends: a live runtime validator and a
// Zod source fragment. Both consume the identical description, so accept and
// reject semantics never diverge between them.
package compiler

import (
	zodforge "github.com/reoring/zodforge"
	"github.com/reoring/zodforge/internal/gen"
	"github.com/reoring/zodforge/internal/ir"
	"github.com/reoring/zodforge/internal/runtime"
	"github.com/reoring/zodforge/schema"
)

// Compile assembles the field list into a single object-shaped runtime
// validator keyed by field name.
func Compile(fields []schema.Field) zodforge.Validator {
	return runtime.New(buildObject(fields))
}

// CompileField assembles a single field into a runtime validator.
func CompileField(f schema.Field) zodforge.Validator {
	return runtime.New(buildField(f))
}

// Render emits the Zod source fragment reconstructing the same object
// validator. Output is deterministic for identical input: field order equals
// declaration order, two-space indentation, trailing comma on every entry.
func Render(fields []schema.Field) string {
	return gen.Render(buildObject(fields))
}

// RenderField emits the Zod expression for a single field.
func RenderField(f schema.Field) string {
	return gen.Expr(buildField(f))
}

// buildField runs type resolution, the validation pipeline, and finally the
// description attachment for one field definition.
func buildField(f schema.Field) *ir.Node {
	p := f.Params
	// Accept the rule-carried discriminated-union form by folding it into
	// params before resolution; both representations share one recursion.
	if !p.IsDiscriminatedUnion || p.DiscriminatedUnion == nil {
		for _, r := range f.Validations {
			if r.Type == "discriminatedUnion" && r.Discriminator != "" && len(r.Cases) > 0 {
				p.IsDiscriminatedUnion = true
				p.DiscriminatedUnion = &schema.DiscriminatedUnion{
					Discriminator: r.Discriminator,
					Cases:         r.Cases,
				}
				break
			}
		}
	}

	n := resolveType(f.Type, p)
	applyRules(n, f)

	// Description always lands last, after every validation rule.
	if p.Description != "" {
		n.Description = p.Description
		n.HasDescription = true
	}
	return n
}

// buildObject combines named field descriptions, in declaration order, into
// one composite object description.
func buildObject(fields []schema.Field) *ir.Node {
	n := &ir.Node{Kind: ir.KindObject, Unknown: ir.UnknownStrip}
	for _, f := range fields {
		n.Fields = append(n.Fields, ir.Field{Name: f.Name, Node: buildField(f)})
	}
	return n
}
