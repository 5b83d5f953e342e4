package compiler_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	zodforge "github.com/reoring/zodforge"
	"github.com/reoring/zodforge/compiler"
	"github.com/reoring/zodforge/schema"
)

func TestCompile_EnumField(t *testing.T) {
	fields := []schema.Field{{
		Name: "status",
		Type: "enum",
		Params: schema.Params{
			EnumValues: []string{"active", "inactive"},
		},
	}}
	v := compiler.Compile(fields)
	ctx := context.Background()

	out, err := v.Parse(ctx, map[string]any{"status": "active"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"status": "active"}, out); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	_, err = v.Parse(ctx, map[string]any{"status": "archived"})
	iss, ok := zodforge.AsIssues(err)
	if !ok || iss[0].Code != zodforge.CodeInvalidEnum {
		t.Fatalf("want invalid_enum, got %v", err)
	}

	want := "z.object({\n  status: z.enum(['active', 'inactive']),\n})"
	if got := compiler.Render(fields); got != want {
		t.Fatalf("render mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestCompile_NumberBoundsParity(t *testing.T) {
	fields := []schema.Field{{
		Name: "age",
		Type: "number",
		Validations: []schema.Rule{
			{Type: "min", Value: "0"},
			{Type: "max", Value: "120"},
		},
	}}
	v := compiler.Compile(fields)
	ctx := context.Background()

	if _, err := v.Parse(ctx, map[string]any{"age": float64(30)}); err != nil {
		t.Fatalf("in-range value rejected: %v", err)
	}
	_, err := v.Parse(ctx, map[string]any{"age": float64(150)})
	iss, ok := zodforge.AsIssues(err)
	if !ok || iss[0].Code != zodforge.CodeTooBig || iss[0].Path != "/age" {
		t.Fatalf("unexpected issue: %v", err)
	}

	want := "z.object({\n  age: z.number().min(0).max(120),\n})"
	if got := compiler.Render(fields); got != want {
		t.Fatalf("render mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestCompile_TupleFromArrayParams(t *testing.T) {
	fields := []schema.Field{{
		Name: "pair",
		Type: "array",
		Params: schema.Params{
			IsTuple:    true,
			TupleTypes: []string{"string", "number"},
		},
	}}
	v := compiler.Compile(fields)
	ctx := context.Background()

	if _, err := v.Parse(ctx, map[string]any{"pair": []any{"a", float64(1)}}); err != nil {
		t.Fatalf("tuple rejected: %v", err)
	}
	if _, err := v.Parse(ctx, map[string]any{"pair": []any{"a"}}); err == nil {
		t.Fatalf("short tuple accepted")
	}

	want := "z.object({\n  pair: z.tuple([z.string(), z.number()]),\n})"
	if got := compiler.Render(fields); got != want {
		t.Fatalf("render mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestCompile_DefaultCoercesToDeclaredType(t *testing.T) {
	fields := []schema.Field{{
		Name:        "count",
		Type:        "number",
		Validations: []schema.Rule{{Type: "default", Value: "10"}},
	}}
	v := compiler.Compile(fields)

	out, err := v.Parse(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got := out.(map[string]any)
	if got["count"] != float64(10) {
		t.Fatalf("default should be numeric 10, got %v (%T)", got["count"], got["count"])
	}

	want := "z.object({\n  count: z.number().default(10),\n})"
	if gotSrc := compiler.Render(fields); gotSrc != want {
		t.Fatalf("render mismatch:\n got: %q\nwant: %q", gotSrc, want)
	}
}

func TestCompile_EmptyFieldList(t *testing.T) {
	v := compiler.Compile(nil)
	out, err := v.Parse(context.Background(), map[string]any{"anything": true})
	if err != nil {
		t.Fatalf("empty schema should accept any object: %v", err)
	}
	if diff := cmp.Diff(map[string]any{}, out); diff != "" {
		t.Fatalf("empty schema should strip everything (-want +got):\n%s", diff)
	}
	if got := compiler.Render(nil); got != "z.object({})" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestCompile_RuleOrderChangesOutcome(t *testing.T) {
	ctx := context.Background()
	trimFirst := schema.Field{Name: "s", Type: "string", Validations: []schema.Rule{
		{Type: "trim"}, {Type: "min", Value: "3"},
	}}
	checkFirst := schema.Field{Name: "s", Type: "string", Validations: []schema.Rule{
		{Type: "min", Value: "3"}, {Type: "trim"},
	}}

	if _, err := compiler.CompileField(trimFirst).Parse(ctx, "  a  "); err == nil {
		t.Fatalf("trim-then-min should reject")
	}
	out, err := compiler.CompileField(checkFirst).Parse(ctx, "  a  ")
	if err != nil {
		t.Fatalf("min-then-trim should accept: %v", err)
	}
	if out != "a" {
		t.Fatalf("transform should still apply: %q", out)
	}

	if got := compiler.RenderField(trimFirst); got != "z.string().trim().min(3)" {
		t.Fatalf("unexpected render: %q", got)
	}
	if got := compiler.RenderField(checkFirst); got != "z.string().min(3).trim()" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestCompile_DescriptionAlwaysLast(t *testing.T) {
	f := schema.Field{
		Name:        "email",
		Type:        "string",
		Validations: []schema.Rule{{Type: "email"}, {Type: "optional"}},
		Params:      schema.Params{Description: "contact address"},
	}
	want := "z.string().email().optional().describe('contact address')"
	if got := compiler.RenderField(f); got != want {
		t.Fatalf("render mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestCompile_UnknownTagAndRuleAreLenient(t *testing.T) {
	f := schema.Field{
		Name:        "x",
		Type:        "hologram",
		Validations: []schema.Rule{{Type: "sparkle", Value: "7"}},
	}
	v := compiler.CompileField(f)
	if _, err := v.Parse(context.Background(), map[string]any{"weird": true}); err != nil {
		t.Fatalf("unknown tag should be permissive: %v", err)
	}
	if got := compiler.RenderField(f); got != "z.any()" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestCompile_UnknownTagKeepsDistinctRendering(t *testing.T) {
	f := schema.Field{Name: "extra", Type: "unknown"}
	if _, err := compiler.CompileField(f).Parse(context.Background(), map[string]any{"x": 1}); err != nil {
		t.Fatalf("unknown tag should accept anything: %v", err)
	}
	if got := compiler.RenderField(f); got != "z.unknown()" {
		t.Fatalf("unexpected render: %q", got)
	}
	if got := compiler.RenderField(schema.Field{Name: "a", Type: "any"}); got != "z.any()" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestCompile_CategoryGatingDropsMismatchedRules(t *testing.T) {
	f := schema.Field{
		Name:        "flag",
		Type:        "boolean",
		Validations: []schema.Rule{{Type: "min", Value: "3"}, {Type: "email"}},
	}
	if _, err := compiler.CompileField(f).Parse(context.Background(), true); err != nil {
		t.Fatalf("gated rules should not fire: %v", err)
	}
	if got := compiler.RenderField(f); got != "z.boolean()" {
		t.Fatalf("gated rules should not render: %q", got)
	}
}

func TestCompile_MessagePropagatesToBothBackends(t *testing.T) {
	f := schema.Field{
		Name:        "name",
		Type:        "string",
		Validations: []schema.Rule{{Type: "min", Value: "3", Message: "too short, friend"}},
	}
	_, err := compiler.CompileField(f).Parse(context.Background(), "a")
	iss, ok := zodforge.AsIssues(err)
	if !ok || iss[0].Message != "too short, friend" {
		t.Fatalf("custom message lost: %v", err)
	}
	if got := compiler.RenderField(f); got != "z.string().min(3, 'too short, friend')" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestCompile_EscapingSurvivesRoundTrip(t *testing.T) {
	f := schema.Field{
		Name: "s",
		Type: "string",
		Validations: []schema.Rule{
			{Type: "startsWith", Value: "it's\n", Message: `needs 'quotes' and \slashes\`},
		},
	}
	want := `z.string().startsWith('it\'s\n', 'needs \'quotes\' and \\slashes\\')`
	if got := compiler.RenderField(f); got != want {
		t.Fatalf("escape mismatch:\n got: %q\nwant: %q", got, want)
	}

	if _, err := compiler.CompileField(f).Parse(context.Background(), "it's\nfine"); err != nil {
		t.Fatalf("runtime should match the raw prefix: %v", err)
	}
}

func TestCompile_DiscriminatedUnionRuleForm(t *testing.T) {
	f := schema.Field{
		Name: "shape",
		Type: "union",
		Validations: []schema.Rule{{
			Type:          "discriminatedUnion",
			Discriminator: "kind",
			Cases: map[string]schema.Case{
				"square": {Value: "square", Fields: []schema.Field{{Name: "side", Type: "number"}}},
				"circle": {Value: "circle", Fields: []schema.Field{{Name: "radius", Type: "number"}}},
			},
		}},
	}
	v := compiler.CompileField(f)
	ctx := context.Background()

	if _, err := v.Parse(ctx, map[string]any{"kind": "circle", "radius": float64(1)}); err != nil {
		t.Fatalf("variant rejected: %v", err)
	}
	if _, err := v.Parse(ctx, map[string]any{"kind": "hexagon"}); err == nil {
		t.Fatalf("unknown variant accepted")
	}

	// Case order is name-sorted regardless of map iteration.
	want := "z.discriminatedUnion('kind', [\n" +
		"  z.object({\n    kind: z.literal('circle'),\n    radius: z.number(),\n  }),\n" +
		"  z.object({\n    kind: z.literal('square'),\n    side: z.number(),\n  }),\n" +
		"])"
	if got := compiler.RenderField(f); got != want {
		t.Fatalf("render mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestCompile_ObjectOpennessFromParams(t *testing.T) {
	strict := schema.Field{Name: "o", Type: "object", Params: schema.Params{IsStrict: true, IsPassthrough: true}}
	// strict wins when both flags are set
	if got := compiler.RenderField(strict); got != "z.object({}).strict()" {
		t.Fatalf("unexpected render: %q", got)
	}
	pass := schema.Field{Name: "o", Type: "object", Params: schema.Params{IsPassthrough: true}}
	if got := compiler.RenderField(pass); got != "z.object({}).passthrough()" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestCompile_NestedObjectIndentation(t *testing.T) {
	fields := []schema.Field{
		{Name: "id", Type: "string", Validations: []schema.Rule{{Type: "uuid"}}},
		{Name: "tags", Type: "array", Params: schema.Params{ElementType: "string"}},
	}
	want := "z.object({\n" +
		"  id: z.string().uuid(),\n" +
		"  tags: z.array(z.string()),\n" +
		"})"
	if got := compiler.Render(fields); got != want {
		t.Fatalf("render mismatch:\n got: %q\nwant: %q", got, want)
	}
}
