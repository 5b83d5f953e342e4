package compiler

import (
	"sort"

	"github.com/reoring/zodforge/internal/ir"
	"github.com/reoring/zodforge/schema"
)

// resolveType maps a type tag plus its params to a base validator
// description. Unknown tags fall through to the permissive node; conversion
// never fails (misconfiguration surfaces at validate time instead).
func resolveType(tag string, p schema.Params) *ir.Node {
	switch tag {
	case "string":
		return &ir.Node{Kind: ir.KindString, Coerce: p.Coerce}
	case "number":
		return &ir.Node{Kind: ir.KindNumber, Coerce: p.Coerce}
	case "boolean":
		return &ir.Node{Kind: ir.KindBoolean, Coerce: p.Coerce}
	case "date":
		return &ir.Node{Kind: ir.KindDate, Coerce: p.Coerce}
	case "bigint":
		return &ir.Node{Kind: ir.KindBigInt, Coerce: p.Coerce}
	case "null":
		return &ir.Node{Kind: ir.KindNull}
	case "undefined":
		return &ir.Node{Kind: ir.KindUndefined}
	case "void":
		return &ir.Node{Kind: ir.KindVoid}
	case "any":
		return &ir.Node{Kind: ir.KindAny}
	case "unknown":
		return &ir.Node{Kind: ir.KindUnknown}
	case "never":
		return &ir.Node{Kind: ir.KindNever}
	case "nan":
		return &ir.Node{Kind: ir.KindNaN}
	case "symbol":
		return &ir.Node{Kind: ir.KindSymbol}
	case "enum":
		// A missing value list yields an empty acceptance set, not an error.
		return &ir.Node{Kind: ir.KindEnum, Enum: p.EnumValues}
	case "literal":
		lit := ""
		if len(p.EnumValues) > 0 {
			lit = p.EnumValues[0]
		}
		return &ir.Node{Kind: ir.KindLiteral, Enum: []string{lit}}
	case "array":
		if p.IsTuple {
			items := make([]*ir.Node, 0, len(p.TupleTypes))
			for _, t := range p.TupleTypes {
				items = append(items, resolveRef(t))
			}
			return &ir.Node{Kind: ir.KindTuple, Items: items}
		}
		return &ir.Node{Kind: ir.KindArray, Elem: resolveRef(p.ElementType)}
	case "object":
		// Bare object tag (e.g. a union member): empty shape, openness only.
		return &ir.Node{Kind: ir.KindObject, Unknown: openness(p)}
	case "record":
		return &ir.Node{Kind: ir.KindRecord, Key: resolveKey(p.KeyType), Value: resolveRef(p.ValueType)}
	case "map":
		return &ir.Node{Kind: ir.KindMap, Key: resolveKey(p.KeyType), Value: resolveRef(p.ValueType)}
	case "set":
		return &ir.Node{Kind: ir.KindSet, Elem: resolveRef(p.ElementType)}
	case "union":
		if p.IsDiscriminatedUnion && p.DiscriminatedUnion != nil && p.DiscriminatedUnion.Discriminator != "" {
			return resolveDiscriminated(p.DiscriminatedUnion)
		}
		items := make([]*ir.Node, 0, len(p.UnionTypes))
		for _, t := range p.UnionTypes {
			items = append(items, resolveRef(t))
		}
		return &ir.Node{Kind: ir.KindUnion, Items: items}
	case "intersection":
		// Only the first two operands are modeled; missing slots are permissive.
		left, right := "", ""
		if len(p.UnionTypes) > 0 {
			left = p.UnionTypes[0]
		}
		if len(p.UnionTypes) > 1 {
			right = p.UnionTypes[1]
		}
		return &ir.Node{Kind: ir.KindIntersection, Items: []*ir.Node{resolveRef(left), resolveRef(right)}}
	default:
		return &ir.Node{Kind: ir.KindAny}
	}
}

// resolveRef resolves a nested type-tag reference with empty params, so
// composite member tags degrade to their parameterless shapes.
func resolveRef(tag string) *ir.Node {
	if tag == "" {
		return &ir.Node{Kind: ir.KindAny}
	}
	return resolveType(tag, schema.Params{})
}

// resolveKey resolves a record/map key tag. Wire keys are always strings, so
// a numeric key type coerces numeric strings rather than rejecting them all.
func resolveKey(tag string) *ir.Node {
	if tag == "" {
		tag = "string"
	}
	n := resolveType(tag, schema.Params{})
	if n.Kind == ir.KindNumber {
		n.Coerce = true
	}
	return n
}

// resolveDiscriminated builds one case object per entry: a literal match on
// the discriminator plus the case's own fields, recursed through the full
// field assembler. Case order is sorted by case name for deterministic
// rendering.
func resolveDiscriminated(du *schema.DiscriminatedUnion) *ir.Node {
	names := make([]string, 0, len(du.Cases))
	for name := range du.Cases {
		names = append(names, name)
	}
	sort.Strings(names)

	cases := make([]ir.Case, 0, len(names))
	for _, name := range names {
		c := du.Cases[name]
		obj := &ir.Node{Kind: ir.KindObject, Unknown: ir.UnknownStrip}
		obj.Fields = append(obj.Fields, ir.Field{
			Name: du.Discriminator,
			Node: &ir.Node{Kind: ir.KindLiteral, Enum: []string{c.Value}},
		})
		for _, f := range c.Fields {
			obj.Fields = append(obj.Fields, ir.Field{Name: f.Name, Node: buildField(f)})
		}
		cases = append(cases, ir.Case{Name: name, Object: obj})
	}
	return &ir.Node{Kind: ir.KindDiscriminated, Discriminator: du.Discriminator, Cases: cases}
}

// openness maps the object flags to an unknown-key policy; IsStrict wins
// over IsPassthrough when both are set.
func openness(p schema.Params) ir.UnknownPolicy {
	switch {
	case p.IsStrict:
		return ir.UnknownStrict
	case p.IsPassthrough:
		return ir.UnknownPassthrough
	default:
		return ir.UnknownStrip
	}
}
