package compiler

import (
	"math/big"
	"regexp"
	"strconv"

	"github.com/reoring/zodforge/internal/ir"
	"github.com/reoring/zodforge/schema"
)

// applyRules folds the ordered rule list onto the base description. A rule
// whose category does not match the base is skipped silently, as is any
// unknown rule tag; the surviving pipeline is identical for both renderers.
func applyRules(n *ir.Node, f schema.Field) {
	cat := ir.CategoryOf(n.Kind)
	for _, r := range f.Validations {
		op, ok := buildOp(r, f, cat)
		if !ok {
			continue
		}
		op.Message = r.Message
		n.Ops = append(n.Ops, op)
	}
}

func buildOp(r schema.Rule, f schema.Field, cat ir.Category) (ir.Op, bool) {
	switch r.Type {
	case "min", "max", "length":
		if cat != ir.CatString && cat != ir.CatNumber && cat != ir.CatArray {
			return ir.Op{}, false
		}
		// length is exact-size only; numbers take min/max bounds instead.
		if r.Type == "length" && cat == ir.CatNumber {
			return ir.Op{}, false
		}
		num, err := strconv.ParseFloat(r.Value, 64)
		if err != nil {
			return ir.Op{}, false
		}
		kind := map[string]ir.OpKind{"min": ir.OpMin, "max": ir.OpMax, "length": ir.OpLength}[r.Type]
		return ir.Op{Kind: kind, Num: num}, true

	case "email":
		return stringOp(ir.OpEmail, cat)
	case "url":
		return stringOp(ir.OpURL, cat)
	case "uuid":
		return stringOp(ir.OpUUID, cat)
	case "cuid":
		return stringOp(ir.OpCUID, cat)
	case "cuid2":
		return stringOp(ir.OpCUID2, cat)
	case "ulid":
		return stringOp(ir.OpULID, cat)

	case "regex":
		if cat != ir.CatString {
			return ir.Op{}, false
		}
		re, err := regexp.Compile(r.Value)
		if err != nil {
			// Uncompilable patterns degrade to a no-op, not an error.
			return ir.Op{}, false
		}
		return ir.Op{Kind: ir.OpRegex, Str: r.Value, Pattern: re}, true

	case "startsWith":
		if cat != ir.CatString {
			return ir.Op{}, false
		}
		return ir.Op{Kind: ir.OpStartsWith, Str: r.Value}, true
	case "endsWith":
		if cat != ir.CatString {
			return ir.Op{}, false
		}
		return ir.Op{Kind: ir.OpEndsWith, Str: r.Value}, true

	case "datetime":
		if cat != ir.CatString {
			return ir.Op{}, false
		}
		op := ir.Op{Kind: ir.OpDatetime}
		if so := f.Params.StringOptions; so != nil && so.Datetime != nil {
			op.DatetimeOffset = so.Datetime.Offset
			op.DatetimePrecision = so.Datetime.Precision
		}
		return op, true

	case "ip":
		if cat != ir.CatString {
			return ir.Op{}, false
		}
		// Unspecified version means v4 acceptance; both renderers make the
		// default explicit.
		version := "v4"
		if so := f.Params.StringOptions; so != nil && so.IP != nil && so.IP.Version == "v6" {
			version = "v6"
		}
		return ir.Op{Kind: ir.OpIP, IPVersion: version}, true

	case "trim":
		return stringOp(ir.OpTrim, cat)
	case "toLowerCase":
		return stringOp(ir.OpToLowerCase, cat)
	case "toUpperCase":
		return stringOp(ir.OpToUpperCase, cat)

	case "int":
		return numberOp(ir.OpInt, cat)
	case "positive":
		return numberOp(ir.OpPositive, cat)
	case "negative":
		return numberOp(ir.OpNegative, cat)
	case "finite":
		return numberOp(ir.OpFinite, cat)
	case "safe":
		return numberOp(ir.OpSafe, cat)
	case "multipleOf":
		if cat != ir.CatNumber {
			return ir.Op{}, false
		}
		num, err := strconv.ParseFloat(r.Value, 64)
		if err != nil || num == 0 {
			return ir.Op{}, false
		}
		return ir.Op{Kind: ir.OpMultipleOf, Num: num}, true

	case "nonempty":
		if cat != ir.CatString && cat != ir.CatArray {
			return ir.Op{}, false
		}
		return ir.Op{Kind: ir.OpNonempty}, true

	case "optional":
		return ir.Op{Kind: ir.OpOptional}, true
	case "nullable":
		return ir.Op{Kind: ir.OpNullable}, true
	case "nullish":
		return ir.Op{Kind: ir.OpNullish}, true
	case "readonly":
		return ir.Op{Kind: ir.OpReadonly}, true

	case "default":
		return ir.Op{Kind: ir.OpDefault, Lit: coerceLiteral(f.Type, r.Value)}, true
	case "catch":
		return ir.Op{Kind: ir.OpCatch, Lit: coerceLiteral(f.Type, r.Value)}, true

	default:
		// Unknown rule tags are no-ops.
		return ir.Op{}, false
	}
}

func stringOp(kind ir.OpKind, cat ir.Category) (ir.Op, bool) {
	if cat != ir.CatString {
		return ir.Op{}, false
	}
	return ir.Op{Kind: kind}, true
}

func numberOp(kind ir.OpKind, cat ir.Category) (ir.Op, bool) {
	if cat != ir.CatNumber {
		return ir.Op{}, false
	}
	return ir.Op{Kind: kind}, true
}

// coerceLiteral converts a default/catch payload according to the field's
// declared type: numeric parse for number, string-equality-to-"true" for
// boolean, big-integer parse for bigint, raw string otherwise. Unparsable
// numeric payloads fall back to the raw string form.
func coerceLiteral(fieldType, raw string) *ir.Literal {
	switch fieldType {
	case "number":
		if num, err := strconv.ParseFloat(raw, 64); err == nil {
			return &ir.Literal{Kind: ir.LitNumber, Num: num}
		}
		return &ir.Literal{Kind: ir.LitString, Str: raw}
	case "boolean":
		return &ir.Literal{Kind: ir.LitBool, Bool: raw == "true"}
	case "bigint":
		if b, ok := new(big.Int).SetString(raw, 10); ok {
			return &ir.Literal{Kind: ir.LitBigInt, Big: b}
		}
		return &ir.Literal{Kind: ir.LitString, Str: raw}
	default:
		return &ir.Literal{Kind: ir.LitString, Str: raw}
	}
}
