// Package gen renders a validator description into Zod source text. It
// consumes the same tree the runtime interprets, so the emitted chain always
// mirrors the executed pipeline.
package gen

import (
	"strings"

	"github.com/reoring/zodforge/internal/ir"
)

const indentUnit = "  "

// Render emits the top-level object form:
//
//	z.object({
//	  name: z.string().min(3),
//	})
func Render(n *ir.Node) string {
	return renderNode(n, 0)
}

// Expr emits a single field expression with no surrounding object.
func Expr(n *ir.Node) string {
	return renderNode(n, 0)
}

func renderNode(n *ir.Node, depth int) string {
	b := &strings.Builder{}
	writeBase(b, n, depth)
	for i := range n.Ops {
		writeOp(b, &n.Ops[i])
	}
	if n.HasDescription {
		b.WriteString(".describe(" + quote(n.Description) + ")")
	}
	return b.String()
}

func writeBase(b *strings.Builder, n *ir.Node, depth int) {
	switch n.Kind {
	case ir.KindString:
		writeCoerced(b, n, "string")
	case ir.KindNumber:
		writeCoerced(b, n, "number")
	case ir.KindBoolean:
		writeCoerced(b, n, "boolean")
	case ir.KindDate:
		writeCoerced(b, n, "date")
	case ir.KindBigInt:
		writeCoerced(b, n, "bigint")
	case ir.KindNull:
		b.WriteString("z.null()")
	case ir.KindUndefined:
		b.WriteString("z.undefined()")
	case ir.KindVoid:
		b.WriteString("z.void()")
	case ir.KindAny:
		b.WriteString("z.any()")
	case ir.KindUnknown:
		b.WriteString("z.unknown()")
	case ir.KindNever:
		b.WriteString("z.never()")
	case ir.KindNaN:
		b.WriteString("z.nan()")
	case ir.KindSymbol:
		b.WriteString("z.symbol()")
	case ir.KindEnum:
		b.WriteString("z.enum([")
		for i, v := range n.Enum {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(v))
		}
		b.WriteString("])")
	case ir.KindLiteral:
		b.WriteString("z.literal(" + quote(n.Enum[0]) + ")")
	case ir.KindArray:
		b.WriteString("z.array(" + renderNode(n.Elem, depth) + ")")
	case ir.KindTuple:
		b.WriteString("z.tuple([")
		for i, item := range n.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(renderNode(item, depth))
		}
		b.WriteString("])")
	case ir.KindObject:
		writeObject(b, n, depth)
	case ir.KindRecord:
		b.WriteString("z.record(" + renderNode(n.Key, depth) + ", " + renderNode(n.Value, depth) + ")")
	case ir.KindMap:
		b.WriteString("z.map(" + renderNode(n.Key, depth) + ", " + renderNode(n.Value, depth) + ")")
	case ir.KindSet:
		b.WriteString("z.set(" + renderNode(n.Elem, depth) + ")")
	case ir.KindUnion:
		b.WriteString("z.union([")
		for i, item := range n.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(renderNode(item, depth))
		}
		b.WriteString("])")
	case ir.KindDiscriminated:
		writeDiscriminated(b, n, depth)
	case ir.KindIntersection:
		b.WriteString("z.intersection(" + renderNode(n.Items[0], depth) + ", " + renderNode(n.Items[1], depth) + ")")
	default:
		b.WriteString("z.any()")
	}
}

func writeCoerced(b *strings.Builder, n *ir.Node, name string) {
	if n.Coerce {
		b.WriteString("z.coerce." + name + "()")
		return
	}
	b.WriteString("z." + name + "()")
}

// writeObject emits the multi-line object form with trailing commas and
// declaration-order fields. Openness chains immediately after the
// constructor, before any pipeline op.
func writeObject(b *strings.Builder, n *ir.Node, depth int) {
	if len(n.Fields) == 0 {
		b.WriteString("z.object({})")
	} else {
		inner := strings.Repeat(indentUnit, depth+1)
		outer := strings.Repeat(indentUnit, depth)
		b.WriteString("z.object({\n")
		for _, f := range n.Fields {
			b.WriteString(inner + objectKey(f.Name) + ": " + renderNode(f.Node, depth+1) + ",\n")
		}
		b.WriteString(outer + "})")
	}
	switch n.Unknown {
	case ir.UnknownStrict:
		b.WriteString(".strict()")
	case ir.UnknownPassthrough:
		b.WriteString(".passthrough()")
	}
}

func writeDiscriminated(b *strings.Builder, n *ir.Node, depth int) {
	inner := strings.Repeat(indentUnit, depth+1)
	outer := strings.Repeat(indentUnit, depth)
	b.WriteString("z.discriminatedUnion(" + quote(n.Discriminator) + ", [\n")
	for _, c := range n.Cases {
		b.WriteString(inner + renderNode(c.Object, depth+1) + ",\n")
	}
	b.WriteString(outer + "])")
}

// writeOp appends one chained call. The argument grammar matches what the
// runtime checked: same numbers, same patterns, same literals.
func writeOp(b *strings.Builder, op *ir.Op) {
	switch op.Kind {
	case ir.OpMin:
		writeCall(b, "min", formatNumber(op.Num), op.Message)
	case ir.OpMax:
		writeCall(b, "max", formatNumber(op.Num), op.Message)
	case ir.OpLength:
		writeCall(b, "length", formatNumber(op.Num), op.Message)
	case ir.OpEmail:
		writeCall(b, "email", "", op.Message)
	case ir.OpURL:
		writeCall(b, "url", "", op.Message)
	case ir.OpUUID:
		writeCall(b, "uuid", "", op.Message)
	case ir.OpCUID:
		writeCall(b, "cuid", "", op.Message)
	case ir.OpCUID2:
		writeCall(b, "cuid2", "", op.Message)
	case ir.OpULID:
		writeCall(b, "ulid", "", op.Message)
	case ir.OpRegex:
		writeCall(b, "regex", regexLiteral(op.Str), op.Message)
	case ir.OpStartsWith:
		writeCall(b, "startsWith", quote(op.Str), op.Message)
	case ir.OpEndsWith:
		writeCall(b, "endsWith", quote(op.Str), op.Message)
	case ir.OpDatetime:
		b.WriteString(".datetime(" + datetimeArg(op) + ")")
	case ir.OpIP:
		b.WriteString(".ip(" + ipArg(op) + ")")
	case ir.OpTrim:
		b.WriteString(".trim()")
	case ir.OpToLowerCase:
		b.WriteString(".toLowerCase()")
	case ir.OpToUpperCase:
		b.WriteString(".toUpperCase()")
	case ir.OpInt:
		writeCall(b, "int", "", op.Message)
	case ir.OpPositive:
		writeCall(b, "positive", "", op.Message)
	case ir.OpNegative:
		writeCall(b, "negative", "", op.Message)
	case ir.OpMultipleOf:
		writeCall(b, "multipleOf", formatNumber(op.Num), op.Message)
	case ir.OpFinite:
		writeCall(b, "finite", "", op.Message)
	case ir.OpSafe:
		writeCall(b, "safe", "", op.Message)
	case ir.OpNonempty:
		writeCall(b, "nonempty", "", op.Message)
	case ir.OpOptional:
		b.WriteString(".optional()")
	case ir.OpNullable:
		b.WriteString(".nullable()")
	case ir.OpNullish:
		b.WriteString(".nullish()")
	case ir.OpDefault:
		b.WriteString(".default(" + literalArg(op.Lit) + ")")
	case ir.OpCatch:
		b.WriteString(".catch(" + literalArg(op.Lit) + ")")
	case ir.OpReadonly:
		b.WriteString(".readonly()")
	}
}

// writeCall emits .name(arg) with the optional custom message appended as a
// trailing string argument.
func writeCall(b *strings.Builder, name, arg, message string) {
	b.WriteString("." + name + "(")
	b.WriteString(arg)
	if message != "" {
		if arg != "" {
			b.WriteString(", ")
		}
		b.WriteString(quote(message))
	}
	b.WriteString(")")
}

// datetimeArg builds the single options argument. The chain takes no second
// message parameter, so a custom message joins the options object.
func datetimeArg(op *ir.Op) string {
	parts := make([]string, 0, 3)
	if op.DatetimeOffset {
		parts = append(parts, "offset: true")
	}
	if op.DatetimePrecision != nil {
		parts = append(parts, "precision: "+formatNumber(float64(*op.DatetimePrecision)))
	}
	if op.Message != "" {
		if len(parts) == 0 {
			return quote(op.Message)
		}
		parts = append(parts, "message: "+quote(op.Message))
	}
	if len(parts) == 0 {
		return ""
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func ipArg(op *ir.Op) string {
	parts := make([]string, 0, 2)
	if op.IPVersion != "" {
		parts = append(parts, "version: "+quote(op.IPVersion))
	}
	if op.Message != "" {
		if len(parts) == 0 {
			return quote(op.Message)
		}
		parts = append(parts, "message: "+quote(op.Message))
	}
	if len(parts) == 0 {
		return ""
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
