// Package runtime renders a validator description into a live validator.
// Composite validators are interpreted from their children's descriptions,
// so every kind shares one dispatch table with the source renderer's.
package runtime

import (
	"context"
	"math"
	"math/big"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	zodforge "github.com/reoring/zodforge"
	"github.com/reoring/zodforge/i18n"
	"github.com/reoring/zodforge/internal/ir"
)

// V is the executable form of one validator description.
type V struct {
	node *ir.Node
}

var _ zodforge.Validator = (*V)(nil)

// New wraps a description into a live validator.
func New(n *ir.Node) *V { return &V{node: n} }

func (v *V) Parse(ctx context.Context, in any) (any, error) {
	out, iss := parseNode(ctx, v.node, in)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (v *V) Validate(ctx context.Context, in any) error {
	_, iss := parseNode(ctx, v.node, in)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (v *V) Description() (string, bool) {
	if v.node.HasDescription {
		return v.node.Description, true
	}
	return "", false
}

// parseNode runs the wrapper modifiers, the base acceptance check, and the
// ordered pipeline for one node. The returned value carries transforms; on
// failure the Issues enumerate every violated constraint in pipeline order.
func parseNode(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	// Absence handling: default substitutes, optional/nullish pass through.
	if zodforge.IsUndefined(in) {
		if op, ok := n.FindOp(ir.OpDefault); ok {
			return op.Lit.Value(), nil
		}
		if n.HasOp(ir.OpOptional) || n.HasOp(ir.OpNullish) {
			return zodforge.Undefined, nil
		}
	}
	// Null handling: nullable/nullish accept nil before the base check runs,
	// unless the base kind itself models null.
	if in == nil && n.Kind != ir.KindNull && n.Kind != ir.KindAny && n.Kind != ir.KindUnknown {
		if n.HasOp(ir.OpNullable) || n.HasOp(ir.OpNullish) {
			return nil, nil
		}
	}

	val, iss := parseBase(ctx, n, in)
	if len(iss) == 0 {
		// The pipeline keeps running past failing checks: transforms apply
		// even to eventually-rejected values, and every violation reports.
		for i := range n.Ops {
			val, iss = applyOp(&n.Ops[i], val, iss)
		}
	}
	if len(iss) > 0 {
		if op, ok := n.FindOp(ir.OpCatch); ok {
			// catch substitutes on any validation failure, not only absence.
			return op.Lit.Value(), nil
		}
		return nil, iss
	}
	return val, nil
}

// parseBase performs the kind-specific acceptance check and coercion.
func parseBase(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	switch n.Kind {
	case ir.KindAny, ir.KindUnknown:
		return in, nil
	case ir.KindString:
		return parseString(n, in)
	case ir.KindNumber:
		return parseNumber(n, in)
	case ir.KindBoolean:
		return parseBool(n, in)
	case ir.KindDate:
		return parseDate(n, in)
	case ir.KindBigInt:
		return parseBigInt(n, in)
	case ir.KindNull:
		if in == nil {
			return nil, nil
		}
		return nil, invalidType(n, "expected null")
	case ir.KindUndefined, ir.KindVoid:
		if zodforge.IsUndefined(in) {
			return zodforge.Undefined, nil
		}
		return nil, invalidType(n, "expected undefined")
	case ir.KindNever:
		return nil, invalidType(n, "never accepts no value")
	case ir.KindNaN:
		if f, ok := in.(float64); ok && math.IsNaN(f) {
			return f, nil
		}
		return nil, invalidType(n, "expected NaN")
	case ir.KindSymbol:
		// No wire value maps to a symbol.
		return nil, invalidType(n, "expected symbol")
	case ir.KindEnum:
		s, ok := in.(string)
		if !ok {
			return nil, invalidType(n, "expected string")
		}
		for _, e := range n.Enum {
			if s == e {
				return s, nil
			}
		}
		return nil, issueOf(zodforge.CodeInvalidEnum, "")
	case ir.KindLiteral:
		s, ok := in.(string)
		if !ok || s != n.Enum[0] {
			return nil, issueOf(zodforge.CodeInvalidLiteral, "expected '"+n.Enum[0]+"'")
		}
		return s, nil
	case ir.KindArray:
		return parseArray(ctx, n, in)
	case ir.KindTuple:
		return parseTuple(ctx, n, in)
	case ir.KindObject:
		return parseObject(ctx, n, in)
	case ir.KindRecord, ir.KindMap:
		return parseRecord(ctx, n, in)
	case ir.KindSet:
		return parseSet(ctx, n, in)
	case ir.KindUnion:
		return parseUnion(ctx, n, in)
	case ir.KindDiscriminated:
		return parseDiscriminated(ctx, n, in)
	case ir.KindIntersection:
		return parseIntersection(ctx, n, in)
	default:
		return in, nil
	}
}

func parseArray(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	src, ok := in.([]any)
	if !ok {
		return nil, invalidType(n, "expected array")
	}
	out := make([]any, 0, len(src))
	var iss zodforge.Issues
	for i := range src {
		ev, child := parseNode(ctx, n.Elem, src[i])
		if len(child) > 0 {
			iss = zodforge.AppendIssues(iss, zodforge.Rebase("/"+strconv.Itoa(i), child)...)
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func parseTuple(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	src, ok := in.([]any)
	if !ok {
		return nil, invalidType(n, "expected array")
	}
	if len(src) < len(n.Items) {
		return nil, issueOf(zodforge.CodeTooShort, "tuple requires "+strconv.Itoa(len(n.Items))+" elements")
	}
	if len(src) > len(n.Items) {
		return nil, issueOf(zodforge.CodeTooLong, "tuple requires "+strconv.Itoa(len(n.Items))+" elements")
	}
	out := make([]any, 0, len(src))
	var iss zodforge.Issues
	for i := range n.Items {
		ev, child := parseNode(ctx, n.Items[i], src[i])
		if len(child) > 0 {
			iss = zodforge.AppendIssues(iss, zodforge.Rebase("/"+strconv.Itoa(i), child)...)
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func parseObject(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	src, ok := in.(map[string]any)
	if !ok {
		return nil, invalidType(n, "expected object")
	}
	out := make(map[string]any, len(src))
	var iss zodforge.Issues
	known := make(map[string]struct{}, len(n.Fields))

	// Sibling fields validate independently; one field's failure does not
	// stop the others.
	for _, f := range n.Fields {
		known[f.Name] = struct{}{}
		val, exists := src[f.Name]
		if !exists {
			parsed, child := parseNode(ctx, f.Node, zodforge.Undefined)
			if len(child) > 0 {
				iss = zodforge.AppendIssues(iss, zodforge.Issue{
					Path:    "/" + f.Name,
					Code:    zodforge.CodeRequired,
					Message: i18n.T(zodforge.CodeRequired, nil),
				})
				continue
			}
			if !zodforge.IsUndefined(parsed) {
				out[f.Name] = parsed
			}
			continue
		}
		parsed, child := parseNode(ctx, f.Node, val)
		if len(child) > 0 {
			iss = zodforge.AppendIssues(iss, zodforge.Rebase("/"+f.Name, child)...)
			continue
		}
		if !zodforge.IsUndefined(parsed) {
			out[f.Name] = parsed
		}
	}

	// Unknown keys in key-sorted order for deterministic issue selection.
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, ok := known[k]; !ok {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	for _, k := range uks {
		switch n.Unknown {
		case ir.UnknownStrict:
			iss = zodforge.AppendIssues(iss, zodforge.Issue{
				Path:    "/" + k,
				Code:    zodforge.CodeUnknownKey,
				Message: i18n.T(zodforge.CodeUnknownKey, nil),
			})
		case ir.UnknownPassthrough:
			out[k] = src[k]
		default:
			// strip: drop silently
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func parseRecord(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	src, ok := in.(map[string]any)
	if !ok {
		return nil, invalidType(n, "expected object")
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(src))
	var iss zodforge.Issues
	for _, k := range keys {
		if _, child := parseNode(ctx, n.Key, k); len(child) > 0 {
			iss = zodforge.AppendIssues(iss, zodforge.Issue{
				Path:    "/" + k,
				Code:    zodforge.CodeInvalidType,
				Message: i18n.T(zodforge.CodeInvalidType, nil),
				Hint:    "invalid key",
			})
			continue
		}
		parsed, child := parseNode(ctx, n.Value, src[k])
		if len(child) > 0 {
			iss = zodforge.AppendIssues(iss, zodforge.Rebase("/"+k, child)...)
			continue
		}
		out[k] = parsed
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func parseSet(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	src, ok := in.([]any)
	if !ok {
		return nil, invalidType(n, "expected array")
	}
	out := make([]any, 0, len(src))
	seen := make(map[string]struct{}, len(src))
	var iss zodforge.Issues
	for i := range src {
		ev, child := parseNode(ctx, n.Elem, src[i])
		if len(child) > 0 {
			iss = zodforge.AppendIssues(iss, zodforge.Rebase("/"+strconv.Itoa(i), child)...)
			continue
		}
		key := canonicalKey(ev)
		if _, dup := seen[key]; dup {
			iss = zodforge.AppendIssues(iss, zodforge.Issue{
				Path:    "/" + strconv.Itoa(i),
				Code:    zodforge.CodeUniqueness,
				Message: i18n.T(zodforge.CodeUniqueness, nil),
			})
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// canonicalKey derives a set-membership key from a parsed element.
func canonicalKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func parseUnion(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	for _, item := range n.Items {
		if out, child := parseNode(ctx, item, in); len(child) == 0 {
			return out, nil
		}
	}
	return nil, issueOf(zodforge.CodeInvalidUnion, "")
}

func parseDiscriminated(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	src, ok := in.(map[string]any)
	if !ok {
		return nil, invalidType(n, "expected object")
	}
	tag, _ := src[n.Discriminator].(string)
	if tag == "" {
		return nil, zodforge.Issues{{
			Path:    "/" + n.Discriminator,
			Code:    zodforge.CodeDiscriminatorMissing,
			Message: i18n.T(zodforge.CodeDiscriminatorMissing, nil),
		}}
	}
	for _, c := range n.Cases {
		if lit := c.Object.Fields[0].Node; lit.Enum[0] == tag {
			return parseNode(ctx, c.Object, in)
		}
	}
	return nil, zodforge.Issues{{
		Path:    "/" + n.Discriminator,
		Code:    zodforge.CodeDiscriminatorUnknown,
		Message: i18n.T(zodforge.CodeDiscriminatorUnknown, nil),
		Hint:    "unknown variant: '" + tag + "'",
	}}
}

func parseIntersection(ctx context.Context, n *ir.Node, in any) (any, zodforge.Issues) {
	left, iss := parseNode(ctx, n.Items[0], in)
	if len(iss) > 0 {
		return nil, iss
	}
	return parseNode(ctx, n.Items[1], left)
}

// ---- primitive bases ----

func parseString(n *ir.Node, in any) (any, zodforge.Issues) {
	if s, ok := in.(string); ok {
		return s, nil
	}
	if !n.Coerce {
		return nil, invalidType(n, "expected string")
	}
	switch t := in.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return formatFloat(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case json.Number:
		return t.String(), nil
	default:
		return nil, invalidType(n, "expected string-coercible value")
	}
}

func parseNumber(n *ir.Node, in any) (any, zodforge.Issues) {
	if f, ok := numericValue(in); ok {
		if math.IsNaN(f) {
			return nil, invalidType(n, "expected number")
		}
		return f, nil
	}
	if !n.Coerce {
		return nil, invalidType(n, "expected number")
	}
	switch t := in.(type) {
	case nil:
		return float64(0), nil
	case bool:
		if t {
			return float64(1), nil
		}
		return float64(0), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, invalidType(n, "expected numeric string")
		}
		return f, nil
	default:
		return nil, invalidType(n, "expected number")
	}
}

// numericValue normalizes the wire-level numeric shapes to float64.
func numericValue(in any) (float64, bool) {
	switch t := in.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func parseBool(n *ir.Node, in any) (any, zodforge.Issues) {
	if b, ok := in.(bool); ok {
		return b, nil
	}
	if !n.Coerce {
		return nil, invalidType(n, "expected boolean")
	}
	// Absence coerces like the host's Boolean(undefined).
	if zodforge.IsUndefined(in) {
		return false, nil
	}
	// Truthiness of the wire scalars.
	switch t := in.(type) {
	case nil:
		return false, nil
	case string:
		return t != "", nil
	case float64:
		return t != 0 && !math.IsNaN(t), nil
	case int:
		return t != 0, nil
	case int64:
		return t != 0, nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		return err == nil && f != 0, nil
	default:
		return true, nil
	}
}

func parseDate(n *ir.Node, in any) (any, zodforge.Issues) {
	if t, ok := in.(time.Time); ok {
		return t, nil
	}
	if !n.Coerce {
		return nil, invalidType(n, "expected date")
	}
	switch t := in.(type) {
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts, nil
		}
		if ts, err := time.Parse("2006-01-02", t); err == nil {
			return ts, nil
		}
		return nil, issueOf(zodforge.CodeInvalidDate, "")
	case float64:
		// epoch milliseconds
		sec := int64(t) / 1000
		ms := int64(t) % 1000
		return time.Unix(sec, ms*int64(time.Millisecond)).UTC(), nil
	case int64:
		return time.Unix(t/1000, (t%1000)*int64(time.Millisecond)).UTC(), nil
	default:
		return nil, issueOf(zodforge.CodeInvalidDate, "")
	}
}

func parseBigInt(n *ir.Node, in any) (any, zodforge.Issues) {
	switch t := in.(type) {
	case *big.Int:
		return t, nil
	case int:
		return big.NewInt(int64(t)), nil
	case int64:
		return big.NewInt(t), nil
	}
	if !n.Coerce {
		return nil, invalidType(n, "expected bigint")
	}
	switch t := in.(type) {
	case string:
		if b, ok := new(big.Int).SetString(t, 10); ok {
			return b, nil
		}
	case float64:
		if math.Trunc(t) == t && !math.IsInf(t, 0) {
			b, _ := big.NewFloat(t).Int(nil)
			return b, nil
		}
	case json.Number:
		if b, ok := new(big.Int).SetString(t.String(), 10); ok {
			return b, nil
		}
	}
	return nil, invalidType(n, "expected bigint-coercible value")
}

// ---- issue helpers ----

func invalidType(_ *ir.Node, hint string) zodforge.Issues {
	return zodforge.Issues{{
		Path:    "/",
		Code:    zodforge.CodeInvalidType,
		Message: i18n.T(zodforge.CodeInvalidType, nil),
		Hint:    hint,
	}}
}

func issueOf(code, hint string) zodforge.Issues {
	return zodforge.Issues{{
		Path:    "/",
		Code:    code,
		Message: i18n.T(code, nil),
		Hint:    hint,
	}}
}

// formatFloat mirrors the canonical JSON-like float formatting.
func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
