package runtime

import (
	"math"
	"strings"

	zodforge "github.com/reoring/zodforge"
	"github.com/reoring/zodforge/i18n"
	"github.com/reoring/zodforge/internal/ir"
)

// applyOp executes one pipeline step against the current value. Checks
// append to iss without short-circuiting; transforms replace the value.
func applyOp(op *ir.Op, val any, iss zodforge.Issues) (any, zodforge.Issues) {
	switch op.Kind {
	case ir.OpOptional, ir.OpNullable, ir.OpNullish, ir.OpDefault, ir.OpCatch, ir.OpReadonly:
		// Wrapper modifiers act before the pipeline, not inside it.
		return val, iss

	case ir.OpTrim:
		if s, ok := val.(string); ok {
			val = strings.TrimSpace(s)
		}
		return val, iss
	case ir.OpToLowerCase:
		if s, ok := val.(string); ok {
			val = strings.ToLower(s)
		}
		return val, iss
	case ir.OpToUpperCase:
		if s, ok := val.(string); ok {
			val = strings.ToUpper(s)
		}
		return val, iss

	case ir.OpMin:
		return val, checkBound(op, val, iss, false)
	case ir.OpMax:
		return val, checkBound(op, val, iss, true)
	case ir.OpLength:
		n, ok := sizeOf(val)
		if !ok {
			return val, iss
		}
		if float64(n) < op.Num {
			return val, appendCheck(iss, op, zodforge.CodeTooShort)
		}
		if float64(n) > op.Num {
			return val, appendCheck(iss, op, zodforge.CodeTooLong)
		}
		return val, iss
	case ir.OpNonempty:
		if n, ok := sizeOf(val); ok && n == 0 {
			return val, appendCheck(iss, op, zodforge.CodeTooSmall)
		}
		return val, iss

	case ir.OpStartsWith:
		if s, ok := val.(string); ok && !strings.HasPrefix(s, op.Str) {
			return val, appendCheck(iss, op, zodforge.CodePattern)
		}
		return val, iss
	case ir.OpEndsWith:
		if s, ok := val.(string); ok && !strings.HasSuffix(s, op.Str) {
			return val, appendCheck(iss, op, zodforge.CodePattern)
		}
		return val, iss
	case ir.OpRegex:
		if s, ok := val.(string); ok && op.Pattern != nil && !op.Pattern.MatchString(s) {
			return val, appendCheck(iss, op, zodforge.CodePattern)
		}
		return val, iss

	case ir.OpEmail, ir.OpURL, ir.OpUUID, ir.OpCUID, ir.OpCUID2, ir.OpULID, ir.OpDatetime, ir.OpIP:
		if s, ok := val.(string); ok && !checkFormat(op, s) {
			return val, appendCheck(iss, op, zodforge.CodeInvalidFormat)
		}
		return val, iss

	case ir.OpInt:
		if f, ok := val.(float64); ok && math.Trunc(f) != f {
			return val, appendCheck(iss, op, zodforge.CodeNotInteger)
		}
		return val, iss
	case ir.OpPositive:
		if f, ok := val.(float64); ok && f <= 0 {
			return val, appendCheck(iss, op, zodforge.CodeTooSmall)
		}
		return val, iss
	case ir.OpNegative:
		if f, ok := val.(float64); ok && f >= 0 {
			return val, appendCheck(iss, op, zodforge.CodeTooBig)
		}
		return val, iss
	case ir.OpFinite:
		if f, ok := val.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return val, appendCheck(iss, op, zodforge.CodeNotFinite)
		}
		return val, iss
	case ir.OpSafe:
		if f, ok := val.(float64); ok && (f < -maxSafeInteger || f > maxSafeInteger) {
			return val, appendCheck(iss, op, zodforge.CodeTooBig)
		}
		return val, iss
	case ir.OpMultipleOf:
		if f, ok := val.(float64); ok && !isMultiple(f, op.Num) {
			return val, appendCheck(iss, op, zodforge.CodeNotMultipleOf)
		}
		return val, iss
	}
	return val, iss
}

const maxSafeInteger = float64(1<<53 - 1)

// isMultiple is float-safe: math.Mod alone misreports cases like 0.3/0.1.
func isMultiple(v, step float64) bool {
	if step == 0 {
		return true
	}
	r := math.Abs(math.Mod(v, step))
	const eps = 1e-9
	return r < eps || math.Abs(r-math.Abs(step)) < eps
}

// checkBound applies min (upper=false) or max (upper=true). Strings measure
// rune count, arrays element count, numbers their value.
func checkBound(op *ir.Op, val any, iss zodforge.Issues, upper bool) zodforge.Issues {
	var n float64
	switch t := val.(type) {
	case float64:
		n = t
	default:
		c, ok := sizeOf(val)
		if !ok {
			return iss
		}
		n = float64(c)
	}
	if upper {
		if n > op.Num {
			code := zodforge.CodeTooBig
			if _, isNum := val.(float64); !isNum {
				code = zodforge.CodeTooLong
			}
			return appendCheck(iss, op, code)
		}
		return iss
	}
	if n < op.Num {
		code := zodforge.CodeTooSmall
		if _, isNum := val.(float64); !isNum {
			code = zodforge.CodeTooShort
		}
		return appendCheck(iss, op, code)
	}
	return iss
}

// sizeOf measures strings in UTF-16 code units, matching the host's length
// semantics (astral-plane characters count as two).
func sizeOf(val any) (int, bool) {
	switch t := val.(type) {
	case string:
		n := 0
		for _, r := range t {
			n++
			if r > 0xFFFF {
				n++
			}
		}
		return n, true
	case []any:
		return len(t), true
	default:
		return 0, false
	}
}

// appendCheck records one failed check, preferring the rule's attached
// message over the dictionary default.
func appendCheck(iss zodforge.Issues, op *ir.Op, code string) zodforge.Issues {
	msg := op.Message
	if msg == "" {
		msg = i18n.T(code, nil)
	}
	return zodforge.AppendIssues(iss, zodforge.Issue{
		Path:    "/",
		Code:    code,
		Message: msg,
	})
}
