// Package ir defines the validator description tree shared by the runtime
// and source renderers. A node is built once per field and consumed by both,
// so parity between the two renderings is structural: whatever one backend
// sees, the other sees too.
package ir

import (
	"math/big"
	"regexp"
)

// Kind identifies the base shape of a node.
type Kind int

const (
	KindAny Kind = iota // permissive fallback plus the "any" tag
	KindString
	KindNumber
	KindBoolean
	KindDate
	KindBigInt
	KindNull
	KindUndefined
	KindVoid
	KindNever
	KindNaN
	KindSymbol
	KindUnknown
	KindEnum
	KindLiteral
	KindArray
	KindTuple
	KindObject
	KindRecord
	KindMap
	KindSet
	KindUnion
	KindDiscriminated
	KindIntersection
)

// Category is the structural family rule gating operates on.
type Category int

const (
	CatOther Category = iota
	CatString
	CatNumber
	CatArray
)

// CategoryOf maps a kind to the category its size/format rules act on.
// Enum, literal, and tuple kinds stay CatOther: their rendered constructors
// expose no size or format chain, so size-class rules must not attach.
func CategoryOf(k Kind) Category {
	switch k {
	case KindString:
		return CatString
	case KindNumber:
		return CatNumber
	case KindArray:
		return CatArray
	default:
		return CatOther
	}
}

// UnknownPolicy mirrors the object openness modes.
type UnknownPolicy int

const (
	UnknownStrip UnknownPolicy = iota
	UnknownStrict
	UnknownPassthrough
)

// Node is one validator description. Exactly the fields relevant to Kind are
// populated; the ordered Ops pipeline and Description apply to every kind.
type Node struct {
	Kind   Kind
	Coerce bool // primitives only

	// enum values; for KindLiteral the single literal sits at index 0.
	Enum []string

	Elem  *Node   // array/set element
	Items []*Node // tuple members, union members, intersection operands (two)

	Key   *Node // record/map key
	Value *Node // record/map value

	Fields  []Field // object shape, declaration order
	Unknown UnknownPolicy

	// discriminated union: Cases in deterministic (sorted) order, each an
	// object node whose discriminator field is a literal.
	Discriminator string
	Cases         []Case

	// Ops is the validation pipeline in declaration order. Rules whose
	// category does not match the node never make it in here.
	Ops []Op

	Description    string
	HasDescription bool
}

// Field is a named member of an object node.
type Field struct {
	Name string
	Node *Node
}

// Case is one discriminated-union variant.
type Case struct {
	Name   string // case key, used only for deterministic ordering
	Object *Node  // KindObject including the literal discriminator field
}

// OpKind identifies one pipeline step.
type OpKind int

const (
	OpMin OpKind = iota
	OpMax
	OpLength
	OpEmail
	OpURL
	OpUUID
	OpCUID
	OpCUID2
	OpULID
	OpRegex
	OpStartsWith
	OpEndsWith
	OpDatetime
	OpIP
	OpTrim
	OpToLowerCase
	OpToUpperCase
	OpInt
	OpPositive
	OpNegative
	OpMultipleOf
	OpFinite
	OpSafe
	OpNonempty
	OpOptional
	OpNullable
	OpNullish
	OpDefault
	OpCatch
	OpReadonly
)

// Op is one resolved pipeline step. Arguments are parsed and compiled at
// build time so both renderers work from identical data.
type Op struct {
	Kind    OpKind
	Num     float64        // size/bound/multipleOf argument
	Str     string         // startsWith/endsWith literal, raw regex source
	Pattern *regexp.Regexp // compiled regex (OpRegex)
	Message string         // attached violation text, empty for dictionary default

	// Pre-coerced default/catch payload (OpDefault, OpCatch).
	Lit *Literal

	// Datetime acceptance options (OpDatetime).
	DatetimeOffset    bool
	DatetimePrecision *int

	// "v4" or "v6" (OpIP).
	IPVersion string
}

// LiteralKind tags a default/catch payload with its coerced shape.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitBool
	LitBigInt
)

// Literal is a default/catch payload coerced per the field's declared type.
type Literal struct {
	Kind LiteralKind
	Str  string
	Num  float64
	Bool bool
	Big  *big.Int
}

// Value returns the runtime value the literal substitutes.
func (l *Literal) Value() any {
	switch l.Kind {
	case LitNumber:
		return l.Num
	case LitBool:
		return l.Bool
	case LitBigInt:
		return l.Big
	default:
		return l.Str
	}
}

// HasOp reports whether the pipeline carries at least one op of kind k.
func (n *Node) HasOp(k OpKind) bool {
	for i := range n.Ops {
		if n.Ops[i].Kind == k {
			return true
		}
	}
	return false
}

// FindOp returns the first op of kind k.
func (n *Node) FindOp(k OpKind) (*Op, bool) {
	for i := range n.Ops {
		if n.Ops[i].Kind == k {
			return &n.Ops[i], true
		}
	}
	return nil, false
}
