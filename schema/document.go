// Package schema holds the declarative document model: the wire-level field
// definitions the compiler consumes. The model is deliberately open — unknown
// type tags, unknown rule tags, and partially-filled params are all legal and
// degrade to permissive behavior downstream.
package schema

// Field is one named entry in a schema document.
type Field struct {
	// ID is an opaque identifier carried through untouched.
	ID string `json:"id" yaml:"id"`
	// Name is the property key. Uniqueness among siblings is a caller
	// invariant; the compiler does not enforce it.
	Name string `json:"name" yaml:"name"`
	// Type is the type tag. Unrecognized tags compile to a permissive
	// validator.
	Type string `json:"type" yaml:"type"`
	// Validations apply in declaration order; order is semantically
	// significant (trim before min measures the trimmed length).
	Validations []Rule `json:"validations" yaml:"validations"`
	Params      Params `json:"params" yaml:"params"`
}

// Rule is a single validation rule attached to a field.
type Rule struct {
	Type    string `json:"type" yaml:"type"`
	Value   string `json:"value" yaml:"value"`
	Message string `json:"message" yaml:"message"`

	// Rule-carried discriminated-union form. The params-carried form is
	// primary; when a union field carries a "discriminatedUnion" rule instead,
	// both resolve through the same recursion.
	Discriminator string          `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	Cases         map[string]Case `json:"cases,omitempty" yaml:"cases,omitempty"`

	// Rarely-used variant payloads kept for wire compatibility.
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty"`
	KeyType   string `json:"keyType,omitempty" yaml:"keyType,omitempty"`
	ValueType string `json:"valueType,omitempty" yaml:"valueType,omitempty"`
}

// Params is the type-specific configuration bag. Which keys are meaningful
// depends on Field.Type; everything else is ignored.
type Params struct {
	// Primitives only; coercion on other tags is ignored.
	Coerce bool `json:"coerce,omitempty" yaml:"coerce,omitempty"`
	// Description renders last, after every validation rule.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// enum / literal
	EnumValues []string `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`

	// union / intersection
	UnionTypes           []string            `json:"unionTypes,omitempty" yaml:"unionTypes,omitempty"`
	IsDiscriminatedUnion bool                `json:"isDiscriminatedUnion,omitempty" yaml:"isDiscriminatedUnion,omitempty"`
	DiscriminatedUnion   *DiscriminatedUnion `json:"discriminatedUnion,omitempty" yaml:"discriminatedUnion,omitempty"`

	// array / set
	ElementType string   `json:"elementType,omitempty" yaml:"elementType,omitempty"`
	IsTuple     bool     `json:"isTuple,omitempty" yaml:"isTuple,omitempty"`
	TupleTypes  []string `json:"tupleTypes,omitempty" yaml:"tupleTypes,omitempty"`

	// record / map
	KeyType   string `json:"keyType,omitempty" yaml:"keyType,omitempty"`
	ValueType string `json:"valueType,omitempty" yaml:"valueType,omitempty"`

	// object openness; IsStrict wins when both are set.
	IsStrict      bool `json:"isStrict,omitempty" yaml:"isStrict,omitempty"`
	IsPassthrough bool `json:"isPassthrough,omitempty" yaml:"isPassthrough,omitempty"`

	// string-format refinements
	StringOptions *StringOptions `json:"stringOptions,omitempty" yaml:"stringOptions,omitempty"`
}

// DiscriminatedUnion names the discriminator key and the case table.
type DiscriminatedUnion struct {
	Discriminator string          `json:"discriminator" yaml:"discriminator"`
	Cases         map[string]Case `json:"cases" yaml:"cases"`
}

// Case is one variant of a discriminated union: the literal the discriminator
// must equal plus the variant's own fields.
type Case struct {
	Value  string  `json:"value" yaml:"value"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// StringOptions refines string-format rules.
type StringOptions struct {
	Datetime *DatetimeOptions `json:"datetime,omitempty" yaml:"datetime,omitempty"`
	IP       *IPOptions       `json:"ip,omitempty" yaml:"ip,omitempty"`
}

// DatetimeOptions parameterizes the datetime rule.
type DatetimeOptions struct {
	// Offset permits ±hh:mm timezone offsets in addition to Z.
	Offset bool `json:"offset,omitempty" yaml:"offset,omitempty"`
	// Precision, when set, requires exactly that many sub-second digits.
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty"`
}

// IPOptions parameterizes the ip rule. Version is "v4" or "v6"; the
// unspecified form defaults to v4 acceptance.
type IPOptions struct {
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}
