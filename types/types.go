// Package types implements the M language's closed primitive type set and
// the predicates and relations defined over it: numeric/integer/float
// classification, assignability, comparability and explicit-cast
// admissibility.
package types

// Kind enumerates the closed set of primitive types. Unknown is the
// bottom type used only during error recovery: it propagates through
// every predicate below without raising a cascading diagnostic.
type Kind int

const (
	I8 Kind = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Bool
	String
	Void
	Unknown
)

var names = [...]string{
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	F32: "f32", F64: "f64",
	Bool: "bool", String: "string", Void: "void", Unknown: "unknown",
}

// Type is a resolved primitive type.
type Type struct {
	Kind Kind
}

func New(k Kind) Type { return Type{Kind: k} }

func (t Type) String() string {
	if int(t.Kind) < 0 || int(t.Kind) >= len(names) {
		return "invalid"
	}
	return names[t.Kind]
}

var (
	TI8     = Type{I8}
	TI16    = Type{I16}
	TI32    = Type{I32}
	TI64    = Type{I64}
	TU8     = Type{U8}
	TU16    = Type{U16}
	TU32    = Type{U32}
	TU64    = Type{U64}
	TF32    = Type{F32}
	TF64    = Type{F64}
	TBool   = Type{Bool}
	TString = Type{String}
	TVoid   = Type{Void}
	TUnk    = Type{Unknown}
)

// FromName resolves a type keyword from the §6.1 grammar to its Type, or
// false if name is not one of the grammar's type tokens.
func FromName(name string) (Type, bool) {
	switch name {
	case "i8":
		return TI8, true
	case "i16":
		return TI16, true
	case "i32":
		return TI32, true
	case "i64":
		return TI64, true
	case "u8":
		return TU8, true
	case "u16":
		return TU16, true
	case "u32":
		return TU32, true
	case "u64":
		return TU64, true
	case "f32":
		return TF32, true
	case "f64":
		return TF64, true
	case "bool":
		return TBool, true
	case "string":
		return TString, true
	case "void":
		return TVoid, true
	default:
		return TUnk, false
	}
}

// IsInteger reports whether t is any signed or unsigned integer width.
func (t Type) IsInteger() bool {
	switch t.Kind {
	case I8, I16, I32, I64, U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

// IsSignedInteger reports whether t is a signed integer width.
func (t Type) IsSignedInteger() bool {
	switch t.Kind {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is a 32- or 64-bit float.
func (t Type) IsFloat() bool {
	return t.Kind == F32 || t.Kind == F64
}

// IsNumeric reports whether t is an integer or a float.
func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// IsUnknown reports whether t is the bottom type.
func (t Type) IsUnknown() bool { return t.Kind == Unknown }

// integerWidth returns the bit width of an integer Kind.
func integerWidth(k Kind) int {
	switch k {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64:
		return 64
	default:
		return 0
	}
}

// floatWidth returns the bit width of a float Kind.
func floatWidth(k Kind) int {
	switch k {
	case F32:
		return 32
	case F64:
		return 64
	default:
		return 0
	}
}

// Assignable holds iff target == source, either side is unknown, or both
// are numeric and the conversion is a widening one: integer -> integer of
// equal or greater width (signedness is not compared), float -> wider
// float, integer -> any float. Narrowing and
// float -> integer conversions are never implicitly assignable; they
// require an explicit cast (see CastAdmissible).
func Assignable(target, source Type) bool {
	if target == source {
		return true
	}
	if target.IsUnknown() || source.IsUnknown() {
		return true
	}
	if !target.IsNumeric() || !source.IsNumeric() {
		return false
	}
	if target.IsFloat() {
		if source.IsFloat() {
			return floatWidth(target.Kind) >= floatWidth(source.Kind)
		}
		// integer -> float is always permitted, any width.
		return true
	}
	// target is an integer: only integer -> wider-or-equal integer widens.
	if !source.IsInteger() {
		return false
	}
	return integerWidth(target.Kind) >= integerWidth(source.Kind)
}

// Comparable holds for equal types, or when both operands are numeric.
func Comparable(a, b Type) bool {
	if a == b {
		return true
	}
	if a.IsUnknown() || b.IsUnknown() {
		return true
	}
	return a.IsNumeric() && b.IsNumeric()
}

// CastAdmissible holds for an explicit "(e as : T)" cast: identity, either
// side unknown, or both numeric.
func CastAdmissible(from, to Type) bool {
	if from == to {
		return true
	}
	if from.IsUnknown() || to.IsUnknown() {
		return true
	}
	return from.IsNumeric() && to.IsNumeric()
}

// Widen computes the result type of a binary arithmetic operation over two
// numeric operand types: any f64 -> f64, else any f32 -> f32, else any
// i64/u64 -> i64, else i32. Callers must have already verified both
// operands are numeric.
func Widen(a, b Type) Type {
	if a.Kind == F64 || b.Kind == F64 {
		return TF64
	}
	if a.Kind == F32 || b.Kind == F32 {
		return TF32
	}
	if a.Kind == I64 || b.Kind == I64 || a.Kind == U64 || b.Kind == U64 {
		return TI64
	}
	return TI32
}
