// Package sema is the semantic analyzer: it walks the parsed AST in
// declaration order, splices includes into the worklist, maintains the
// namespaced type/symbol universe, and validates the type/scope/pipeline
// invariants the shading language's type system requires.
package sema

// TypeKind distinguishes the built-in type families from user-declared
// ones, since only the latter two (attribute block, constant block)
// are subject to the "not a legal block element type" rule.
type TypeKind string

const (
	KindPrimitive TypeKind = "Primitive"
	KindVector    TypeKind = "Vector"
	KindMatrix    TypeKind = "Matrix"
	KindStruct    TypeKind = "Struct"
	KindAttribute TypeKind = "Attribute"
	KindConstant  TypeKind = "Constant"
)

// Attr is one named, typed member of a Type (a vector component, a
// block element, a struct field).
type Attr struct {
	Name      string
	Type      string // type name, resolved within the universe
	ArraySize *int
}

// Signature is one constructor's ordered parameter type list.
type Signature []string

// Type is the fully qualified description of a value category: its
// members, the operators it supports, and its constructors, per
// the grammar's Type node.
type Type struct {
	Name         string
	Kind         TypeKind
	Attrs        []Attr
	AttrIndex    map[string]Attr
	BinaryOps    map[string]bool // "+","-","*","/"
	CompareOps   map[string]bool // "==","!=","<",">","<=",">="
	Constructors []Signature
}

func newType(name string, kind TypeKind) *Type {
	return &Type{Name: name, Kind: kind, AttrIndex: make(map[string]Attr)}
}

func (t *Type) addAttr(name, typ string) {
	a := Attr{Name: name, Type: typ}
	t.Attrs = append(t.Attrs, a)
	t.AttrIndex[name] = a
}

// Attr looks up a named member, reporting whether it exists.
func (t *Type) Attr(name string) (Attr, bool) {
	a, ok := t.AttrIndex[name]
	return a, ok
}

// Universe is the built-in plus user-declared type/texture/function
// environment, threaded explicitly through every checker (never a
// package-level global), per the source's shared-traversal-state
// design note.
type Universe struct {
	Types       map[string]*Type
	typeOrigin  map[string]string // fully qualified name -> first-declaration diagnostic text
	Functions   map[string][]*Func
	Textures    map[string]bool
	conversions map[string]map[string]bool // A -> set of B such that A converts to B
}

// Func is a registered symbol (function) overload.
type Func struct {
	Name       string // fully qualified
	ReturnType string
	Params     []string // parameter type names, in order
	ParamNames []string
	IsBuiltin  bool
}

// NewUniverse builds the built-in type/function environment: primitives,
// vector/matrix families, and the builtin function overload sets.
func NewUniverse() *Universe {
	u := &Universe{
		Types:       make(map[string]*Type),
		typeOrigin:  make(map[string]string),
		Functions:   make(map[string][]*Func),
		Textures:    make(map[string]bool),
		conversions: make(map[string]map[string]bool),
	}
	u.registerPrimitives()
	u.registerVectors()
	u.registerMatrices()
	u.registerConstructorFunctions()
	u.registerBuiltinFunctions()
	return u
}

// registerConstructorFunctions projects every registered Type's
// Constructors into the Functions overload table under the type's own
// name, so a call like Vector3(1.0, 2.0, 3.0) resolves through the same
// overload-matching path as any other symbol call.
func (u *Universe) registerConstructorFunctions() {
	for name, t := range u.Types {
		for _, sig := range t.Constructors {
			params := make([]string, len(sig))
			copy(params, sig)
			u.Functions[name] = append(u.Functions[name], &Func{
				Name: name, ReturnType: name, Params: params, IsBuiltin: true,
			})
		}
	}
}

func (u *Universe) addConversion(a, b string) {
	if u.conversions[a] == nil {
		u.conversions[a] = make(map[string]bool)
	}
	if u.conversions[b] == nil {
		u.conversions[b] = make(map[string]bool)
	}
	u.conversions[a][b] = true
	u.conversions[b][a] = true
}

// ConvertibleTo reports whether a value of type "from" may be used
// where "to" is expected: either the types are identical, or the
// conversion table (symmetric scenario 3) lists the pair.
func (u *Universe) ConvertibleTo(from, to string) bool {
	if from == to {
		return true
	}
	return u.conversions[from][to]
}

func (u *Universe) registerPrimitives() {
	for _, name := range []string{"void", "bool", "int", "uint", "float"} {
		t := newType(name, KindPrimitive)
		u.Types[name] = t
	}
	// Scalar numeric conversions are free within {int, uint, float};
	// bool is isolated .
	for _, a := range []string{"int", "uint", "float"} {
		for _, b := range []string{"int", "uint", "float"} {
			if a != b {
				u.addConversion(a, b)
			}
		}
	}
	u.Types["int"].CompareOps = ops("==", "!=", "<", ">", "<=", ">=")
	u.Types["uint"].CompareOps = ops("==", "!=", "<", ">", "<=", ">=")
	u.Types["float"].CompareOps = ops("==", "!=", "<", ">", "<=", ">=")
	u.Types["bool"].CompareOps = ops("==", "!=")
	u.Types["int"].BinaryOps = ops("+", "-", "*", "/")
	u.Types["uint"].BinaryOps = ops("+", "-", "*", "/")
	u.Types["float"].BinaryOps = ops("+", "-", "*", "/")
}

func ops(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var vectorComponents = []string{"x", "y", "z", "w"}

// registerVectors builds Vector{2,3,4} and their Int/UInt suffixed
// siblings, each with component attributes, arithmetic/comparison
// operators, and a constructor accepting every ordered decomposition of
// its dimension into scalar/lower-dimension-vector pieces.
func (u *Universe) registerVectors() {
	suffixes := []struct {
		suffix string
		scalar string
	}{
		{"", "float"},
		{"Int", "int"},
		{"UInt", "uint"},
	}
	for dim := 2; dim <= 4; dim++ {
		family := make([]string, 0, 3)
		for _, suf := range suffixes {
			name := vectorName(dim, suf.suffix)
			family = append(family, name)
			t := newType(name, KindVector)
			for i := 0; i < dim; i++ {
				t.addAttr(vectorComponents[i], suf.scalar)
			}
			t.BinaryOps = ops("+", "-", "*", "/")
			t.CompareOps = ops("==", "!=")
			t.Constructors = vectorConstructors(dim, suf.scalar)
			u.Types[name] = t
		}
		// Within a dimension, the float/Int/UInt siblings convert freely.
		for i := range family {
			for j := range family {
				if i != j {
					u.addConversion(family[i], family[j])
				}
			}
		}
	}
}

func vectorName(dim int, suffix string) string {
	n := map[int]string{2: "Vector2", 3: "Vector3", 4: "Vector4"}[dim]
	return n + suffix
}

// vectorConstructors enumerates every ordered way to build a vector of
// dimension dim out of scalar and lower-dimension-vector pieces of the
// same family ("every ordered combination").
func vectorConstructors(dim int, scalar string) []Signature {
	suffix := ""
	switch scalar {
	case "int":
		suffix = "Int"
	case "uint":
		suffix = "UInt"
	}
	pieces := map[int]string{1: scalar, 2: vectorName(2, suffix), 3: vectorName(3, suffix)}
	var sigs []Signature
	var build func(remaining int, cur Signature)
	build = func(remaining int, cur Signature) {
		if remaining == 0 {
			sig := make(Signature, len(cur))
			copy(sig, cur)
			sigs = append(sigs, sig)
			return
		}
		for size := 1; size <= remaining && size <= 3; size++ {
			build(remaining-size, append(cur, pieces[size]))
		}
	}
	build(dim, nil)
	return sigs
}

// registerMatrices builds Matrix{2x2,3x3,4x4}, each with "*" defined and
// an implicit conversion to its corresponding vector family.
func (u *Universe) registerMatrices() {
	matrices := []struct {
		name string
		dim  int
	}{
		{"Matrix2x2", 2}, {"Matrix3x3", 3}, {"Matrix4x4", 4},
	}
	for _, m := range matrices {
		t := newType(m.name, KindMatrix)
		t.BinaryOps = ops("*")
		t.Constructors = []Signature{{vectorName(m.dim, "")}}
		u.Types[m.name] = t
		for _, suffix := range []string{"", "Int", "UInt"} {
			u.addConversion(m.name, vectorName(m.dim, suffix))
		}
	}
}

// registerBuiltinFunctions registers max, min, clamp, mix, step,
// smoothstep, length, normalize, dot as builtin overload sets.
// Overloads are generated for float and each Vector{2,3,4}
// (float family), matching "length (float/vec2/vec3/vec4 overloads)";
// normalize and dot get the Vector{2,3,4} overloads only.
func (u *Universe) registerBuiltinFunctions() {
	scalarLike := []string{"float", "Vector2", "Vector3", "Vector4"}

	addBuiltin := func(name, ret string, params ...string) {
		u.Functions[name] = append(u.Functions[name], &Func{
			Name: name, ReturnType: ret, Params: params, IsBuiltin: true,
		})
	}
	for _, t := range scalarLike {
		addBuiltin("max", t, t, t)
		addBuiltin("min", t, t, t)
		addBuiltin("clamp", t, t, t, t)
		addBuiltin("mix", t, t, t, "float")
		addBuiltin("step", t, t, t)
		addBuiltin("smoothstep", t, t, t, t)
		addBuiltin("length", "float", t)
	}
	for _, t := range scalarLike[1:] {
		addBuiltin("normalize", t, t)
		addBuiltin("dot", "float", t, t)
	}
}
