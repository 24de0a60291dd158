package symbols

// Constructor describes one data constructor of an algebraic data type.
type Constructor struct {
	Name     string // Qualified constructor name, e.g. "Some"
	TypeName string // The ADT it belongs to, e.g. "Option"
	Arity    int    // Number of fields
}

// Table is the constructor/type table the match compiler consults for
// arity and sole-constructor queries.
type Table struct {
	constructors map[string]*Constructor
	types        map[string][]string // type name -> constructor names, in declaration order
}

func NewTable() *Table {
	return &Table{
		constructors: make(map[string]*Constructor),
		types:        make(map[string][]string),
	}
}

// DefineType registers a type and its constructors. Later definitions of
// the same constructor name win, matching shadowing of redefined types.
func (t *Table) DefineType(typeName string, ctors ...Constructor) {
	names := make([]string, 0, len(ctors))
	for i := range ctors {
		c := ctors[i]
		c.TypeName = typeName
		t.constructors[c.Name] = &c
		names = append(names, c.Name)
	}
	t.types[typeName] = names
}

func (t *Table) Lookup(name string) (*Constructor, bool) {
	c, ok := t.constructors[name]
	return c, ok
}

func (t *Table) IsConstructor(name string) bool {
	_, ok := t.constructors[name]
	return ok
}

// IsSoleConstructor reports whether name is the unique constructor of its
// type, i.e. a product constructor that can never fail to match.
func (t *Table) IsSoleConstructor(name string) bool {
	c, ok := t.constructors[name]
	if !ok {
		return false
	}
	return len(t.types[c.TypeName]) == 1
}

// FieldCount returns the arity of the constructor, or -1 if unknown.
func (t *Table) FieldCount(name string) int {
	c, ok := t.constructors[name]
	if !ok {
		return -1
	}
	return c.Arity
}

// InitBuiltins seeds the prelude types every compilation unit can rely on.
func (t *Table) InitBuiltins() {
	t.DefineType("Option",
		Constructor{Name: "Some", Arity: 1},
		Constructor{Name: "Zero", Arity: 0},
	)
	t.DefineType("Result",
		Constructor{Name: "Ok", Arity: 1},
		Constructor{Name: "Fail", Arity: 1},
	)
	t.DefineType("List",
		Constructor{Name: "Cons", Arity: 2},
		Constructor{Name: "Empty", Arity: 0},
	)
	t.DefineType("Pair",
		Constructor{Name: "Pair", Arity: 2},
	)
}
