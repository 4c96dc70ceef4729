package loader

import (
	"fmt"
	"sort"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/eevee/raidne/engine/things"
)

// rawDecl holds one declaration before compilation.
type rawDecl struct {
	id    string
	class things.Class
	table *lua.LTable
	file  string
}

func (d rawDecl) String() string {
	return fmt.Sprintf("%s: %s %q", d.file, d.class, d.id)
}

// knownFields lists the fields each class understands.
var knownFields = map[things.Class]map[string]bool{
	things.Architecture: {"name": true, "glyph": true},
	things.Creature:     {"name": true, "glyph": true, "health": true, "attack": true, "spawn_weight": true},
	things.Item:         {"name": true, "glyph": true, "spawn_weight": true, "use": true},
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) (string, bool) {
	s, ok := tbl.RawGetString(key).(lua.LString)
	return string(s), ok
}

// getInt returns an integer field from a Lua table and whether it was set.
// A set field that is not a whole number is an error.
func getInt(tbl *lua.LTable, key string) (int, bool, error) {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return 0, false, nil
	}
	n, ok := v.(lua.LNumber)
	if !ok || float64(n) != float64(int(n)) {
		return 0, false, fmt.Errorf("%s must be a whole number, got %s", key, v.Type())
	}
	return int(n), true, nil
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	t, _ := tbl.RawGetString(key).(*lua.LTable)
	return t
}

// compile turns the declarations into prototypes, starting each from the
// built-in prototype of its kind. Later declarations of a kind replace
// earlier ones field by field.
func compile(coll *collector) ([]things.Prototype, *ValidationError) {
	ve := &ValidationError{}
	base := things.DefaultCatalog()
	protos := map[things.Kind]things.Prototype{}
	seen := map[things.Kind]string{}

	for _, d := range coll.decls {
		kind, ok := things.KindByName(d.id)
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown kind", d))
			continue
		}
		if kind.Class() != d.class {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s is a %s", d, d.id, kind.Class()))
			continue
		}
		if file, dup := seen[kind]; dup && file == d.file {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s: declared more than once in %s", d, file))
		}
		seen[kind] = d.file

		p, ok := protos[kind]
		if !ok {
			p = base.Prototype(kind)
		}
		p, errs := compileDecl(d, p)
		if len(errs) > 0 {
			ve.Errors = append(ve.Errors, errs...)
			continue
		}
		d.table.ForEach(func(k, _ lua.LValue) {
			if ks, ok := k.(lua.LString); !ok || !knownFields[d.class][string(ks)] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s: unknown field %s", d, k))
			}
		})
		protos[kind] = p
	}

	out := make([]things.Prototype, 0, len(protos))
	for _, p := range protos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out, ve
}

// compileDecl overlays the fields set in d onto p.
func compileDecl(d rawDecl, p things.Prototype) (things.Prototype, []string) {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, d.String()+": "+fmt.Sprintf(format, args...))
	}

	if name, ok := getString(d.table, "name"); ok {
		p.Name = name
	}
	if glyph, ok := getString(d.table, "glyph"); ok {
		if utf8.RuneCountInString(glyph) != 1 {
			fail("glyph must be a single character, got %q", glyph)
		} else {
			p.Glyph, _ = utf8.DecodeRuneInString(glyph)
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"health", &p.MaxHealth},
		{"attack", &p.Attack},
		{"spawn_weight", &p.SpawnWeight},
	}
	for _, f := range ints {
		if !knownFields[d.class][f.key] {
			continue
		}
		n, ok, err := getInt(d.table, f.key)
		if err != nil {
			fail("%v", err)
			continue
		}
		if ok {
			*f.dst = n
		}
	}

	if v := d.table.RawGetString("use"); v != lua.LNil && d.class == things.Item {
		use, err := compileUse(d.table)
		if err != nil {
			fail("%v", err)
		} else {
			p.Use = use
		}
	}
	return p, errs
}

// compileUse reads a capability built by a helper such as Heal(10). The
// value false removes the capability.
func compileUse(tbl *lua.LTable) (*things.Use, error) {
	if tbl.RawGetString("use") == lua.LFalse {
		return nil, nil
	}
	t := getTable(tbl, "use")
	if t == nil {
		return nil, fmt.Errorf("use must be a capability such as Heal(10)")
	}
	typ, _ := getString(t, "type")
	amount, _, err := getInt(t, "amount")
	if err != nil {
		return nil, err
	}
	switch typ {
	case things.UseHeal.String():
		return &things.Use{Effect: things.UseHeal, Amount: amount}, nil
	default:
		return nil, fmt.Errorf("unknown capability %q", typ)
	}
}
