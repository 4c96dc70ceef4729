package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/eevee/raidne/engine/things"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerUseHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Architecture "wall" { ... }, Creature "newt" { ... } and Item "potion"
	// { ... } are curried: the id call returns a function taking the table.
	curried := func(class things.Class) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				coll.decls = append(coll.decls, rawDecl{id: id, class: class, table: tbl, file: coll.file})
				return 0
			}))
			return 1
		})
	}
	L.SetGlobal("Architecture", curried(things.Architecture))
	L.SetGlobal("Creature", curried(things.Creature))
	L.SetGlobal("Item", curried(things.Item))

	// Player { ... } takes the table directly; there is only one player.
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.decls = append(coll.decls, rawDecl{id: things.Player.String(), class: things.Creature, table: tbl, file: coll.file})
		return 0
	}))
}

func registerUseHelpers(L *lua.LState) {
	// Heal(10)
	L.SetGlobal("Heal", L.NewFunction(func(L *lua.LState) int {
		amount := L.CheckInt(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(things.UseHeal.String()))
		tbl.RawSetString("amount", lua.LNumber(amount))
		L.Push(tbl)
		return 1
	}))
}
