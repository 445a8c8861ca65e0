package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua content constructors as globals.
// All named constructors are curried: Class("Warrior") returns a function
// that takes the definition table.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Class", namedConstructor(L, &coll.classes))
	L.SetGlobal("Item", namedConstructor(L, &coll.items))
	L.SetGlobal("Enemy", namedConstructor(L, &coll.enemies))
	L.SetGlobal("Stage", namedConstructor(L, &coll.stages))
}

// namedConstructor builds a curried Lua global collecting (name, table)
// pairs into dst.
func namedConstructor(L *lua.LState, dst *[]rawNamed) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			*dst = append(*dst, rawNamed{name: name, table: tbl})
			return 0
		}))
		return 1
	})
}
