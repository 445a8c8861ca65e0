// Package loader loads Lua game content into Go structs at load time.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/fablecore/engine/state"
	lua "github.com/yuin/gopher-lua"
)

//go:embed content/game.lua
var defaultContent string

// collector accumulates Lua definitions during file execution.
type collector struct {
	game    *lua.LTable
	classes []rawNamed
	items   []rawNamed
	enemies []rawNamed
	stages  []rawNamed
}

// rawNamed holds a named Lua table before compilation.
type rawNamed struct {
	name  string
	table *lua.LTable
}

// source is one named chunk of Lua content.
type source struct {
	name string
	data string
}

// LoadDefault compiles the content embedded in the binary.
func LoadDefault() (*state.Defs, error) {
	return loadSources([]source{{name: "content/game.lua", data: defaultContent}})
}

// Load reads all .lua files from dir, compiles them into game definitions,
// validates references, and returns the immutable Defs.
func Load(dir string) (*state.Defs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	sortLuaFiles(names)

	var sources []source
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		sources = append(sources, source{name: name, data: string(data)})
	}
	return loadSources(sources)
}

func loadSources(sources []source) (*state.Defs, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, src := range sources {
		if err := L.DoString(src.data); err != nil {
			return nil, fmt.Errorf("executing %s: %w", src.name, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game content: %w", err)
	}
	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// sortLuaFiles orders game.lua first, the rest alphabetically.
func sortLuaFiles(names []string) {
	sort.Slice(names, func(i, j int) bool {
		if names[i] == "game.lua" {
			return true
		}
		if names[j] == "game.lua" {
			return false
		}
		return names[i] < names[j]
	})
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
