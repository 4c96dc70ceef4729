// Package loader loads Lua content into a things.Catalog. The Lua VM only
// lives while loading; nothing runs Lua during play.
package loader

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/eevee/raidne/engine/things"
)

//go:embed content/*.lua
var defaultContent embed.FS

// collector accumulates Lua declarations during file execution.
type collector struct {
	decls []rawDecl
	file  string
}

// Default compiles the built-in content.
func Default() (*things.Catalog, error) {
	return load(nil)
}

// Load compiles the built-in content followed by every .lua file in dir, in
// name order. A later declaration of a kind replaces an earlier one.
func Load(dir string) (*things.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	sort.Strings(luaFiles)

	return load(func(L *lua.LState, coll *collector) error {
		for _, path := range luaFiles {
			coll.file = filepath.Base(path)
			if err := L.DoFile(path); err != nil {
				return fmt.Errorf("executing %s: %w", coll.file, err)
			}
		}
		return nil
	})
}

// LoadString compiles the built-in content followed by src. name is used in
// messages.
func LoadString(name, src string) (*things.Catalog, error) {
	return load(func(L *lua.LState, coll *collector) error {
		coll.file = name
		if err := L.DoString(src); err != nil {
			return fmt.Errorf("executing %s: %w", name, err)
		}
		return nil
	})
}

// load runs the built-in content, then extra, and compiles the result.
func load(extra func(*lua.LState, *collector) error) (*things.Catalog, error) {
	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	files, err := fs.Glob(defaultContent, "content/*.lua")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		src, err := defaultContent.ReadFile(f)
		if err != nil {
			return nil, err
		}
		coll.file = filepath.Base(f)
		if err := L.DoString(string(src)); err != nil {
			return nil, fmt.Errorf("executing built-in %s: %w", coll.file, err)
		}
	}
	if extra != nil {
		if err := extra(L, coll); err != nil {
			return nil, err
		}
	}

	protos, ve := compile(coll)
	return validate(protos, ve)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content must not touch the dungeon's seeded randomness.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
