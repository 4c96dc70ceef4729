package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/eevee/raidne/engine/things"
)

// newTestVM returns a sandboxed VM with the content API registered.
func newTestVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{file: "test.lua"}
	registerAPI(L, coll)
	return L, coll
}

func TestDefault_MatchesBuiltins(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	builtin := things.DefaultCatalog()
	for _, k := range things.Kinds() {
		assert.Equal(t, builtin.Prototype(k), cat.Prototype(k), "kind %v", k)
	}
}

func TestLoad_Directory(t *testing.T) {
	cat, err := Load("testdata/basic")
	require.NoError(t, err)

	newt := cat.Prototype(things.Newt)
	assert.Equal(t, "giant newt", newt.Name)
	assert.Equal(t, 'N', newt.Glyph)
	assert.Equal(t, 6, newt.MaxHealth)
	assert.Equal(t, 2, newt.Attack)
	assert.Equal(t, 3, newt.SpawnWeight)

	potion := cat.Prototype(things.Potion)
	assert.Equal(t, "elixir", potion.Name)
	require.NotNil(t, potion.Use)
	assert.Equal(t, things.Use{Effect: things.UseHeal, Amount: 12}, *potion.Use)

	// Untouched kinds keep the built-in values.
	assert.Equal(t, things.DefaultCatalog().Prototype(things.Player), cat.Prototype(things.Player))

	// Things made from the catalog carry the loaded stats.
	th := cat.New(things.Newt)
	assert.Equal(t, 6, th.Health().Current)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("testdata/bad")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	require.Len(t, ve.Errors, 3, "errors: %q", ve.Errors)
	assert.Contains(t, ve.Errors[0], `creature "dragon": unknown kind`)
	assert.Contains(t, ve.Errors[1], "use must be a capability")
	assert.Contains(t, ve.Errors[2], "newt: max health must be positive")
}

func TestLoad_MissingOrEmptyDirectory(t *testing.T) {
	_, err := Load("testdata/nope")
	assert.Error(t, err)

	_, err = Load("testdata/empty")
	assert.ErrorContains(t, err, "no .lua files")
}

func TestLoadString(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		check func(t *testing.T, cat *things.Catalog)
	}{
		{
			name: "player override",
			src:  `Player { health = 30, attack = 5 }`,
			check: func(t *testing.T, cat *things.Catalog) {
				p := cat.Prototype(things.Player)
				assert.Equal(t, 30, p.MaxHealth)
				assert.Equal(t, 5, p.Attack)
				assert.Equal(t, "you", p.Name, "unset fields keep their old value")
			},
		},
		{
			name: "architecture glyph",
			src:  `Architecture "wall" { glyph = "#" }`,
			check: func(t *testing.T, cat *things.Catalog) {
				assert.Equal(t, '#', cat.Prototype(things.Wall).Glyph)
			},
		},
		{
			name: "later declaration wins",
			src: `
				Creature "newt" { spawn_weight = 1 }
				Creature "newt" { spawn_weight = 7 }
			`,
			check: func(t *testing.T, cat *things.Catalog) {
				assert.Equal(t, 7, cat.Prototype(things.Newt).SpawnWeight)
			},
		},
		{
			name: "use removed",
			src:  `Item "potion" { use = false }`,
			check: func(t *testing.T, cat *things.Catalog) {
				assert.Nil(t, cat.Prototype(things.Potion).Use)
			},
		},
		{
			name: "stop spawning",
			src:  `Creature "newt" { spawn_weight = 0 }`,
			check: func(t *testing.T, cat *things.Catalog) {
				assert.Len(t, cat.Spawnable(things.Creature), 0)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := LoadString("test.lua", tt.src)
			require.NoError(t, err)
			tt.check(t, cat)
		})
	}
}

func TestLoadString_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"wrong class", `Item "newt" {}`, "newt is a creature"},
		{"long glyph", `Item "potion" { glyph = "!!" }`, "glyph must be a single character"},
		{"fractional health", `Creature "newt" { health = 2.5 }`, "health must be a whole number"},
		{"string attack", `Creature "newt" { attack = "lots" }`, "attack must be a whole number"},
		{"empty name", `Architecture "wall" { name = "" }`, "name is required"},
		{"player spawning", `Player { spawn_weight = 1 }`, "the player cannot spawn"},
		{"negative heal", `Item "potion" { use = Heal(-3) }`, "use amount must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadString("test.lua", tt.src)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			require.NotEmpty(t, ve.Errors)
			assert.Contains(t, ve.Errors[0], tt.want)
		})
	}
}

func TestLoadString_Warnings(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()
	require.NoError(t, L.DoString(`
		Creature "newt" { colour = "green" }
		Creature "newt" {}
	`))
	_, ve := compile(coll)
	assert.Empty(t, ve.Errors)
	assert.Len(t, ve.Warnings, 2, "warnings: %q", ve.Warnings)
}

func TestLoadString_SyntaxError(t *testing.T) {
	_, err := LoadString("broken.lua", `Creature "newt" {`)
	assert.ErrorContains(t, err, "executing broken.lua")
}

func TestSandbox(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	for _, src := range []string{
		`os.execute("echo pwned")`,
		`io.open("/etc/passwd")`,
		`dofile("x.lua")`,
		`require("os")`,
		`math.random(6)`,
	} {
		assert.Error(t, L.DoString(src), "sandbox should block %s", src)
	}
	assert.NoError(t, L.DoString(`local x = math.floor(string.len("abc") / 2)`))
}
