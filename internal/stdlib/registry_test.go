package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocl/internal/symbols"
	"ocl/internal/types"
)

func exportNames(exports []symbols.Export) []string {
	names := make([]string, len(exports))
	for i, e := range exports {
		names[i] = e.Name
	}
	return names
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"math", "string", "time"}, r.Modules())

	math, err := r.Resolve("math")
	require.NoError(t, err)
	// порядок экспорта совпадает с порядком в каталоге
	assert.Equal(t, []string{"add", "sub", "mul", "div"}, exportNames(math)[:4])

	in := types.NewInterner()
	byName := make(map[string]symbols.Export)
	for _, e := range math {
		byName[e.Name] = e
	}
	for name, want := range map[string]string{
		"div":   "fn(float, int) -> float",
		"sqrt":  "fn(float) -> float",
		"round": "fn(float) -> int",
		"pi":    "float",
	} {
		id, err := in.ParseSignature(byName[name].Signature)
		require.NoError(t, err, name)
		assert.Equal(t, want, in.Format(id), name)
	}
	assert.True(t, byName["e"].IsConstant())
	assert.False(t, byName["sin"].IsConstant())
}

func TestResolveUnknownModule(t *testing.T) {
	_, err := Default().Resolve("network")
	require.ErrorIs(t, err, ErrModuleNotFound)
	assert.Contains(t, err.Error(), "network")
}

func TestResolveReturnsCopy(t *testing.T) {
	r := Default()
	first, err := r.Resolve("string")
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := r.Resolve("string")
	require.NoError(t, err)
	assert.Equal(t, "len", second[0].Name)
}

func TestWithUserModules(t *testing.T) {
	r, err := Default().With(map[string][]symbols.Export{
		"geometry": {
			{Name: "area", Signature: "(float, float) -> float"},
			{Name: "unit", Signature: "float"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, r.Modules(), "geometry")

	exports, err := r.Resolve("geometry")
	require.NoError(t, err)
	assert.Equal(t, []string{"area", "unit"}, exportNames(exports))

	_, err = Default().Resolve("geometry")
	assert.ErrorIs(t, err, ErrModuleNotFound, "With must not mutate the base registry")
}

func TestWithRejectsBadSignature(t *testing.T) {
	_, err := Default().With(map[string][]symbols.Export{
		"broken": {{Name: "f", Signature: "(matrix) -> int"}},
	})
	require.ErrorIs(t, err, types.ErrBadSignature)
	assert.Contains(t, err.Error(), "broken.f")
}

func TestParseCatalog(t *testing.T) {
	r, err := Parse([]byte(`
[modules.io]
write = "(string) -> void"
read = "() -> string"

[modules.empty]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"empty", "io"}, r.Modules())

	io, err := r.Resolve("io")
	require.NoError(t, err)
	assert.Equal(t, []string{"write", "read"}, exportNames(io))

	empty, err := r.Resolve("empty")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = Parse([]byte("[modules.x]\nf = \"(int\""))
	require.Error(t, err)

	_, err = Parse([]byte("[modules"))
	require.Error(t, err)
}
