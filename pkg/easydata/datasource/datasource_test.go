package datasource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-easydata/pkg/easydata"
)

func TestFromJSON(t *testing.T) {
	v, err := FromJSON(strings.NewReader(`{
		"zeta": 1,
		"alpha": [1.5, "x", true, null, {"n": -3}],
		"mid": {"b": 2, "a": 1}
	}`))
	require.NoError(t, err)

	obj, ok := v.(*easydata.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	zeta, _ := obj.Get("zeta")
	assert.Equal(t, int64(1), zeta)

	alpha, _ := obj.Get("alpha")
	assert.Equal(t, []interface{}{1.5, "x", true, nil, easydata.ObjectOf("n", int64(-3))}, alpha)

	mid, _ := obj.Get("mid")
	assert.Equal(t, []string{"b", "a"}, mid.(*easydata.Object).Keys())
}

func TestFromJSONErrors(t *testing.T) {
	for _, input := range []string{``, `{"a": }`, `{"a": 1} {"b": 2}`, `[1, 2`} {
		_, err := FromJSON(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}

	v, err := FromJSON(strings.NewReader(`"just text"`))
	require.NoError(t, err)
	assert.Equal(t, "just text", v)
}

func TestFromYAML(t *testing.T) {
	v, err := FromYAML(strings.NewReader(`
Name: Horst
Hobbys:
  - Tanzen
  - Schlafen
friends:
  Emil: &gera
    city: Gera
    distance: 90
  Klaus: *gera
ratio: 0.5
married: false
`))
	require.NoError(t, err)

	obj := v.(*easydata.Object)
	assert.Equal(t, []string{"Name", "Hobbys", "friends", "ratio", "married"}, obj.Keys())

	hobbys, _ := obj.Get("Hobbys")
	assert.Equal(t, []interface{}{"Tanzen", "Schlafen"}, hobbys)

	friends, _ := obj.Get("friends")
	emil, _ := friends.(*easydata.Object).Get("Emil")
	klaus, _ := friends.(*easydata.Object).Get("Klaus")
	assert.Equal(t, easydata.ObjectOf("city", "Gera", "distance", int64(90)), emil)
	assert.Equal(t, emil, klaus)

	ratio, _ := obj.Get("ratio")
	assert.Equal(t, 0.5, ratio)
	married, _ := obj.Get("married")
	assert.Equal(t, false, married)
}

func TestFromYAMLMerge(t *testing.T) {
	v, err := FromYAML(strings.NewReader(`
base: &base
  city: Berlin
  distance: 250
Heinz:
  <<: *base
  distance: 251
Franz:
  name: Franz
  <<: [*base]
`))
	require.NoError(t, err)

	obj := v.(*easydata.Object)
	heinz, _ := obj.Get("Heinz")
	assert.Equal(t, easydata.ObjectOf("city", "Berlin", "distance", int64(251)), heinz)

	franz, _ := obj.Get("Franz")
	assert.Equal(t, []string{"name", "city", "distance"}, franz.(*easydata.Object).Keys())
}

func TestFromYAMLEmpty(t *testing.T) {
	v, err := FromYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = FromYAML(strings.NewReader("a: [1, 2"))
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	v, err := FromFile(write("data.json", `{"Name": "Horst"}`))
	require.NoError(t, err)
	assert.Equal(t, easydata.ObjectOf("Name", "Horst"), v)

	v, err = FromFile(write("data.YML", "Name: Horst\n"))
	require.NoError(t, err)
	assert.Equal(t, easydata.ObjectOf("Name", "Horst"), v)

	_, err = FromFile(write("data.txt", "Name=Horst"))
	assert.Error(t, err)

	_, err = FromFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
