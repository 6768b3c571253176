package easydata

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestData(root interface{}) *Data {
	d := NewData(root)
	d.SetLogger(NewLogger(nil, LogOff))
	return d
}

func TestDataGet(t *testing.T) {
	tests := []struct {
		expr string
		want interface{}
	}{
		{expr: "Name", want: "Horst"},
		{expr: " Name ", want: "Horst"},
		{expr: "Address.City", want: "Wolkenkuckuksheim"},
		{expr: "Hobbys.1", want: "Schlafen"},
		{expr: "Hobbys.${index}", want: "Feuerschlucken"},
		{expr: "Hobbys[index]", want: "Feuerschlucken"},
		{expr: "friends.Emil.distance", want: 90},
		{expr: "friends.${\"Oskar\"}.city", want: "Rom"},
		{expr: `"quoted"`, want: "quoted"},
		{expr: "'single'", want: "single"},
		{expr: "#hash quoted#", want: "hash quoted"},
		{expr: "42", want: 42},
		{expr: "NULL", want: nil},
		{expr: "TRUE", want: true},
		{expr: "false", want: false},
		{expr: "SIZE(Hobbys)", want: 3},
		{expr: "SIZE{friends}", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			d := newTestData(exampleData())
			got, err := d.Get(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, d.Misses())
		})
	}
}

func TestDataScope(t *testing.T) {
	root := exampleData()
	d := newTestData(root)
	assert.Same(t, root, d.Root())

	d.Define("Name", "Emil")
	assert.True(t, d.IsDefined("Name"))
	got, err := d.Get("Name")
	require.NoError(t, err)
	assert.Equal(t, "Emil", got)

	d.Define("Name", ObjectOf("city", "Rom"))
	got, err = d.Get("Name.city")
	require.NoError(t, err)
	assert.Equal(t, "Rom", got)

	d.Undefine("Name")
	got, _ = d.Get("Name")
	assert.Equal(t, "Emil", got)

	d.Undefine("Name")
	assert.False(t, d.IsDefined("Name"))
	got, _ = d.Get("Name")
	assert.Equal(t, "Horst", got)
}

func TestDataMisses(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{
			expr: "Hobies.wrongAttribute",
			want: "cannot resolve 'wrongAttribute' because value of 'Hobies' is null",
		},
		{
			expr: "Nickname",
			want: "cannot resolve 'Nickname' because value of '(root)' is a mapping without that key",
		},
		{
			expr: "Hobbys.5",
			want: "cannot resolve '5' because value of 'Hobbys' is a collection with 3 elements",
		},
		{
			expr: "Hobbys.first",
			want: "cannot resolve 'first' because value of 'Hobbys' is a collection with 3 elements",
		},
		{
			expr: "Name.first",
			want: "cannot resolve 'first' because value of 'Name' is a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			lenient := newTestData(exampleData())
			got, err := lenient.Get(tt.expr)
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.Equal(t, []string{tt.want}, lenient.Misses())

			strict := newTestData(exampleData())
			strict.SetStrict(true)
			require.True(t, strict.Strict())
			_, err = strict.Get(tt.expr)
			require.Error(t, err)
			assert.True(t, IsResolutionMiss(err))
			assert.EqualError(t, err, tt.want)
			assert.Empty(t, strict.Misses())
		})
	}
}

func TestDataValueReadMisses(t *testing.T) {
	d := newTestData(exampleData())

	s, err := d.GetString(ValueReadMisses)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, _ = d.Get("Nickname")
	_, _ = d.Get("Name.first")

	s, err = d.GetString(ValueReadMisses)
	require.NoError(t, err)
	assert.Equal(t, "[cannot resolve 'Nickname' because value of '(root)' is a mapping without that key, "+
		"cannot resolve 'first' because value of 'Name' is a string]", s)

	v, err := d.Get(ValueReadMisses)
	require.NoError(t, err)
	assert.Len(t, v, 2)
}

func TestDataTypeMismatch(t *testing.T) {
	d := newTestData(exampleData())

	_, err := d.GetString("Hobbys")
	require.Error(t, err)
	assert.True(t, IsTypeMismatchError(err))
	assert.EqualError(t, err, "expected String but Hobbys is of type []interface {}")

	_, err = d.GetCollection("Name", ListDefault)
	require.Error(t, err)
	assert.True(t, IsTypeMismatchError(err))
	assert.EqualError(t, err, "expected complex object but Name is of type string")
}

func TestDataGetCollection(t *testing.T) {
	d := newTestData(exampleData())

	keys, err := d.GetCollection("friends", ListDefault)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Emil", "Oskar", "Heinz", "Franz"}, keys)

	keys, err = d.GetCollection("friends", ListKeys)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Emil", "Oskar", "Heinz", "Franz"}, keys)

	values, err := d.GetCollection("friends", ListValues)
	require.NoError(t, err)
	require.Len(t, values, 4)
	assert.Equal(t, ObjectOf("city", "Gera", "distance", 90), values[0])

	hobbys, err := d.GetCollection("Hobbys", ListDefault)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Tanzen", "Schlafen", "Feuerschlucken"}, hobbys)

	indexes, err := d.GetCollection("Hobbys", ListKeys)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"0", "1", "2"}, indexes)

	assert.Empty(t, d.Misses())
}

func TestDataGetCollectionNil(t *testing.T) {
	root := exampleData()
	root.Set("Kinder", nil)
	d := newTestData(root)

	coll, err := d.GetCollection("Kinder", ListDefault)
	require.NoError(t, err)
	assert.Empty(t, coll)
	assert.Equal(t, []string{"cannot resolve 'to collection' because value of 'Kinder' is null"}, d.Misses())

	// A path which misses by itself is reported once.
	coll, err = d.GetCollection("Enkel", ListDefault)
	require.NoError(t, err)
	assert.Empty(t, coll)
	assert.Len(t, d.Misses(), 2)
}

func TestDataSortAndMap(t *testing.T) {
	d := newTestData(exampleData())
	friends, err := d.GetCollection("friends", ListValues)
	require.NoError(t, err)

	cities, err := d.Map(friends, "city")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Gera", "Rom", "Berlin", "Berlin"}, cities)

	sorted, err := d.Sort(friends, "city", false)
	require.NoError(t, err)
	cities, err = d.Map(sorted, "city")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Rom", "Gera", "Berlin", "Berlin"}, cities)

	sorted, err = d.Sort(friends, "distance", true)
	require.NoError(t, err)
	distances, err := d.Map(sorted, "distance")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{90, 250, 250, 1500}, distances)

	names, err := d.Sort([]interface{}{"b", "a", "10", "2"}, "", true)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"2", "10", "a", "b"}, names)
}

func TestDataPropertySource(t *testing.T) {
	d := newTestData(ObjectOf("boss", &person{name: "Erna", age: 61}))

	name, err := d.Get("boss.name")
	require.NoError(t, err)
	assert.Equal(t, "Erna", name)

	names, err := d.GetCollection("boss", ListDefault)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"name", "age"}, names)

	values, err := d.GetCollection("boss", ListValues)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Erna", 61}, values)

	_, err = d.Get("boss.email")
	require.NoError(t, err)
	assert.Equal(t, []string{"cannot resolve 'email' because value of 'boss' is a *easydata.person without that property"}, d.Misses())
}

func TestDataNilPropertySource(t *testing.T) {
	d := newTestData(ObjectOf("boss", (*person)(nil)))

	name, err := d.Get("boss.name")
	require.NoError(t, err)
	assert.Nil(t, name)
	assert.Equal(t, []string{"cannot resolve 'name' because value of 'boss' is null"}, d.Misses())

	names, err := d.GetCollection("boss", ListDefault)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Len(t, d.Misses(), 2)

	result, _, err := expand(t, map[string]interface{}{"p": (*person)(nil)}, "[@=p.name]", WithStrictMode(true))
	require.Error(t, err)
	assert.True(t, IsResolutionMiss(err))
	assert.Empty(t, result)
}

func TestDataGoValues(t *testing.T) {
	d := newTestData(ObjectOf("m", map[string]interface{}{
		"b":      1,
		"a":      2,
		"nums":   []int{3, 1},
		"labels": map[string]string{"x": "y"},
	}))

	keys, err := d.GetCollection("m", ListDefault)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b", "labels", "nums"}, keys)

	n, err := d.Get("m.nums.1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	nums, err := d.GetCollection("m.nums", ListDefault)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{3, 1}, nums)

	label, err := d.Get("m.labels.x")
	require.NoError(t, err)
	assert.Equal(t, "y", label)
	assert.Empty(t, d.Misses())
}

func TestDataDerefLimit(t *testing.T) {
	d := newTestData(ObjectOf("loop", "${loop}"))
	d.SetMaxDerefIterations(5)

	_, err := d.Get("${loop}")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDerefLimit))
}

func TestDataReplacements(t *testing.T) {
	d := newTestData(exampleData())

	d.DefineReplacement("Horst", "Hans")
	s, err := d.GetString("Name")
	require.NoError(t, err)
	assert.Equal(t, "Hans", s)

	d.DefineReplacement("Horst", "Heinrich")
	s, _ = d.GetString("Name")
	assert.Equal(t, "Heinrich", s)

	d.ClearReplacements()
	s, _ = d.GetString("Name")
	assert.Equal(t, "Horst", s)
}

func TestDataOutputPipeline(t *testing.T) {
	d := newTestData(exampleData())
	d.AddFormatter(func(value interface{}, path string) interface{} {
		if path == "Name" {
			return stringify(value) + " & co"
		}
		return value
	})
	d.SetSanitizer(strings.NewReplacer("&", `\&`).Replace)
	d.DefineReplacement(`\&`, "und")

	s, err := d.GetString("Name")
	require.NoError(t, err)
	assert.Equal(t, "Horst und co", s)

	s, err = d.GetString("Address.City")
	require.NoError(t, err)
	assert.Equal(t, "Wolkenkuckuksheim", s)

	s, err = d.GetString("Nickname")
	require.NoError(t, err)
	assert.Equal(t, "null", s)
}
