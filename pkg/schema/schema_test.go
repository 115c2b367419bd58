package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

const (
	statusActive   status = "active"
	statusInactive status = "inactive"
)

type leg struct {
	Symbol string
	Qty    float64
}

type record struct {
	Retained
	ID       string
	Symbol   string
	Status   status
	Price    float64
	Tradable bool
	Note     *string
	Legs     []leg
}

var legSchema = MustDefine("Leg",
	Field("symbol", String(), func(l *leg, v string) { l.Symbol = v }),
	Field("qty", StringToFloat(), func(l *leg, v float64) { l.Qty = v }),
)

var recordSchema = MustDefine("Record",
	Field("id", String(), func(r *record, v string) { r.ID = v }),
	Field("symbol", String(), func(r *record, v string) { r.Symbol = v }),
	Field("status", Enum(statusActive, statusInactive), func(r *record, v status) { r.Status = v }),
	Field("price", StringToFloat(), func(r *record, v float64) { r.Price = v }),
	Field("tradable", StringToBool(), func(r *record, v bool) { r.Tradable = v }),
	Field("note", Optional(String()), func(r *record, v *string) { r.Note = v }),
	Field("legs", Optional(ArrayOf[leg](legSchema)), func(r *record, v *[]leg) {
		if v != nil {
			r.Legs = *v
		}
	}),
)

func validRecord() map[string]any {
	return map[string]any{
		"id":       "1",
		"symbol":   "AAPL",
		"status":   "active",
		"price":    "150.5",
		"tradable": "true",
	}
}

func TestParse_Success(t *testing.T) {
	raw := validRecord()
	raw["extra"] = "kept"

	got, err := recordSchema.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, statusActive, got.Status)
	assert.Equal(t, 150.5, got.Price)
	assert.True(t, got.Tradable)
	assert.Nil(t, got.Note)
	assert.Nil(t, got.Legs)

	// 原始载荷按引用保留
	raw["probe"] = 1
	assert.Equal(t, 1, got.Raw()["probe"])
	assert.Equal(t, "kept", got.Raw()["extra"])
}

func TestParse_AccumulatesErrors(t *testing.T) {
	raw := validRecord()
	delete(raw, "id")
	delete(raw, "symbol")
	raw["price"] = "abc"
	raw["status"] = "unknown"

	_, err := recordSchema.Parse(raw)
	require.Error(t, err)

	sve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Record", sve.Schema)
	assert.Len(t, sve.Errors, 4)
	assert.NotNil(t, sve.Find("id", MissingField))
	assert.NotNil(t, sve.Find("symbol", MissingField))
	assert.NotNil(t, sve.Find("price", InvalidNumericFormat))

	enumErr := sve.Find("status", InvalidEnumValue)
	require.NotNil(t, enumErr)
	assert.Equal(t, []string{"active", "inactive"}, enumErr.Allowed)
	assert.Contains(t, enumErr.Error(), "unknown")
	assert.Equal(t, []string{"id", "symbol", "status", "price"}, sve.Fields())
}

func TestParse_NestedPaths(t *testing.T) {
	raw := validRecord()
	raw["legs"] = []any{
		map[string]any{"symbol": "AAPL", "qty": "1"},
		map[string]any{"qty": "x"},
	}

	_, err := recordSchema.Parse(raw)
	sve, ok := AsValidation(err)
	require.True(t, ok)
	assert.NotNil(t, sve.Find("legs.1.symbol", MissingField))
	assert.NotNil(t, sve.Find("legs.1.qty", InvalidNumericFormat))

	raw["legs"] = []any{map[string]any{"symbol": "MSFT", "qty": "2.5"}}
	got, err := recordSchema.Parse(raw)
	require.NoError(t, err)
	require.Len(t, got.Legs, 1)
	assert.Equal(t, leg{Symbol: "MSFT", Qty: 2.5}, got.Legs[0])

	raw["legs"] = "nope"
	_, err = recordSchema.Parse(raw)
	sve, _ = AsValidation(err)
	require.NotNil(t, sve)
	assert.NotNil(t, sve.Find("legs", InvalidType))
}

func TestParse_OptionalNull(t *testing.T) {
	raw := validRecord()
	raw["note"] = nil
	got, err := recordSchema.Parse(raw)
	require.NoError(t, err)
	assert.Nil(t, got.Note)

	raw["note"] = "hello"
	got, err = recordSchema.Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	assert.Equal(t, "hello", *got.Note)
}

func TestParse_WrappedOptional(t *testing.T) {
	trim := func(v *string) (string, error) {
		if v == nil {
			return "", nil
		}
		return strings.TrimSpace(*v), nil
	}
	type memo struct{ Note string }
	memoSchema := MustDefine("Memo",
		Field("note", Transform(Optional(String()), trim), func(m *memo, v string) { m.Note = v }),
	)

	got, err := memoSchema.Parse(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "", got.Note)

	got, err = memoSchema.Parse(map[string]any{"note": "  hi "})
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Note)

	assert.True(t, IsOptional(Transform(Optional(String()), trim)))
	assert.False(t, IsOptional(Transform(String(), func(s string) (string, error) { return s, nil })))
	assert.False(t, IsOptional(MaxLen(String(), 3)))
	assert.False(t, IsOptional[leg](legSchema))
}

func TestDefine_RejectsInvalidFields(t *testing.T) {
	set := func(r *record, v string) {}

	_, err := Define[record]("")
	assert.Error(t, err)

	_, err = Define("Dup", Field("id", String(), set), Field("id", String(), set))
	assert.ErrorContains(t, err, "duplicate")

	_, err = Define("NilRule", Field[record, string]("id", nil, set))
	assert.ErrorContains(t, err, "nil rule")

	_, err = Define("NilSet", Field[record, string]("id", String(), nil))
	assert.ErrorContains(t, err, "nil setter")

	_, err = Define("Empty", Field("", String(), set))
	assert.Error(t, err)

	assert.Panics(t, func() { MustDefine("Dup", Field("a", String(), set), Field("a", String(), set)) })
	assert.Equal(t, []string{"id", "symbol", "status", "price", "tradable", "note", "legs"}, recordSchema.FieldNames())
}

func TestEnum(t *testing.T) {
	rule := Enum("active", "inactive")

	v, err := rule.Convert("active")
	require.NoError(t, err)
	assert.Equal(t, "active", v)

	_, err = rule.Convert("unknown")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, InvalidEnumValue, ve.Kind)
	assert.Contains(t, err.Error(), `"unknown"`)

	// 字面值相等即可，与声明时的命名常量无关
	type other string
	v2, err := Enum[other]("active").Convert(string(statusActive))
	require.NoError(t, err)
	assert.Equal(t, other("active"), v2)
}

func TestNumericRules(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
		kind ErrorKind
	}{
		{"plain", "150.5", 150.5, ""},
		{"negative", "-0.25", -0.25, ""},
		{"exponent", "1e3", 1000, ""},
		{"empty", "", 0, InvalidNumericFormat},
		{"text", "abc", 0, InvalidNumericFormat},
		{"nan", "NaN", 0, InvalidNumericFormat},
		{"inf", "Inf", 0, InvalidNumericFormat},
		{"number", json.Number("1"), 0, InvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StringToFloat().Convert(tc.in)
			if tc.kind == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.kind, ve.Kind)
		})
	}

	n, err := StringToInt().Convert("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	_, err = StringToInt().Convert("4.2")
	assert.Error(t, err)

	f, err := Number().Convert(json.Number("0.3"))
	require.NoError(t, err)
	assert.Equal(t, 0.3, f)

	i, err := Integer().Convert(json.Number("7.0"))
	require.NoError(t, err)
	assert.Equal(t, 7, i)
	_, err = Integer().Convert(json.Number("7.5"))
	assert.Error(t, err)

	for _, in := range []any{json.Number("1e20"), json.Number("-1e30"), 1e19, -9.3e18} {
		_, err = Integer().Convert(in)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "%v", in)
		assert.Equal(t, InvalidNumericFormat, ve.Kind)

		_, err = Int().Convert(in)
		require.ErrorAs(t, err, &ve, "%v", in)
		assert.Equal(t, InvalidNumericFormat, ve.Kind)
	}
	i, err = Integer().Convert(json.Number("1e15"))
	require.NoError(t, err)
	assert.Equal(t, 1000000000000000, i)

	f, err = Float().Convert("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)
	f, err = Float().Convert(12.5)
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)

	i, err = Int().Convert("3")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	d, err := StringToDecimal().Convert("1234.56")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.56")))
	_, err = StringToDecimal().Convert("12a")
	assert.Error(t, err)
}

func TestBooleanRules(t *testing.T) {
	b, err := StringToBool().Convert("true")
	require.NoError(t, err)
	assert.True(t, b)
	_, err = StringToBool().Convert("yes")
	assert.Error(t, err)

	b, err = NumberToBoolean().Convert(json.Number("2"))
	require.NoError(t, err)
	assert.True(t, b)
	b, err = NumberToBoolean().Convert(0.0)
	require.NoError(t, err)
	assert.False(t, b)

	b, err = Bool().Convert(true)
	require.NoError(t, err)
	assert.True(t, b)
}

func TestConstraints(t *testing.T) {
	_, err := MaxLen(String(), 3).Convert("abcd")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, OutOfRange, ve.Kind)

	_, err = MaxLen(String(), 3).Convert("自选股")
	assert.NoError(t, err)
	_, err = MinLen(String(), 4).Convert("自选股")
	assert.Error(t, err)
	_, err = Len(String(), 2).Convert("é1")
	assert.NoError(t, err)

	v, err := Max(Float(), 100.0).Convert("99")
	require.NoError(t, err)
	assert.Equal(t, 99.0, v)
	_, err = Min(Float(), 1.0).Convert("0.5")
	assert.Error(t, err)

	list, err := StringToList(String()).Convert("AAPL,MSFT")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, list)

	_, err = StringToList(StringToFloat()).Convert("1,x")
	sve, ok := AsValidation(err)
	require.True(t, ok)
	assert.NotNil(t, sve.Find("1", InvalidNumericFormat))
}

func TestDecodeJSON(t *testing.T) {
	obj, err := DecodeObject([]byte(`{"price":"150.5","qty":3,"ok":true}`))
	require.NoError(t, err)

	n, err := Integer().Convert(obj["qty"])
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = DecodeObject([]byte(`[1,2]`))
	assert.Error(t, err)
	_, err = DecodeJSON(nil)
	assert.Error(t, err)
	_, err = DecodeJSON([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)
}
