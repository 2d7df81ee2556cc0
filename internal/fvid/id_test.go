package fvid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{"wrapper with native", `{"native": 11915028}`, 11915028, false},
		{"wrapper with native and partner", `{"native": 42, "partner": "P-42"}`, 42, false},
		{"wrapper with null native, numeric partner", `{"native": null, "partner": 99}`, 99, false},
		{"wrapper with numeric string partner", `{"partner": "77"}`, 77, false},
		{"empty wrapper", `{}`, 0, false},
		{"wrapper with both null", `{"native": null, "partner": null}`, 0, false},
		{"bare number", `12345`, 12345, false},
		{"numeric string", `"6789"`, 6789, false},
		{"null", `null`, 0, false},
		{"integral float", `123.0`, 123, false},
		{"fractional float", `123.5`, 0, true},
		{"float above int64 range", `1e300`, 0, true},
		{"float below int64 range", `-1e300`, 0, true},
		{"integer above int64 range", `9223372036854775808`, 0, true},
		{"non-numeric string", `"ABC-123"`, 0, true},
		{"non-numeric partner", `{"partner": "ABC"}`, 0, true},
		{"array", `[1]`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID

			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestUnmarshalJSON_StructField(t *testing.T) {
	// Wrapper decoding must work through struct fields, where encoding/json
	// passes "null" for explicit nulls.
	var rec struct {
		FolderID ID `json:"folderId"`
		ParentID ID `json:"parentId"`
	}

	err := json.Unmarshal([]byte(`{"folderId": {"native": 3}, "parentId": null}`), &rec)
	require.NoError(t, err)
	assert.Equal(t, ID(3), rec.FolderID)
	assert.True(t, rec.ParentID.IsZero())
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(ID(11915028))
	require.NoError(t, err)
	assert.Equal(t, "11915028", string(data))
}

func TestParse(t *testing.T) {
	id, err := Parse("11915028")
	require.NoError(t, err)
	assert.Equal(t, ID(11915028), id)

	_, err = Parse("abc")
	assert.Error(t, err)

	_, err = Parse("-5")
	assert.Error(t, err)

	_, err = Parse("0")
	assert.Error(t, err)
}

func TestStringAndZero(t *testing.T) {
	assert.Equal(t, "42", ID(42).String())
	assert.True(t, ID(0).IsZero())
	assert.False(t, ID(1).IsZero())
}
