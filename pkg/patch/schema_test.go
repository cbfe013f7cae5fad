package patch

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testSchema() Schema {
	return NewSchema(map[string]Field{
		"title":       {Type: String, Validate: MinLen(3, "too short")},
		"description": {Type: NullableString},
		"schema":      {Column: "form_schema", Type: JSONContainer},
		"config":      {Type: JSON},
		"status":      {Type: String, Validate: OneOf("draft", "published")},
		"is_public":   {Type: Bool},
		"max":         {Type: NullableInt, Validate: Between(0, 100, "out of range")},
		"score":       {Type: Float},
		"expires_at":  {Type: NullableTime},
		"color":       {Type: String, Validate: Match(regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`), "bad color")},
	})
}

func raw(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func TestApply_OnlyDisallowedFields(t *testing.T) {
	res, err := testSchema().Apply(raw(t, `{"user_id": 9, "id": 1}`))
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Empty(t, res.Updates)
	assert.Equal(t, []string{"id", "user_id"}, res.Dropped)
}

func TestApply_MixedFieldsKeepsAllowedOnly(t *testing.T) {
	res, err := testSchema().Apply(raw(t, `{"title": "New title", "user_id": 5}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "New title"}, res.Updates)
	assert.Equal(t, []string{"title"}, res.Applied)
	assert.Equal(t, []string{"user_id"}, res.Dropped)
}

func TestApply_ConvertsTypes(t *testing.T) {
	res, err := testSchema().Apply(raw(t, `{
		"description": null,
		"schema": {"fields": []},
		"config": null,
		"is_public": true,
		"max": 10,
		"score": 7.5,
		"expires_at": "2030-01-02 03:04:05",
		"color": "#A1b2C3"
	}`))
	require.NoError(t, err)

	assert.Nil(t, res.Updates["description"])
	assert.Equal(t, datatypes.JSON(`{"fields": []}`), res.Updates["form_schema"])
	assert.Nil(t, res.Updates["config"])
	assert.Equal(t, true, res.Updates["is_public"])
	assert.Equal(t, int64(10), res.Updates["max"])
	assert.Equal(t, 7.5, res.Updates["score"])
	assert.Equal(t, time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC), res.Updates["expires_at"])
	assert.Equal(t, "#A1b2C3", res.Updates["color"])
}

func TestApply_CollectsFieldErrors(t *testing.T) {
	_, err := testSchema().Apply(raw(t, `{
		"title": "ab",
		"status": "deleted",
		"schema": "flat",
		"is_public": "yes",
		"max": -1
	}`))
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe, 5)
	assert.Contains(t, fe[0], "is_public")
}

func TestApply_JSONContainerRejectsNull(t *testing.T) {
	_, err := testSchema().Apply(raw(t, `{"schema": null}`))
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	_, err := ParseTime("2024-05-01T10:00:00Z")
	assert.NoError(t, err)
	_, err = ParseTime("2024-05-01")
	assert.NoError(t, err)
	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}

func TestSchemaKeys(t *testing.T) {
	s := testSchema()
	assert.True(t, s.Allows("title"))
	assert.False(t, s.Allows("user_id"))
	assert.Len(t, s.Keys(), 10)
	assert.Equal(t, "color", s.Keys()[0])
}

func TestLimitValidators(t *testing.T) {
	title := All(MinLen(3, "too short"), MaxLen(5, "too long"))
	count := Between(0, 10, "out of range")

	tests := []struct {
		name  string
		check func(any) error
		value any
		ok    bool
	}{
		{"within both bounds", title, "abcd", true},
		{"below min", title, "ab", false},
		{"above max counts runes", title, "فرمساز", false},
		{"max in runes not bytes", MaxLen(3, "too long"), "فرم", true},
		{"lower bound", count, int64(0), true},
		{"upper bound", count, int64(10), true},
		{"negative", count, int64(-1), false},
		{"overflow", count, int64(1 << 40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.value)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
