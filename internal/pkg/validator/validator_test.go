package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"{123e4567-e89b-12d3-a456-426614174000}",
		"",
	}
	for _, id := range valid {
		assert.True(t, IsValidUUID(id), id)
	}
	for _, id := range invalid {
		assert.False(t, IsValidUUID(id), id)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		assert.True(t, ok, s)
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidClock(t *testing.T) {
	for _, s := range []string{"09:00", "23:59", "00:00:00", "18:30:15"} {
		assert.True(t, IsValidClock(s), s)
	}
	for _, s := range []string{"24:00", "9:00", "09:60", "0900", ""} {
		assert.False(t, IsValidClock(s), s)
	}
}

func TestIsValidDateTime(t *testing.T) {
	got, ok := IsValidDateTime("2024-01-15T10:30:00+09:00")
	require.True(t, ok)
	assert.Equal(t, 1, got.UTC().Hour())

	_, ok = IsValidDateTime("2024-01-15 10:30")
	assert.False(t, ok)
}

type tagged struct {
	StoreID string `json:"store_id" validate:"required,uuid"`
	Kind    string `json:"kind" validate:"oneof=a b"`
	Count   int    `json:"count" validate:"min=1"`
}

func TestStruct(t *testing.T) {
	err := Struct(tagged{StoreID: "123e4567-e89b-12d3-a456-426614174000", Kind: "a", Count: 1})
	require.NoError(t, err)

	err = Struct(tagged{Kind: "c"})
	require.Error(t, err)

	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	m := ve.ToMap()
	assert.Equal(t, "store_id is required", m["store_id"])
	assert.Equal(t, "kind must be one of: a, b", m["kind"])
	assert.Equal(t, "count must be at least 1", m["count"])
}

func TestMerge(t *testing.T) {
	a := ValidationErrors{{Field: "a", Message: "bad"}}
	b := ValidationErrors{{Field: "b", Message: "worse"}}

	err := Merge(nil, a, nil, b)
	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve, 2)

	assert.NoError(t, Merge(nil, nil))

	plain := errors.New("boom")
	assert.Equal(t, plain, Merge(a, plain))
}
