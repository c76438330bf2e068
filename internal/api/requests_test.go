package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func TestDecodeEnvelope(t *testing.T) {
	env, err := decodeEnvelope(map[string]any{
		"account":   "horns&hoofs",
		"login":     "h&f",
		"method":    "online_score",
		"token":     "abc",
		"arguments": map[string]any{"phone": "79175002040"},
	})
	require.NoError(t, err)
	assert.Equal(t, "h&f", env.Login)
	assert.Equal(t, "online_score", env.Method)
	assert.Equal(t, "79175002040", env.Arguments["phone"])
}

func TestDecodeEnvelope_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
	}{
		{"no login", map[string]any{"method": "m", "token": "t", "arguments": map[string]any{}}},
		{"no token", map[string]any{"login": "l", "method": "m", "arguments": map[string]any{}}},
		{"no method", map[string]any{"login": "l", "token": "t", "arguments": map[string]any{}}},
		{"no arguments", map[string]any{"login": "l", "method": "m", "token": "t"}},
		{"null login", map[string]any{"login": nil, "method": "m", "token": "t", "arguments": map[string]any{}}},
		{"empty method", map[string]any{"login": "l", "method": "", "token": "t", "arguments": map[string]any{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeEnvelope(tc.body)
			assert.Error(t, err)
		})
	}
}

func TestDecodeEnvelope_WrongTypes(t *testing.T) {
	_, err := decodeEnvelope(map[string]any{
		"login":     "l",
		"method":    "m",
		"token":     "t",
		"arguments": "not a dict",
	})
	require.Error(t, err)

	_, err = decodeEnvelope(map[string]any{
		"login":     float64(42),
		"method":    "m",
		"token":     "t",
		"arguments": map[string]any{},
	})
	require.Error(t, err)
}

func TestDecodeEnvelope_NullableValues(t *testing.T) {
	// login and token may be empty strings, arguments an empty dict.
	env, err := decodeEnvelope(map[string]any{
		"login":     "",
		"method":    "m",
		"token":     "",
		"arguments": map[string]any{},
	})
	require.NoError(t, err)
	assert.Empty(t, env.Login)
}

func TestDecodeOnlineScore_Pairs(t *testing.T) {
	gender := func(g float64) map[string]any {
		return map[string]any{"gender": g, "birthday": "01.01.2000"}
	}

	valid := []map[string]any{
		{"phone": "79175002040", "email": "stupnikov@otus.ru"},
		{"phone": float64(79175002040), "email": "stupnikov@otus.ru"},
		{"first_name": "a", "last_name": "b"},
		gender(1),
		gender(2),
		{"phone": "79175002040", "email": "x@y", "first_name": "a", "last_name": "b", "gender": float64(1), "birthday": "01.01.2000"},
	}
	for _, args := range valid {
		parsed, _, err := decodeOnlineScore(args, testNow)
		require.NoError(t, err, "args: %v", args)
		assert.True(t, parsed.validate(), "args: %v", args)
	}

	invalid := []map[string]any{
		{},
		{"phone": "79175002040"},
		{"first_name": "a"},
		{"email": "x@y", "first_name": "a"},
		// gender 0 does not complete the gender/birthday pair
		gender(0),
	}
	for _, args := range invalid {
		parsed, _, err := decodeOnlineScore(args, testNow)
		require.NoError(t, err, "args: %v", args)
		assert.False(t, parsed.validate(), "args: %v", args)
	}
}

func TestDecodeOnlineScore_FieldValidation(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
	}{
		{"short phone", map[string]any{"phone": "7917500204", "email": "x@y"}},
		{"wrong prefix", map[string]any{"phone": "89175002040", "email": "x@y"}},
		{"phone letters", map[string]any{"phone": "7917500204x", "email": "x@y"}},
		{"fractional phone", map[string]any{"phone": 7917500204.5, "email": "x@y"}},
		{"bad email", map[string]any{"phone": "79175002040", "email": "not-an-email"}},
		{"bad birthday", map[string]any{"gender": float64(1), "birthday": "2000-01-01"}},
		{"too old", map[string]any{"gender": float64(1), "birthday": "01.01.1890"}},
		{"bad gender", map[string]any{"gender": float64(5), "birthday": "01.01.2000"}},
		{"fractional gender", map[string]any{"gender": 1.5, "birthday": "01.01.2000"}},
		{"gender as string", map[string]any{"gender": "1", "birthday": "01.01.2000"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := decodeOnlineScore(tc.args, testNow)
			assert.Error(t, err)
		})
	}
}

func TestDecodeOnlineScore_Has(t *testing.T) {
	_, has, err := decodeOnlineScore(map[string]any{
		"phone":      "79175002040",
		"email":      "x@y",
		"first_name": nil, // null behaves like absent
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "phone"}, has)
}

func TestDecodeClientsInterests(t *testing.T) {
	parsed, err := decodeClientsInterests(map[string]any{
		"client_ids": []any{float64(1), float64(2), float64(3)},
		"date":       "19.07.2017",
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, parsed.ClientIDs)

	// date is optional
	parsed, err = decodeClientsInterests(map[string]any{
		"client_ids": []any{float64(7)},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{7}, parsed.ClientIDs)
}

func TestDecodeClientsInterests_Invalid(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
	}{
		{"missing ids", map[string]any{"date": "19.07.2017"}},
		{"null ids", map[string]any{"client_ids": nil}},
		{"empty ids", map[string]any{"client_ids": []any{}}},
		{"string ids", map[string]any{"client_ids": []any{"1", "2"}}},
		{"fractional ids", map[string]any{"client_ids": []any{1.5}}},
		{"ids not a list", map[string]any{"client_ids": float64(1)}},
		{"bad date", map[string]any{"client_ids": []any{float64(1)}, "date": "XXX"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeClientsInterests(tc.args)
			assert.Error(t, err)
		})
	}
}
