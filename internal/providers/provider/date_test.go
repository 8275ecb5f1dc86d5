package provider

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "rfc3339 utc", input: "2024-05-01T10:00:00Z", want: "2024-05-01"},
		{name: "keeps own offset", input: "2024-05-01T23:30:00-05:00", want: "2024-05-01"},
		{name: "positive offset", input: "2024-05-02T00:30:00+02:00", want: "2024-05-02"},
		{name: "date only", input: "2024-05-01", want: "2024-05-01"},
		{name: "surrounding space", input: "  2024-05-01T10:00:00Z ", want: "2024-05-01"},
		{name: "rfc1123", input: "Wed, 01 May 2024 10:00:00 GMT", want: "2024-05-01"},
		{name: "no zone late evening", input: "2024-05-01 23:30:00", want: "2024-05-01"},
		{name: "no zone just after midnight", input: "2024-05-02 00:15:00", want: "2024-05-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDate_NoZoneIgnoresLocal(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("UTC+14", 14*3600)
	t.Cleanup(func() { time.Local = orig })

	got, err := ParseDate("2024-05-01 23:30:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", got.String())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date"} {
		_, err := ParseDate(input)
		assert.ErrorIs(t, err, domain.ErrMalformedPayload, "input %q", input)
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "fallback", Text(nil, "fallback"))
	assert.Equal(t, "", Text(domain.StringPtr(""), "fallback"))
	assert.Equal(t, "value", Text(domain.StringPtr("value"), "fallback"))
}

func TestRequireTitle(t *testing.T) {
	_, err := RequireTitle(nil)
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)

	_, err = RequireTitle(domain.StringPtr("  "))
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)

	title, err := RequireTitle(domain.StringPtr("Headline"))
	require.NoError(t, err)
	assert.Equal(t, "Headline", title)
}

func TestRawItems(t *testing.T) {
	assert.Empty(t, RawItems("newsapi", nil))

	items := RawItems("newsapi", []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"a":2}`)})
	require.Len(t, items, 2)
	assert.Equal(t, "newsapi", items[1].Provider)
	assert.JSONEq(t, `{"a":2}`, string(items[1].Payload))
}

func TestDecode_Malformed(t *testing.T) {
	var out struct{}
	err := Decode(domain.RawItem{Provider: "guardian", Payload: json.RawMessage(`[1,2`)}, &out)
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}
