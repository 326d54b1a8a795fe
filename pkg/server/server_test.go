package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordfix/pkg/corrector"
	"github.com/bastiangx/wordfix/pkg/dataset"
	"github.com/bastiangx/wordfix/pkg/dictionary"
)

func testCorrector() *corrector.Corrector {
	d := dictionary.New()
	d.Set("кот", 100)
	d.Set("кит", 30)
	d.Set("код", 10)
	d.Set("молоко", 50)
	pairs := []dataset.Pair{{Observed: "кат", Expected: "кот"}}
	return corrector.Build(d, pairs, corrector.DefaultSettings())
}

// run feeds msgs to a fresh server and returns a decoder over its output.
func run(t *testing.T, msgs ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, m := range msgs {
		require.NoError(t, enc.Encode(m))
	}
	srv := NewServer(testCorrector(), &in, &out, 10)
	require.NoError(t, srv.Start())
	return msgpack.NewDecoder(&out)
}

func TestCorrectRequest(t *testing.T) {
	dec := run(t, CorrectionRequest{ID: "req_001", Word: "кат"})

	var resp CorrectionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "req_001", resp.ID)
	assert.Equal(t, "кат", resp.Original)
	assert.Equal(t, "кот", resp.Corrected)
	assert.True(t, resp.Changed)
	assert.Equal(t, []CorrectionSuggestion{
		{Word: "кот", Frequency: 100, Rank: 1},
		{Word: "кит", Frequency: 30, Rank: 2},
	}, resp.Suggestions)
	assert.GreaterOrEqual(t, resp.TimeTaken, int64(0))
}

func TestPassThroughWord(t *testing.T) {
	dec := run(t, CorrectionRequest{ID: "a", Word: "hello", Action: ActionCorrect})

	var resp CorrectionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "hello", resp.Corrected)
	assert.False(t, resp.Changed)
	assert.Empty(t, resp.Suggestions)
}

func TestRequestStream(t *testing.T) {
	dec := run(t,
		CorrectionRequest{ID: "1", Word: "малоко"},
		CorrectionRequest{ID: "2", Action: ActionHealth},
		CorrectionRequest{ID: "3", Word: "кот"},
	)

	var first CorrectionResponse
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "молоко", first.Corrected)

	var health HealthResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, HealthResponse{ID: "2", Status: "ok", Requests: 2}, health)

	var third CorrectionResponse
	require.NoError(t, dec.Decode(&third))
	assert.Equal(t, "3", third.ID)
	assert.False(t, third.Changed)
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		description string
		msg         any
		id          string
		contains    string
	}{
		{"missing word", CorrectionRequest{ID: "e1"}, "e1", "missing"},
		{"too long", CorrectionRequest{ID: "e2", Word: "молокомолоко"}, "e2", "maximum length"},
		{"space", CorrectionRequest{ID: "e3", Word: "к т"}, "e3", "invalid characters"},
		{"unknown action", CorrectionRequest{ID: "e4", Word: "кот", Action: "complete"}, "e4", ErrUnknownAction.Error()},
		{"not a request", 42, "", "invalid msgpack"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			dec := run(t, tc.msg)
			var resp CorrectionError
			require.NoError(t, dec.Decode(&resp))
			assert.Equal(t, tc.id, resp.ID)
			assert.Equal(t, 400, resp.Code)
			assert.Contains(t, resp.Error, tc.contains)
		})
	}
}

func TestMalformedMessageKeepsStream(t *testing.T) {
	dec := run(t, "garbage", CorrectionRequest{ID: "ok", Word: "кат"})

	var bad CorrectionError
	require.NoError(t, dec.Decode(&bad))
	assert.Equal(t, 400, bad.Code)

	var resp CorrectionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "ok", resp.ID)
	assert.Equal(t, "кот", resp.Corrected)
}

func TestEmptyInput(t *testing.T) {
	var out bytes.Buffer
	srv := NewServer(testCorrector(), &bytes.Buffer{}, &out, 0)
	require.NoError(t, srv.Start())
	assert.Zero(t, out.Len())
}
