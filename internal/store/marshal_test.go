package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/habitflow/internal/model"
)

func TestDocument_RoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := model.NewDefaultDocument(now)
	doc.HabitHistory.Set("2024-01-01", "cp", model.CompletionEntry{
		Completed: true, Timestamp: now, Note: "three solved",
	})

	data, err := encodeDocument(doc)
	require.NoError(t, err)

	back, err := decodeDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestDecodeDocument_NullEntriesFromOlderClients(t *testing.T) {
	// Older clients wrote explicit nulls for unchecked entries.
	raw := []byte(`{"habitHistory":{"2024-01-01":{"cp":null,"webdev":{"completed":true}}}}`)

	doc, err := decodeDocument(raw)
	require.NoError(t, err)

	assert.False(t, doc.HabitHistory.Completed("2024-01-01", "cp"))
	assert.True(t, doc.HabitHistory.Completed("2024-01-01", "webdev"))

	doc.Normalize(time.Now())
	_, ok := doc.HabitHistory.Entry("2024-01-01", "cp")
	assert.False(t, ok, "null entries are pruned to canonical absence")
}

func TestMergeRaw_PreservesUnknownFields(t *testing.T) {
	existing := []byte(`{"habits":[],"futureField":{"keep":true}}`)
	incoming := []byte(`{"habits":[{"id":"cp"}],"studyLogs":[]}`)

	merged, err := mergeRaw(existing, incoming)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(merged, &m))
	assert.Contains(t, m, "futureField", "fields this client doesn't know about survive a merge")
	assert.JSONEq(t, `[{"id":"cp"}]`, string(m["habits"]))
	assert.Contains(t, m, "studyLogs")
}

func TestMergeRaw_EmptyExisting(t *testing.T) {
	merged, err := mergeRaw(nil, []byte(`{"habits":[]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"habits":[]}`, string(merged))
}

func TestDefaultDocument_Golden(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := model.NewDefaultDocument(now)

	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "default_document", append(data, '\n'))
}
