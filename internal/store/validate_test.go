package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/habitflow/internal/model"
)

func TestValidateDocument_DefaultDocumentPasses(t *testing.T) {
	data, err := json.Marshal(model.NewDefaultDocument(time.Now()))
	require.NoError(t, err)
	assert.NoError(t, ValidateDocument(data))
}

func TestValidateDocument_AllowsNullEntriesAndUnknownFields(t *testing.T) {
	raw := []byte(`{
		"habits": [{"id": "cp", "name": "CP"}],
		"habitHistory": {"2024-01-01": {"cp": null}},
		"futureField": {"anything": true}
	}`)
	assert.NoError(t, ValidateDocument(raw))
}

func TestValidateDocument_RejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"hours out of range": `{"studyLogs": [{"id": "l1", "hours": 30}]}`,
		"zero level":         `{"gamification": {"xp": 0, "level": 0, "badges": [], "streak": 0}}`,
		"negative xp":        `{"gamification": {"xp": -5, "level": 1, "badges": [], "streak": 0}}`,
		"bad frequency":      `{"habits": [{"id": "cp", "name": "CP", "frequency": "fortnightly"}]}`,
		"bad progress step":  `{"shareableProgress": {"cp": 33}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidateDocument([]byte(raw)))
		})
	}
}

func TestValidateDocument_RejectsMalformedJSON(t *testing.T) {
	assert.Error(t, ValidateDocument([]byte(`{"habits": [`)))
}
