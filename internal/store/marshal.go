package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/habitflow/internal/model"
)

// encodeDocument serializes a document to its stored JSON form.
func encodeDocument(doc model.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// decodeDocument parses stored JSON into a document. Unknown fields are
// ignored here and preserved by the merge path, so documents written by
// newer clients survive a round trip through an older one.
func decodeDocument(data []byte) (model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// mergeRaw overlays the top-level fields of incoming onto existing.
// Fields only present in existing - including ones this client has never
// heard of - are preserved. Returns the merged serialized document.
func mergeRaw(existing, incoming []byte) ([]byte, error) {
	var base map[string]json.RawMessage
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &base); err != nil {
			return nil, fmt.Errorf("merge: parse stored document: %w", err)
		}
	}
	if base == nil {
		base = map[string]json.RawMessage{}
	}

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(incoming, &overlay); err != nil {
		return nil, fmt.Errorf("merge: parse incoming document: %w", err)
	}
	for k, v := range overlay {
		base[k] = v
	}

	out, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return out, nil
}

// stampLastUpdated sets the document's lastUpdated field before a write.
func stampLastUpdated(doc model.Document, now time.Time) model.Document {
	doc.LastUpdated = now
	return doc
}
