package provider

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// RawItems wraps each element of a provider item list for later normalisation.
// A nil list yields an empty batch.
func RawItems(name string, items []json.RawMessage) []domain.RawItem {
	out := make([]domain.RawItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.RawItem{Provider: name, Payload: item})
	}
	return out
}

// Decode unmarshals one raw item, reporting failures as malformed payloads.
func Decode(raw domain.RawItem, out any) error {
	if err := json.Unmarshal(raw.Payload, out); err != nil {
		return fmt.Errorf("%w: decoding %s item: %v", domain.ErrMalformedPayload, raw.Provider, err)
	}
	return nil
}
