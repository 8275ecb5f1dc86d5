package domain

import "encoding/json"

// RawItem is one provider-native article payload before normalisation.
type RawItem struct {
	// Provider names the adapter that fetched the item.
	Provider string

	// Payload is the item's JSON exactly as the provider sent it.
	Payload json.RawMessage
}
