package storage

import (
	"encoding/json"
	"fmt"
)

// Bag is a schemaless key/value store kept as raw JSON. Readers decode at
// the edges into whatever shape the key is documented to hold, so a stale
// or unknown key can never corrupt the containing struct.
type Bag map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (b *Bag) Set(key string, v any) error {
	if *b == nil {
		*b = Bag{}
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal bag key %q: %w", key, err)
	}

	(*b)[key] = json.RawMessage(raw)
	return nil
}

// Get unmarshals the value at key into out.
// Returns (found=false, nil) if the key is not present.
func (b Bag) Get(key string, out any) (bool, error) {
	if b == nil {
		return false, nil
	}

	raw, ok := b[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal bag key %q: %w", key, err)
	}
	return true, nil
}

// Has reports whether key is present.
func (b Bag) Has(key string) bool {
	if b == nil {
		return false
	}
	_, ok := b[key]
	return ok
}

// Delete removes the key, if present.
func (b Bag) Delete(key string) {
	if b == nil {
		return
	}
	delete(b, key)
}

// Clone returns a copy sharing no structure with the original.
func (b Bag) Clone() Bag {
	if b == nil {
		return nil
	}
	c := make(Bag, len(b))
	for k, v := range b {
		raw := make(json.RawMessage, len(v))
		copy(raw, v)
		c[k] = raw
	}
	return c
}
