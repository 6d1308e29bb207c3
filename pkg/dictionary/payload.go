package dictionary

import "strings"

// WordSet is one set in the sync payload.
type WordSet struct {
	Items map[string]int `json:"items"`
	Type  string         `json:"type"`
	Name  string         `json:"name"`
}

// PayloadDict groups the sets of a payload. Empty sets are omitted.
type PayloadDict struct {
	DomainName    string   `json:"domain_name"`
	ProperNoun    *WordSet `json:"np_set,omitempty"`
	CompoundNoun  *WordSet `json:"cp_set,omitempty"`
	CompoundCaret *WordSet `json:"cp_caret_set,omitempty"`
	Verb          *WordSet `json:"vv_set,omitempty"`
	Adjective     *WordSet `json:"va_set,omitempty"`
}

// Payload is the request body for a custom dictionary update.
type Payload struct {
	DomainName string      `json:"domain_name"`
	Dict       PayloadDict `json:"dict"`
}

// Payload builds the sync request. It fails when no domain is set.
func (d *Dictionary) Payload() (Payload, error) {
	snap := d.Snapshot()
	domain := d.Domain()
	if domain == "" {
		return Payload{}, ErrNoDomain
	}

	return Payload{
		DomainName: domain,
		Dict: PayloadDict{
			DomainName:    domain,
			ProperNoun:    buildWordSet(ProperNoun, snap[ProperNoun]),
			CompoundNoun:  buildWordSet(CompoundNoun, snap[CompoundNoun]),
			CompoundCaret: buildWordSet(CompoundCaret, snap[CompoundCaret]),
			Verb:          buildWordSet(Verb, snap[Verb]),
			Adjective:     buildWordSet(Adjective, snap[Adjective]),
		},
	}, nil
}

func buildWordSet(key Key, words []string) *WordSet {
	items := make(map[string]int)
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			items[w] = 1
		}
	}
	if len(items) == 0 {
		return nil
	}
	return &WordSet{Items: items, Type: key.WordListType(), Name: string(key)}
}
