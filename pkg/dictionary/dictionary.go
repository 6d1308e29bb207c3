// Package dictionary manages the user's custom word lists: local storage in
// YAML, lookup, suppression of issues on accepted words, and the payload used
// to sync the lists to the corrector.
package dictionary

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
	"gopkg.in/yaml.v3"

	"github.com/bkga-dev/bkga/pkg/types"
)

var (
	ErrEmptyWord = errors.New("word is empty")
	ErrDuplicate = errors.New("word already in dictionary")
	ErrNotFound  = errors.New("word not in dictionary")
	ErrNoDomain  = errors.New("dictionary domain name is not set")
)

// fileFormat is the on-disk YAML layout.
type fileFormat struct {
	DomainName    string   `yaml:"domain_name,omitempty"`
	ProperNoun    []string `yaml:"np_set,omitempty"`
	CompoundNoun  []string `yaml:"cp_set,omitempty"`
	CompoundCaret []string `yaml:"cp_caret_set,omitempty"`
	Verb          []string `yaml:"vv_set,omitempty"`
	Adjective     []string `yaml:"va_set,omitempty"`
}

// Dictionary is a set of custom word lists. It is safe for concurrent use.
type Dictionary struct {
	mu     sync.RWMutex
	domain string
	sets   map[Key][]string

	// derived from sets on every mutation
	forms   map[string]struct{}
	words   []string
	matcher *ahocorasick.Matcher
}

// New creates an empty dictionary for a domain.
func New(domain string) *Dictionary {
	d := &Dictionary{
		domain: strings.TrimSpace(domain),
		sets:   make(map[Key][]string),
	}
	d.rebuild()
	return d
}

// Load reads a dictionary file. A missing file yields an empty dictionary.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return Parse(data)
}

// Parse decodes dictionary YAML.
func Parse(data []byte) (*Dictionary, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}

	d := New(f.DomainName)
	for key, words := range map[Key][]string{
		ProperNoun:    f.ProperNoun,
		CompoundNoun:  f.CompoundNoun,
		CompoundCaret: f.CompoundCaret,
		Verb:          f.Verb,
		Adjective:     f.Adjective,
	} {
		for _, w := range words {
			w = strings.TrimSpace(w)
			if w != "" && !slices.Contains(d.sets[key], w) {
				d.sets[key] = append(d.sets[key], w)
			}
		}
	}
	d.rebuild()
	return d, nil
}

// Save writes the dictionary as YAML.
func (d *Dictionary) Save(path string) error {
	d.mu.RLock()
	f := fileFormat{
		DomainName:    d.domain,
		ProperNoun:    d.sets[ProperNoun],
		CompoundNoun:  d.sets[CompoundNoun],
		CompoundCaret: d.sets[CompoundCaret],
		Verb:          d.sets[Verb],
		Adjective:     d.sets[Adjective],
	}
	data, err := yaml.Marshal(&f)
	d.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding dictionary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing dictionary: %w", err)
	}
	return nil
}

// Domain returns the domain name used for sync.
func (d *Dictionary) Domain() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.domain
}

// SetDomain changes the domain name.
func (d *Dictionary) SetDomain(domain string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.domain = strings.TrimSpace(domain)
}

// Add appends word to a set.
func (d *Dictionary) Add(word string, key Key) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return ErrEmptyWord
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if slices.Contains(d.sets[key], word) {
		return fmt.Errorf("%q in %s: %w", word, key, ErrDuplicate)
	}
	d.sets[key] = append(d.sets[key], word)
	d.rebuild()
	return nil
}

// Remove deletes word from a set.
func (d *Dictionary) Remove(word string, key Key) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return ErrEmptyWord
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	i := slices.Index(d.sets[key], word)
	if i < 0 {
		return fmt.Errorf("%q in %s: %w", word, key, ErrNotFound)
	}
	d.sets[key] = slices.Delete(d.sets[key], i, i+1)
	d.rebuild()
	return nil
}

// Lookup returns the sets that contain word, in display order.
func (d *Dictionary) Lookup(word string) []Key {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	var keys []Key
	for _, k := range Keys {
		if slices.Contains(d.sets[k], word) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Snapshot returns a copy of every set. Empty sets are present with no words.
func (d *Dictionary) Snapshot() map[Key][]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := make(map[Key][]string, len(Keys))
	for _, k := range Keys {
		snap[k] = slices.Clone(d.sets[k])
		if snap[k] == nil {
			snap[k] = []string{}
		}
	}
	return snap
}

// Len returns the total number of entries.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for _, words := range d.sets {
		n += len(words)
	}
	return n
}

// particles are the postpositions an accepted word may carry and still
// count as that word ("깃허브를", "깃허브에서").
var particles = map[string]struct{}{
	"은": {}, "는": {}, "이": {}, "가": {}, "을": {}, "를": {}, "의": {},
	"에": {}, "에서": {}, "에게": {}, "한테": {}, "께": {}, "로": {}, "으로": {},
	"와": {}, "과": {}, "도": {}, "만": {}, "까지": {}, "부터": {}, "보다": {},
	"처럼": {}, "이나": {}, "나": {}, "랑": {}, "이랑": {}, "하고": {}, "마다": {},
	"에는": {}, "에서는": {}, "으로는": {}, "로는": {}, "와는": {}, "과는": {}, "이라": {}, "라": {},
}

// Accepted reports whether snippet is a dictionary word, either exactly or
// followed by a single particle (such as "깃허브를"). Caret compounds match
// with the caret removed or replaced by a space.
func (d *Dictionary) Accepted(snippet string) bool {
	snippet = strings.TrimSpace(snippet)
	if snippet == "" {
		return false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if _, ok := d.forms[snippet]; ok {
		return true
	}
	if d.matcher == nil || strings.ContainsAny(snippet, " \t\n") {
		return false
	}
	for _, hit := range d.matcher.Match([]byte(snippet)) {
		rest, ok := strings.CutPrefix(snippet, d.words[hit])
		if !ok {
			continue
		}
		if _, ok := particles[rest]; ok {
			return true
		}
	}
	return false
}

// Find returns the distinct dictionary forms that occur anywhere in text.
func (d *Dictionary) Find(text string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.matcher == nil {
		return nil
	}
	hits := d.matcher.Match([]byte(text))
	found := make([]string, 0, len(hits))
	for _, hit := range hits {
		found = append(found, d.words[hit])
	}
	slices.Sort(found)
	return found
}

// Suppresses makes a Dictionary usable as a pipeline suppression stage.
func (d *Dictionary) Suppresses(_ types.Issue, snippet string) bool {
	return d.Accepted(snippet)
}

// rebuild recomputes the lookup forms and the matcher. Callers hold mu.
func (d *Dictionary) rebuild() {
	d.forms = make(map[string]struct{})
	d.words = d.words[:0]
	for _, k := range Keys {
		for _, w := range d.sets[k] {
			for _, form := range surfaceForms(w) {
				if _, seen := d.forms[form]; !seen {
					d.forms[form] = struct{}{}
					d.words = append(d.words, form)
				}
			}
		}
	}
	d.matcher = nil
	if len(d.words) > 0 {
		d.matcher = ahocorasick.NewStringMatcher(d.words)
	}
}

func surfaceForms(word string) []string {
	if !strings.Contains(word, "^") {
		return []string{word}
	}
	return []string{
		word,
		strings.ReplaceAll(word, "^", ""),
		strings.ReplaceAll(word, "^", " "),
	}
}
