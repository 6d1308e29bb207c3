package dictionary

import (
	"fmt"
	"strings"
)

// Key names one of the custom word sets.
type Key string

const (
	ProperNoun    Key = "np_set"
	CompoundNoun  Key = "cp_set"
	CompoundCaret Key = "cp_caret_set"
	Verb          Key = "vv_set"
	Adjective     Key = "va_set"
)

// Keys lists every set in display order.
var Keys = []Key{ProperNoun, CompoundNoun, CompoundCaret, Verb, Adjective}

// Meta describes a set for humans.
type Meta struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Helper   string `json:"helper"`
}

// Labels holds display metadata for each set.
var Labels = map[Key]Meta{
	ProperNoun:    {Title: "고유명사 사전", Subtitle: "np_set · WORD_LIST", Helper: "인명, 작품명, 브랜드 등 단일 명사"},
	CompoundNoun:  {Title: "복합명사 사전", Subtitle: "cp_set · WORD_LIST", Helper: "여러 단어로 이루어진 복합 명사"},
	CompoundCaret: {Title: "복합명사 분리 사전", Subtitle: "cp_caret_set · WORD_LIST_COMPOUND", Helper: "`디지털^인문학`처럼 ^로 구분된 복합 명사"},
	Verb:          {Title: "동사 사전", Subtitle: "vv_set · WORD_LIST", Helper: "새로운 동사/용언"},
	Adjective:     {Title: "형용사 사전", Subtitle: "va_set · WORD_LIST", Helper: "형용사 및 형용사적 표현"},
}

var keyAliases = map[string]Key{
	"np_set": ProperNoun, "npset": ProperNoun, "np": ProperNoun,
	"cp_set": CompoundNoun, "cpset": CompoundNoun, "cp": CompoundNoun,
	"cp_caret_set": CompoundCaret, "cpcaretset": CompoundCaret, "cp_caret": CompoundCaret,
	"vv_set": Verb, "vvset": Verb, "vv": Verb,
	"va_set": Adjective, "vaset": Adjective, "va": Adjective,
}

// ParseKey accepts the wire name ("np_set"), the camel-case setting name
// ("npSet") or the short tag ("np").
func ParseKey(s string) (Key, error) {
	if k, ok := keyAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown dictionary set %q", s)
}

// WordListType is the type tag sent for the set.
func (k Key) WordListType() string {
	if k == CompoundCaret {
		return "WORD_LIST_COMPOUND"
	}
	return "WORD_LIST"
}
