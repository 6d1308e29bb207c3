package types

import (
	"crypto/sha1"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// DocumentID identifies one snapshot of a document's content. It is the
// Git blob hash of the UTF-8 bytes, so the ID of a committed file matches
// `git hash-object`.
//
// Analysis runs on a snapshot. A host records the ID when it sends text and
// drops results whose ID no longer matches the live document (see Matches).
// Stores key documents by it, so an unchanged file is stored once.
type DocumentID [20]byte

// ComputeDocumentID hashes content as SHA-1("blob <len>\x00<content>").
func ComputeDocumentID(content []byte) DocumentID {
	h := sha1.New()
	h.Write([]byte("blob " + strconv.Itoa(len(content)) + "\x00"))
	h.Write(content)

	var id DocumentID
	h.Sum(id[:0])
	return id
}

// DocumentIDOf is ComputeDocumentID for a text snapshot.
func DocumentIDOf(text string) DocumentID {
	return ComputeDocumentID([]byte(text))
}

// Matches reports whether text is the snapshot id was computed from.
// A false result means results tied to id are stale.
func (id DocumentID) Matches(text string) bool {
	return id == DocumentIDOf(text)
}

// Hex returns the 40-character lowercase hex form.
func (id DocumentID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id DocumentID) String() string {
	return id.Hex()
}

// ParseDocumentID parses the hex form produced by Hex.
func ParseDocumentID(s string) (DocumentID, error) {
	var id DocumentID
	if len(s) != hex.EncodedLen(len(id)) {
		return id, fmt.Errorf("invalid document ID length: expected 40, got %d", len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return DocumentID{}, fmt.Errorf("invalid hex string: %w", err)
	}
	return id, nil
}

// MarshalJSON encodes the ID as its hex string.
func (id DocumentID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON accepts the hex string form.
func (id *DocumentID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDocumentID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value stores the ID as hex text.
func (id DocumentID) Value() (driver.Value, error) {
	return id.Hex(), nil
}

// Scan reads an ID stored by Value.
func (id *DocumentID) Scan(value any) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		return fmt.Errorf("cannot scan nil into DocumentID")
	default:
		return fmt.Errorf("cannot scan type %T into DocumentID", value)
	}

	parsed, err := ParseDocumentID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
