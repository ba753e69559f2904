package state

import (
	"encoding/json"
	"fmt"
)

// Document is the serializable content of a scene.
type Document struct {
	Background string   `json:"background"`
	Objects    []Object `json:"objects"`
}

// Snapshot is an immutable capture of a scene at one instant.
type Snapshot struct {
	seq  uint64
	data []byte
}

// EncodeSnapshot serializes doc. seq records the snapshot's position in the
// session and takes no part in the encoding.
func EncodeSnapshot(seq uint64, doc Document) (Snapshot, error) {
	if doc.Objects == nil {
		doc.Objects = []Object{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return Snapshot{seq: seq, data: data}, nil
}

func (s Snapshot) Seq() uint64 { return s.seq }

func (s Snapshot) IsZero() bool { return s.data == nil }

// Bytes returns a copy of the serialized scene.
func (s Snapshot) Bytes() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

func (s Snapshot) Document() (Document, error) {
	var doc Document
	if s.data == nil {
		return doc, nil
	}
	if err := json.Unmarshal(s.data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode snapshot %d: %w", s.seq, err)
	}
	return doc, nil
}
