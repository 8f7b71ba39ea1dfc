package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/researchit/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Empty(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		doc  *core.Document
	}{
		{
			"full document",
			&core.Document{
				Id:         core.IDFromContent("hybrid retrieval overview"),
				Content:    "Hybrid retrieval combines lexical and vector search.",
				Source:     "handbook.md",
				Section:    "Retrieval",
				Title:      "Hybrid Retrieval",
				Score:      0.83,
				Vector:     []float32{0.1, -0.2, 0.3},
				InsertedAt: now,
				UpdatedAt:  now,
				Metadata:   map[string]string{"chunk": "3"},
			},
		},
		{
			"minimal document",
			&core.Document{
				Id:      core.ID(7),
				Content: "bare content",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalDocument(tt.doc)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalDocument(data)
			require.NoError(t, err)

			assert.Equal(t, tt.doc.Id, decoded.Id)
			assert.Equal(t, tt.doc.Content, decoded.Content)
			assert.Equal(t, tt.doc.Source, decoded.Source)
			assert.Equal(t, tt.doc.Section, decoded.Section)
			assert.Equal(t, tt.doc.Title, decoded.Title)
			assert.Equal(t, tt.doc.Score, decoded.Score)
			assert.Equal(t, tt.doc.Vector, decoded.Vector)
			assert.Equal(t, tt.doc.Metadata, decoded.Metadata)
			assert.True(t, tt.doc.InsertedAt.Equal(decoded.InsertedAt) ||
				tt.doc.InsertedAt.IsZero())
		})
	}
}

func TestUnmarshalDocument_Truncated(t *testing.T) {
	doc := &core.Document{
		Id:      core.ID(1),
		Content: "content long enough to truncate",
	}
	data := MarshalDocument(doc)

	_, err := UnmarshalDocument(data[:len(data)/2])
	assert.Error(t, err)
}
