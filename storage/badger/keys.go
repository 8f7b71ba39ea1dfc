package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/researchit/core"
)

// Key prefixes for different data types
const (
	docRecordPrefix  = "docrec"
	docSectionPrefix = "docrecs"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", docRecordPrefix, id))
}

// makeDocSectionKey generates a composite key for the section index.
// Format: prefix:section:id
func makeDocSectionKey(section string, id core.ID) []byte {
	prefix := docSectionPrefix + ":" + section + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDocSectionKey generates a partial key for section scans.
// Format: prefix:section:
func makePartialDocSectionKey(section string) []byte {
	return []byte(docSectionPrefix + ":" + section + ":")
}
