package match

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/il/instructions"
	"github.com/Manu343726/bodypatch/pkg/utils"
	"golang.org/x/crypto/blake2b"
)

var ErrInvalidShape = errors.New("invalid shape fingerprint")

// Shape fingerprints the operation kinds of a contiguous run of instructions relative to the anchor.
// It guards a rule against host changes that keep the checked instructions but reorder or replace
// the instructions between them.
type Shape struct {
	From   int
	Count  int
	Digest [blake2b.Size256]byte
}

func (s Shape) String() string {
	return fmt.Sprintf("shape[%+d..%+d] %x", s.From, s.From+s.Count-1, s.Digest[:4])
}

// ShapeDigest computes the fingerprint of a sequence of operation kinds
func ShapeDigest(ops ...instructions.OpKind) [blake2b.Size256]byte {
	buffer := make([]byte, 0, len(ops)*2)
	for _, op := range ops {
		buffer = append(buffer, byte(op>>8), byte(op))
	}
	return blake2b.Sum256(buffer)
}

// ShapeOfOps creates a shape starting at the given offset from the expected operation kinds
func ShapeOfOps(from int, ops ...instructions.OpKind) Shape {
	return Shape{From: from, Count: len(ops), Digest: ShapeDigest(ops...)}
}

// ShapeFromHex creates a shape from a digest previously printed by a maintainer tool
func ShapeFromHex(from, count int, digest string) (Shape, error) {
	bytes, err := hex.DecodeString(digest)
	if err != nil {
		return Shape{}, utils.MakeError(ErrInvalidShape, "'%v': %v", digest, err)
	}
	if len(bytes) != blake2b.Size256 {
		return Shape{}, utils.MakeError(ErrInvalidShape, "'%v' has %d bytes, expected %d", digest, len(bytes), blake2b.Size256)
	}

	shape := Shape{From: from, Count: count}
	copy(shape.Digest[:], bytes)
	return shape, nil
}

// ShapeOf computes the shape of count instructions starting at anchor+from. Returns false if the
// range is out of bounds
func ShapeOf(s il.Stream, anchor, from, count int) (Shape, bool) {
	start := anchor + from
	if count < 0 || !s.InBounds(start) || !s.InBounds(start+count-1) {
		return Shape{}, false
	}

	ops := make([]instructions.OpKind, count)
	for i := range ops {
		ops[i] = s.At(start + i).Op
	}

	return Shape{From: from, Count: count, Digest: ShapeDigest(ops...)}, true
}
