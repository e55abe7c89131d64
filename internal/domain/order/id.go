// internal/domain/order/id.go
package order

import (
	"crypto/rand"
	"math/big"
)

const (
	idPrefix   = "ORD-"
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 9
)

// NewID returns a client-side order identifier of the shape
// "ORD-" + 9 base36 chars, e.g. "ORD-k3x96hq0d".
//
// Short random tokens are NOT collision-proof at scale (36^9 space,
// birthday bound well under a million orders). The shape is kept for
// compatibility with existing order history; a store-generated ID
// would be the robust fix.
func NewID() string {
	buf := make([]byte, idLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform RNG is broken;
			// nothing sensible to do but panic like uuid.New does.
			panic(err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return idPrefix + string(buf)
}
