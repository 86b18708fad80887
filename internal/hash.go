package internal

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// HashBehavior and HashEvent are the stable identity hashes spec §4.G
// demands: default structural hashes are unsuitable for behaviors and
// events because they embed mutable reader/listener state, so these
// hash the creation-order id instead, with xxhash (the hashing
// primitive already present in the corpus via delaneyj-signalparty's
// go.mod, where cespare/xxhash/v2 backs set/map keys for the same
// "stable handle, not structural content" reason).

func HashBehavior(b *Behavior) uint64 {
	return hashID(b.ID())
}

func HashEvent(c *Channel) uint64 {
	return hashID(c.ID())
}

func hashID(id uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], id)
	return xxhash.Sum64(buf[:])
}
