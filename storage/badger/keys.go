package badger

import "fmt"

const (
	// vectorPrefix is the key prefix for cached product vectors.
	vectorPrefix = "vec"
)

// vectorKey builds the storage key for a product's cached vector.
func vectorKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s:%d", vectorPrefix, id))
}
