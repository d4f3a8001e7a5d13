package badger

import "fmt"

// Key prefixes for different data types
const (
	sessionStatePrefix = "sesst"
)

// makeSessionStateKey generates the key for the persisted session blob.
// The blob is a singleton, so the key is namespaced but constant.
func makeSessionStateKey() []byte {
	return []byte(fmt.Sprintf("%s:state", sessionStatePrefix))
}
