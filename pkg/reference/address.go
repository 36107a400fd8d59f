package reference

import (
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// Address is a parsed reference body, the text between `@{` and `}`.
//
//	@{name}      frame 0
//	@{.name}     frame 0
//	@{..name}    frame 1
//	@{...name}   frame 2
//	@{/name}     root frame (dots after the slash are ignored)
type Address struct {
	Raw   string
	Depth int
	Root  bool
	Path  []string
}

// FrameIndex returns the frame the address starts searching from in a
// context of n frames, clamped to the root.
func (a Address) FrameIndex(n int) int {
	if n <= 0 {
		return 0
	}
	if a.Root || a.Depth >= n {
		return n - 1
	}
	return a.Depth
}

const addressCacheSize = 2048

var addresses = struct {
	sync.Mutex
	cache *lru.Cache
}{cache: lru.New(addressCacheSize)}

// Parse splits raw into its frame prefix and dotted path. Parsed addresses
// are memoised; callers must not mutate the returned Path.
func Parse(raw string) Address {
	addresses.Lock()
	if cached, ok := addresses.cache.Get(raw); ok {
		addresses.Unlock()
		return cached.(Address)
	}
	addresses.Unlock()

	addr := parse(raw)

	addresses.Lock()
	addresses.cache.Add(raw, addr)
	addresses.Unlock()
	return addr
}

func parse(raw string) Address {
	addr := Address{Raw: raw}
	rest := strings.TrimLeft(raw, ".")
	if dots := len(raw) - len(rest); dots > 1 {
		addr.Depth = dots - 1
	}
	if strings.HasPrefix(rest, "/") {
		addr.Root = true
		rest = strings.TrimLeft(rest[1:], ".")
	}
	if rest != "" {
		addr.Path = strings.Split(rest, ".")
	}
	return addr
}
