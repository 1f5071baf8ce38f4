package swap

import (
	"image"
	"sync"

	"github.com/tauraamui/bgswap/pkg/imaging"
)

// Background holds the still image frames are composited over. Set stores
// a private copy which is never modified afterwards, so a snapshot taken at
// the start of a call stays consistent for the whole call.
type Background struct {
	mu  sync.RWMutex
	img image.Image
}

func (b *Background) Set(img image.Image) {
	var stored image.Image
	if img != nil {
		stored = imaging.Clone(img)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.img = stored
}

func (b *Background) Snapshot() image.Image {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.img
}
