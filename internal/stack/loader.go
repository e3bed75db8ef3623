package stack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/greenshed/sunmap/internal/exposure"
)

// Cache provides thread-safe caching of decoded photo buffers to avoid
// redundant disk reads when a stack is rebuilt with a new threshold.
//
// Cached buffers remain in memory until explicitly removed via Evict or
// Clear. Buffers are immutable, so handing the same *exposure.Buffer to
// multiple builds is safe.
type Cache struct {
	mu      sync.RWMutex
	buffers map[string]*exposure.Buffer
}

// NewCache creates an empty buffer cache ready for use.
func NewCache() *Cache {
	return &Cache{
		buffers: make(map[string]*exposure.Buffer),
	}
}

// Load returns the buffer for path, decoding the file on first use. The
// buffer is cached under the exact path string provided.
//
// Decoding goes through imaging.Open, which handles PNG, JPEG, GIF, TIFF
// and BMP and applies EXIF orientation so that phone photographs line up
// with the rest of the stack.
func (c *Cache) Load(path string) (*exposure.Buffer, error) {
	c.mu.RLock()
	if b, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return b, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := exposure.NewBuffer(img)

	c.mu.Lock()
	c.buffers[path] = b
	c.mu.Unlock()

	return b, nil
}

// Evict removes a specific buffer from the cache by its path.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	c.mu.Unlock()
}

// Clear removes all buffers from the cache, freeing the associated memory.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*exposure.Buffer)
	c.mu.Unlock()
}

// imageExtensions lists the file extensions considered part of a photo
// stack when scanning a directory.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// DirResult describes the outcome of loading a photo stack directory.
type DirResult struct {
	// Buffers holds the successfully decoded photographs in filename order.
	Buffers []*exposure.Buffer

	// Loaded lists the paths behind Buffers, in the same order.
	Loaded []string

	// Skipped lists image files that could not be decoded. The caller
	// decides whether a partial stack is still acceptable.
	Skipped []string
}

// LoadDir loads every image file in dir (non-recursively) in lexical
// filename order. Files with non-image extensions are ignored; image files
// that fail to decode are recorded in Skipped instead of failing the load.
func (c *Cache) LoadDir(dir string) (*DirResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read stack directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	result := &DirResult{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		b, err := c.Load(path)
		if err != nil {
			result.Skipped = append(result.Skipped, path)
			continue
		}
		result.Buffers = append(result.Buffers, b)
		result.Loaded = append(result.Loaded, path)
	}

	return result, nil
}
