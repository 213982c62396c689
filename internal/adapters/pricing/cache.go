package pricing

import (
	"strings"
	"sync"
	"time"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// DefaultCacheTTL es la vida útil de una cotización externa cacheada.
const DefaultCacheTTL = 300 * time.Second

// Cache guarda cotizaciones externas con TTL, keyed por plataforma y
// título normalizado. Es propiedad del Comparator que la recibe: no hay
// estado global, dos scans concurrentes usan caches independientes.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	price     domain.Cents
	expiresAt time.Time
}

// NewCache crea una Cache con el TTL dado; ttl <= 0 usa DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get devuelve la cotización cacheada si existe y no expiró.
func (c *Cache) Get(platform, title string) (domain.Cents, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[cacheKey(platform, title)]
	if !ok || c.now().After(e.expiresAt) {
		return 0, false
	}
	return e.price, true
}

// Put guarda una cotización con el TTL de la cache.
func (c *Cache) Put(platform, title string, price domain.Cents) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(platform, title)] = cacheEntry{
		price:     price,
		expiresAt: c.now().Add(c.ttl),
	}
}

// cacheKey normaliza el título para que variantes de espaciado y
// mayúsculas compartan entrada.
func cacheKey(platform, title string) string {
	return platform + "|" + strings.ToLower(strings.Join(strings.Fields(title), " "))
}
