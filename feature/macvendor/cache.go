package macvendor

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// VendorCache is one cached OUI-to-vendor answer. The vendor API is
// rate-limited upstream, so every confirmed answer is remembered locally.
type VendorCache struct {
	// OUI is the first three octets of the MAC, normalized to lowercase
	// hex without separators.
	OUI       string `gorm:"primaryKey;size:6"`
	Vendor    string
	UpdatedAt time.Time
}

// Cache is the persistent OUI lookup cache.
type Cache struct {
	db *gorm.DB
}

// NewCache creates the cache and migrates its table.
func NewCache(db *gorm.DB) (*Cache, error) {
	if err := db.AutoMigrate(&VendorCache{}); err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Get returns the cached vendor for a MAC's OUI, if present.
func (c *Cache) Get(mac string) (string, bool) {
	oui, ok := ouiOf(mac)
	if !ok {
		return "", false
	}

	var entry VendorCache
	if err := c.db.First(&entry, "oui = ?", oui).Error; err != nil {
		return "", false
	}
	return entry.Vendor, true
}

// Put stores a confirmed vendor answer for a MAC's OUI.
func (c *Cache) Put(mac, vendor string) error {
	oui, ok := ouiOf(mac)
	if !ok {
		return nil
	}
	return c.db.Save(&VendorCache{OUI: oui, Vendor: vendor, UpdatedAt: time.Now()}).Error
}

// ouiOf extracts the normalized OUI (first three octets) of a MAC address.
func ouiOf(mac string) (string, bool) {
	clean := normalizeMAC(mac)
	if len(clean) < 6 {
		return "", false
	}
	return clean[:6], true
}

// normalizeMAC strips the common delimiters and lowercases the address.
func normalizeMAC(mac string) string {
	replacer := strings.NewReplacer(":", "", "-", "", ".", "")
	return strings.ToLower(replacer.Replace(mac))
}
