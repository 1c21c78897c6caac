package model

// CatalogKind selects one of the two catalog lists.
type CatalogKind string

const (
	CatalogCountries CatalogKind = "country"
	CatalogDevices   CatalogKind = "device"
)

// Catalog holds the allow-lists of country and device names.
type Catalog struct {
	Countries []string `json:"countries"`
	Devices   []string `json:"devices"`
}

// DefaultCatalog is written the first time the catalog is read.
func DefaultCatalog() Catalog {
	return Catalog{
		Countries: []string{
			"Argentina", "Brasil", "Chile", "Colombia", "Costa Rica",
			"Ecuador", "México", "Perú", "Estados Unidos", "España",
		},
		Devices: []string{
			"Samsung", "LG", "Hisense", "Sony", "Panasonic",
			"TCL", "Philips", "Sharp", "Xiaomi", "Otros",
		},
	}
}

// List returns a pointer to the list for kind.
func (c *Catalog) List(kind CatalogKind) *[]string {
	if kind == CatalogDevices {
		return &c.Devices
	}
	return &c.Countries
}

// IndexOf returns the position of name in the list for kind, or -1.
func (c *Catalog) IndexOf(kind CatalogKind, name string) int {
	for i, v := range *c.List(kind) {
		if v == name {
			return i
		}
	}
	return -1
}

// Field returns the metadata field that references kind.
func (e *MetadataEntry) Field(kind CatalogKind) *string {
	if kind == CatalogDevices {
		return &e.Device
	}
	return &e.Country
}
