package entities

// MarshalText renders the month by name in JSON
func (m Month) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// MarshalText renders the site by name in JSON
func (s Site) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// MarshalText renders the tag by name in JSON
func (c CompletenessTag) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MarshalText renders the status by name in JSON
func (s SupplierStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// MarshalText renders the price source by name in JSON
func (p PriceSource) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
