package models

// AssetOrder selects the sort applied to a portfolio's asset listing.
type AssetOrder int

const (
	// AssetOrderByName sorts ascending by asset name. This is the default.
	AssetOrderByName AssetOrder = 1
	// AssetOrderByCurrentValue sorts descending by the latest history value.
	AssetOrderByCurrentValue AssetOrder = 2
)

// Valid reports whether o is a known ordering.
func (o AssetOrder) Valid() bool {
	return o == AssetOrderByName || o == AssetOrderByCurrentValue
}
