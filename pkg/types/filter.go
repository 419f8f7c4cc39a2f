package types

// Filter carries list-endpoint query options parsed from the URL.
type Filter struct {
	Search string
	Limit  uint64
	Offset uint64
}
