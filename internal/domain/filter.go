package domain

// PostFilter narrows post listings.
type PostFilter struct {
	Status *PostStatus
	Limit  uint64
	Offset uint64
}
