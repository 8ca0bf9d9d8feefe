package pagination

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Page selects one slice of an ordered listing. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

// New clamps number and size into range
func New(number, size int) Page {
	if number < 1 {
		number = 1
	}
	switch {
	case size < 1:
		size = DefaultSize
	case size > MaxSize:
		size = MaxSize
	}
	return Page{Number: number, Size: size}
}

// FromQuery reads ?page= and ?limit=
func FromQuery(c *fiber.Ctx) Page {
	return New(c.QueryInt("page", 1), c.QueryInt("limit", DefaultSize))
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Scope limits a GORM query to the page
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Size)
}

// Meta describes where a page sits in the listing
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Listing is the payload of every paginated endpoint
type Listing struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta"`
}

// NewListing wraps one page of items with its position
func NewListing(items any, p Page, total int64) *Listing {
	pages := int((total + int64(p.Size) - 1) / int64(p.Size))
	return &Listing{
		Data: items,
		Meta: &Meta{
			Page:       p.Number,
			Limit:      p.Size,
			Total:      total,
			TotalPages: pages,
			HasNext:    p.Number < pages,
			HasPrev:    p.Number > 1,
		},
	}
}
