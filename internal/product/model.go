package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryCareKit        Category = "care-kit"
	CategoryIndividualItem Category = "individual-item"
	CategoryBook           Category = "book"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryCareKit, CategoryIndividualItem, CategoryBook:
		return true
	}
	return false
}

type OstomyType string

const (
	OstomyColostomy OstomyType = "colostomy"
	OstomyIleostomy OstomyType = "ileostomy"
	OstomyUrostomy  OstomyType = "urostomy"
	OstomyUniversal OstomyType = "universal"
)

func (o OstomyType) Valid() bool {
	switch o {
	case OstomyColostomy, OstomyIleostomy, OstomyUrostomy, OstomyUniversal:
		return true
	}
	return false
}

type KitType string

const (
	KitComplete   KitType = "complete"
	KitIndividual KitType = "individual"
)

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      Category        `json:"category"`
	OstomyType    OstomyType      `json:"ostomyType"`
	KitType       *KitType        `json:"kitType,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
	Images        []string        `json:"images"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Available reports whether the product may be added to a cart.
func (p Product) Available() bool {
	return p.StockQuantity > 0
}

func (p Product) PrimaryImage() string {
	for _, img := range p.Images {
		if strings.TrimSpace(img) != "" {
			return img
		}
	}
	return ""
}
