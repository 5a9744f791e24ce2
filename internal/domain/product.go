package domain

type ProductCondition string

const (
	ProductConditionNew        ProductCondition = "NEW"
	ProductConditionExcellent  ProductCondition = "EXCELLENT"
	ProductConditionGood       ProductCondition = "GOOD"
	ProductConditionAcceptable ProductCondition = "ACCEPTABLE"
)

type Product struct {
	ID               int32            `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	PricePerDayCents int64            `json:"price_per_day_cents"`
	Condition        ProductCondition `json:"condition"`
	// Available reflects the sum of all committed reservations at all
	// times; it is only mutated through atomic reserve/release.
	Available int32   `json:"available"`
	CreatedOn string  `json:"created_on"`
	DeletedOn *string `json:"deleted_on,omitempty"`
}
