package inventory

import (
	"fmt"

	"speedit/internal/pkg/errs"
)

// Kind classifies a stock-holding unit. Vans move between stops; warehouses
// and local stores are stationary but still carry coordinates for routing.
type Kind int

const (
	// KindUnknown catches uninitialized Kind values.
	KindUnknown Kind = iota

	// KindWarehouse is a stationary bulk storage site.
	KindWarehouse

	// KindVan is a mobile unit with volumetric cargo capacity.
	KindVan

	// KindLocalStore is a stationary retail point; its stock is visible to
	// monitoring but never used as an allocation source.
	KindLocalStore
)

func kindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:    "Unknown",
		KindWarehouse:  "Warehouse",
		KindVan:        "Van",
		KindLocalStore: "LocalStore",
	}
}

// Validate rejects KindUnknown and out-of-range values.
func (k Kind) Validate() error {
	if k != KindWarehouse && k != KindVan && k != KindLocalStore {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid",
			fmt.Errorf("%d is not a valid inventory kind", k))
	}
	return nil
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindStrings()[k]; ok {
		return s
	}
	return "Unknown"
}
