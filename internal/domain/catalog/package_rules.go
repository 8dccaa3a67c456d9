package catalog

import (
	"fmt"
	"math"

	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
)

const (
	MinPackageServices = 3
	MaxPackageServices = 5
)

// ValidatePackageServices checks the number of distinct services linked
// to a package.
func ValidatePackageServices(ids []uint) error {
	n := len(Distinct(ids))
	if n < MinPackageServices || n > MaxPackageServices {
		return httperr.ErrBusinessMsg(
			"invalid_package_services",
			fmt.Sprintf("A package must include between %d and %d services", MinPackageServices, MaxPackageServices),
		)
	}
	return nil
}

func Distinct(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Round2 rounds a money amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyDiscount returns original reduced by percent, rounded to cents.
func ApplyDiscount(original, percent float64) float64 {
	return Round2(original * (1 - percent/100))
}

func HasDiscount(original *float64, price float64) bool {
	return original != nil && *original > price
}

// DiscountPercentage is the whole-number saving over the original price,
// or 0 when there is none.
func DiscountPercentage(original *float64, price float64) int {
	if !HasDiscount(original, price) || *original <= 0 {
		return 0
	}
	return int(math.Round((*original - price) / *original * 100))
}

func ValidateDiscountPercent(percent float64) error {
	if percent < 0 || percent >= 100 {
		return httperr.ErrBusinessMsg("invalid_discount", "Discount must be between 0 and 100")
	}
	return nil
}
