package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

const (
	DefaultServiceDuration = 45
	DefaultPackageSessions = 4
	ImportDiscountPercent  = 20
)

var dollarAmount = regexp.MustCompile(`\$(\d+)`)

// PackagePrice returns the explicit price, or else the sum of every "$N"
// amount in the description. ok is false when neither yields a price.
func PackagePrice(price *float64, description string) (float64, bool) {
	if price != nil && *price > 0 {
		return *price, true
	}

	var total float64
	found := false
	for _, m := range dollarAmount.FindAllStringSubmatch(description, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		total += float64(n)
		found = true
	}
	if !found || total <= 0 {
		return 0, false
	}
	return total, true
}

// MatchServices returns the services whose name is mentioned in text. A
// name matches when at least two of its words longer than three letters
// occur, or when it has a single such word and that word occurs.
func MatchServices(text string, services []models.Service) []models.Service {
	lower := strings.ToLower(text)
	var out []models.Service

	for _, s := range services {
		var terms []string
		for _, w := range strings.Fields(strings.ToLower(s.Name)) {
			if len(w) > 3 {
				terms = append(terms, w)
			}
		}

		hits := 0
		for _, term := range terms {
			if strings.Contains(lower, term) {
				hits++
			}
		}
		if hits >= 2 || (len(terms) == 1 && hits == 1) {
			out = append(out, s)
		}
	}
	return out
}

// FitPackageServices pads found with other services from pool until the
// minimum is met, then trims to the maximum. Order is preserved.
func FitPackageServices(found, pool []models.Service) []models.Service {
	seen := make(map[uint]bool, len(found))
	out := make([]models.Service, 0, MaxPackageServices)
	for _, s := range found {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}

	for _, s := range pool {
		if len(out) >= MinPackageServices {
			break
		}
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}

	if len(out) > MaxPackageServices {
		out = out[:MaxPackageServices]
	}
	return out
}
