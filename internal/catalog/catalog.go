// Package catalog holds the static declaration categories. The table is
// seeded at startup and never mutated; thresholds here drive every
// compliance computation.
package catalog

import "kerbside/internal/domain"

var categories = []domain.DeclarationCategory{
	{
		ID:             domain.DeclarationRental,
		Label:          "Rental only",
		Description:    "The vehicle is used exclusively for guest trips booked through the platform.",
		MaxGapMiles:    500,
		TaxImplication: "Rental income only; the vehicle may qualify as a business asset.",
		InsuranceNote:  "Covered under the platform policy for every mile driven.",
		ClaimImpact:    "Claims are assessed against rental-only usage; undeclared personal miles can void coverage.",
	},
	{
		ID:             domain.DeclarationMixed,
		Label:          "Mixed use",
		Description:    "The vehicle is shared between guest trips and the host's own driving.",
		MaxGapMiles:    1200,
		TaxImplication: "Deductions must be apportioned between rental and personal miles.",
		InsuranceNote:  "Platform coverage applies to guest trips only; personal miles need the host's own policy.",
		ClaimImpact:    "Claims require distinguishing which usage the loss occurred under.",
	},
	{
		ID:             domain.DeclarationPersonal,
		Label:          "Primarily personal",
		Description:    "The vehicle is the host's daily driver, listed occasionally.",
		MaxGapMiles:    2500,
		TaxImplication: "Rental income is incidental; most vehicle costs are not deductible.",
		InsuranceNote:  "The host's personal policy is primary outside guest trips.",
		ClaimImpact:    "High personal mileage is expected and does not count against claims.",
	},
}

var byID = func() map[domain.DeclarationID]domain.DeclarationCategory {
	m := make(map[domain.DeclarationID]domain.DeclarationCategory, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}()

// All returns the catalog in display order.
func All() []domain.DeclarationCategory {
	out := make([]domain.DeclarationCategory, len(categories))
	copy(out, categories)
	return out
}

// Lookup returns the category for id.
func Lookup(id domain.DeclarationID) (domain.DeclarationCategory, bool) {
	c, ok := byID[id]
	return c, ok
}

// Valid reports whether id names a known category.
func Valid(id domain.DeclarationID) bool {
	_, ok := byID[id]
	return ok
}
