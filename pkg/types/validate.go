package types

import "math"

// Working range for concrete dates.
const (
	MinYear = 1980
	MaxYear = 2025
)

// PhoneLength is the exact number of digits in a phone number.
const PhoneLength = 8

// Property types.
const (
	PropertyTypeLand      = "land"
	PropertyTypeHouse     = "house"
	PropertyTypeApartment = "apartment"
)

// Listing types for properties.
const (
	ListingTypeSale = "sale"
	ListingTypeRent = "rent"
)

// Budget types for clients.
const (
	BudgetTypeRent = "rent"
	BudgetTypeBuy  = "buy"
)

// Contract types.
const (
	ContractTypeSale = "sale"
	ContractTypeRent = "rent"
)

var validPropertyTypes = map[string]bool{
	PropertyTypeLand:      true,
	PropertyTypeHouse:     true,
	PropertyTypeApartment: true,
}

var validListingTypes = map[string]bool{
	ListingTypeSale: true,
	ListingTypeRent: true,
}

var validBudgetTypes = map[string]bool{
	BudgetTypeRent: true,
	BudgetTypeBuy:  true,
}

var validContractTypes = map[string]bool{
	ContractTypeSale: true,
	ContractTypeRent: true,
}

// IsValidPropertyType reports whether s is land, house, or apartment.
// Matching is case-sensitive.
func IsValidPropertyType(s string) bool { return validPropertyTypes[s] }

// IsValidListingType reports whether s is sale or rent.
func IsValidListingType(s string) bool { return validListingTypes[s] }

// IsValidBudgetType reports whether s is rent or buy.
func IsValidBudgetType(s string) bool { return validBudgetTypes[s] }

// IsValidContractType reports whether s is sale or rent.
func IsValidContractType(s string) bool { return validContractTypes[s] }

// IsValidPhone reports whether phone is exactly eight decimal digits.
func IsValidPhone(phone string) bool {
	if len(phone) != PhoneLength {
		return false
	}
	for i := 0; i < len(phone); i++ {
		if !isDigit(phone[i]) {
			return false
		}
	}
	return true
}

// LooseEmailHeuristic is the brokerage's historical email check. It is not
// an RFC 5322 validator and must not be replaced by one: it accepts as soon
// as a '.' follows exactly one '@', and rejects a leading '@', a second '@',
// or input that ends first.
func LooseEmailHeuristic(email string) bool {
	sinceAt := 0
	ats := 0
	for _, c := range email {
		if c != '@' {
			sinceAt++
		} else {
			if sinceAt == 0 {
				return false
			}
			ats++
			sinceAt = 0
			if ats > 1 {
				return false
			}
		}
		sinceAt++
		if c == '.' && ats == 1 {
			return true
		}
	}
	return false
}

// IsValidYear reports whether year lies in [MinYear, MaxYear].
func IsValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// IsValidMonth reports whether month lies in [1, 12].
func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// IsValidDay reports whether day is accepted for the given month and year.
// February allows 29 days when year%4 == 0 and 28 otherwise. After the
// month-specific checks a final 1..30 bound applies to every month, so the
// 31st is never accepted.
func IsValidDay(day, month, year int) bool {
	if month == 2 && year%4 == 0 {
		if !(day > 0 && day <= 29) {
			return false
		}
	} else if month == 2 {
		if !(day > 0 && day <= 28) {
			return false
		}
	}

	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		if !(day > 0 && day <= 31) {
			return false
		}
	}

	return day > 0 && day <= 30
}

// CheckName validates a person's name or a place. Empty text and text
// containing a decimal digit are reported as different reasons.
func CheckName(field, text string) error {
	if text == "" {
		return &ValidationError{Field: field, Reason: ReasonEmpty}
	}
	if ContainsDigit(text) {
		return &ValidationError{Field: field, Reason: ReasonContainsDigits}
	}
	return nil
}

// ContainsDigit reports whether text has at least one ASCII decimal digit.
func ContainsDigit(text string) bool {
	for i := 0; i < len(text); i++ {
		if isDigit(text[i]) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func allDigits(text string) bool {
	for i := 0; i < len(text); i++ {
		if !isDigit(text[i]) {
			return false
		}
	}
	return text != ""
}

// checkPositive rejects NaN, the infinities, and values <= 0.
func checkPositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Reason: ReasonNotFinite}
	}
	if v <= 0 {
		return &ValidationError{Field: field, Reason: ReasonNotPositive}
	}
	return nil
}
