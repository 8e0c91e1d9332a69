package models

// Checkup categories offered in the category dropdowns. The "all"
// filter value used by the query layer is not a category.
const (
	CategoryGeneral     = "General"
	CategoryDental      = "Dental"
	CategoryEye         = "Eye"
	CategoryCardiology  = "Cardiology"
	CategoryDermatology = "Dermatology"
	CategoryOrthopedic  = "Orthopedic"
	CategoryGynecology  = "Gynecology"
	CategoryPediatric   = "Pediatric"
	CategoryOther       = "Other"
)

// Categories lists every valid checkup category, in display order.
var Categories = []string{
	CategoryGeneral,
	CategoryDental,
	CategoryEye,
	CategoryCardiology,
	CategoryDermatology,
	CategoryOrthopedic,
	CategoryGynecology,
	CategoryPediatric,
	CategoryOther,
}

// IsValidCategory reports whether category is one of the known categories.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Checkup is a recorded or scheduled medical visit. Date and CreatedAt
// hold RFC 3339 UTC timestamps; the JSON field names are the on-disk
// contract and must not change.
type Checkup struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Doctor    string `json:"doctor"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
	Date      string `json:"date"`
	CreatedAt string `json:"createdAt"`
}
