package domain

// Notary is one directory listing as scraped from its detail page.
// Fields are empty when the page did not carry them.
type Notary struct {
	Name    string
	Phone   string // "XX XX XX XX XX"
	Mail    string
	Website string
	Address string
}

// Key identifies the office behind a listing. Listings sharing a key are
// duplicates (co-located notaries sharing a front desk).
type Key struct {
	Address string
	Phone   string
	Mail    string
}
