package domain

// A customer row as loaded from the sheet. Identity is the (name, address)
// pair of the row itself; duplicate rows are preserved as distinct records.
type CustomerRecord struct {
	Name    string
	Address string
}
