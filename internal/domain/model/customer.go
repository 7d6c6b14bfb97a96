package model

// Address is a sparse billing address. Empty fields are omitted from the
// outbound payload entirely.
type Address struct {
	StreetLine1 string `json:"street_line1,omitempty"`
	StreetLine2 string `json:"street_line2,omitempty"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Empty reports whether every address field is blank.
func (a Address) Empty() bool {
	return a == Address{}
}

// Customer is the sparse payer profile attached to an invoice request.
type Customer struct {
	Email        string    `json:"email,omitempty"`
	GivenNames   string    `json:"given_names,omitempty"`
	Surname      string    `json:"surname,omitempty"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	Addresses    []Address `json:"addresses,omitempty"`
}

// Empty reports whether the customer carries no data at all.
func (c Customer) Empty() bool {
	return c.Email == "" && c.GivenNames == "" && c.Surname == "" &&
		c.MobileNumber == "" && len(c.Addresses) == 0
}
