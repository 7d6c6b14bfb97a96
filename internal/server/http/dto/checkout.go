package dto

// CheckoutResponse is the JSON body returned to the checkout UI. Exactly one
// field is set.
type CheckoutResponse struct {
	Error    string `json:"error,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}
