package usecase

import "github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"

// ExtractCustomer builds the sparse payer profile from raw order fields.
// Empty fields are dropped entirely; a customer with no data at all yields
// nil so the outbound request omits the object.
func ExtractCustomer(order *model.Order) *model.Customer {
	customer := model.Customer{
		Email:        order.Email,
		GivenNames:   order.FirstName,
		Surname:      order.LastName,
		MobileNumber: order.Telephone,
	}

	address := extractAddress(order)
	if !address.Empty() {
		customer.Addresses = []model.Address{address}
	}

	if customer.Empty() {
		return nil
	}
	return &customer
}

func extractAddress(order *model.Order) model.Address {
	return model.Address{
		StreetLine1: order.Address1,
		StreetLine2: order.Address2,
		State:       order.Zone,
		PostalCode:  order.Postcode,
		City:        order.City,
		Country:     order.CountryCode,
	}
}
