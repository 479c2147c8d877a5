package forms

import "github.com/IshaanVijayPuniya/Camel-Care/internal/models"

// ListingCategories are the selectable listing tags.
var ListingCategories = []string{"milk", "transport", "vet", "research", "other"}

// RoleChoices mirrors models.Roles as plain strings for the choice
// constraint; registration re-parses the value into the enum.
var RoleChoices = func() []string {
	out := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		out[i] = string(r)
	}
	return out
}()

var Register = Form{
	{Name: "username", Required: true, MinLen: 3, MaxLen: 80},
	{Name: "email", Required: true, Email: true},
	{Name: "password", Required: true, MinLen: 6, MaxLen: 128},
	{Name: "role", Required: true, OneOf: RoleChoices},
}

var Login = Form{
	{Name: "username", Required: true},
	{Name: "password", Required: true},
}

var Listing = Form{
	{Name: "title", Required: true, MinLen: 2, MaxLen: 200},
	{Name: "description", Required: true, MinLen: 10, MaxLen: 2000},
	{Name: "category", Required: true, OneOf: ListingCategories},
	{Name: "price", Numeric: true},
	{Name: "quantity"},
	{Name: "location"},
}

var Message = Form{
	{Name: "receiver", Required: true},
	{Name: "subject", Required: true, MinLen: 1, MaxLen: 200},
	{Name: "body", Required: true, MinLen: 1, MaxLen: 2000},
}

var Event = Form{
	{Name: "title", Required: true, MinLen: 2, MaxLen: 200},
	{Name: "description", Required: true, MinLen: 10, MaxLen: 2000},
	{Name: "date", Required: true},
}
