// Package forms binds and validates the console's HTML forms. Each form
// parses itself from posted values and returns a field-keyed error map;
// an empty map means the form is valid. Messages are user-visible and in
// French, matching the rest of the UI.
package forms

import (
	"net/http"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"github.com/smartshop/webapp/app/models"
)

// Errors maps field name to the message rendered under the field.
type Errors map[string]string

// Has reports whether any field failed.
func (e Errors) Has() bool { return len(e) > 0 }

// promoCodePattern is the only promo format the backend accepts.
var promoCodePattern = regexp.MustCompile(`^PROMO-[A-Z0-9]{4}$`)

// LoginForm is the credential form on /login.
type LoginForm struct {
	Username string
	Password string
}

func ParseLogin(r *http.Request) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}

func (f LoginForm) Validate() Errors {
	errs := Errors{}
	if f.Username == "" {
		errs["username"] = "Le nom d'utilisateur est obligatoire."
	}
	if f.Password == "" {
		errs["password"] = "Le mot de passe est obligatoire."
	}
	return errs
}

// ProductForm backs the admin product create/edit screens.
type ProductForm struct {
	Name          string
	Description   string
	UnitPrice     float64
	StockQuantity int

	priceRaw string
	stockRaw string
}

func ParseProduct(r *http.Request) ProductForm {
	f := ProductForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		priceRaw:    strings.TrimSpace(r.PostFormValue("unitPrice")),
		stockRaw:    strings.TrimSpace(r.PostFormValue("stockQuantity")),
	}
	f.UnitPrice, _ = strconv.ParseFloat(f.priceRaw, 64)
	f.StockQuantity, _ = strconv.Atoi(f.stockRaw)
	return f
}

func (f ProductForm) Validate() Errors {
	errs := Errors{}
	if f.Name == "" {
		errs["name"] = "Le nom est obligatoire."
	}
	if f.priceRaw == "" {
		errs["unitPrice"] = "Le prix est obligatoire."
	} else if _, err := strconv.ParseFloat(f.priceRaw, 64); err != nil || f.UnitPrice <= 0 {
		errs["unitPrice"] = "Le prix doit être un nombre positif."
	}
	if f.stockRaw == "" {
		errs["stockQuantity"] = "Le stock est obligatoire."
	} else if _, err := strconv.Atoi(f.stockRaw); err != nil || f.StockQuantity < 0 {
		errs["stockQuantity"] = "Le stock doit être un entier positif ou nul."
	}
	return errs
}

func (f ProductForm) ToRequest() models.ProductRequest {
	return models.ProductRequest{
		Name:          f.Name,
		Description:   f.Description,
		UnitPrice:     f.UnitPrice,
		StockQuantity: f.StockQuantity,
	}
}

// ClientForm backs the admin client edit screen.
type ClientForm struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

func ParseClient(r *http.Request) ClientForm {
	return ClientForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Phone:   strings.TrimSpace(r.PostFormValue("phone")),
		Address: strings.TrimSpace(r.PostFormValue("address")),
	}
}

func (f ClientForm) Validate() Errors {
	errs := Errors{}
	if f.Name == "" {
		errs["name"] = "Le nom est obligatoire."
	}
	if f.Email == "" {
		errs["email"] = "L'email est obligatoire."
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs["email"] = "L'email est invalide."
	}
	return errs
}

func (f ClientForm) ToRequest() models.UpdateClientRequest {
	return models.UpdateClientRequest{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Address: f.Address,
	}
}
