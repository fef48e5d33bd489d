package forms_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/webapp/app/forms"
)

func postForm(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestLoginFormRequiredFields(t *testing.T) {
	form := forms.ParseLogin(postForm(url.Values{}))
	errs := form.Validate()

	assert.Equal(t, "Le nom d'utilisateur est obligatoire.", errs["username"])
	assert.Equal(t, "Le mot de passe est obligatoire.", errs["password"])

	form = forms.ParseLogin(postForm(url.Values{"username": {" admin "}, "password": {"admin"}}))
	assert.Equal(t, "admin", form.Username)
	assert.False(t, form.Validate().Has())
}

func TestProductFormValidation(t *testing.T) {
	form := forms.ParseProduct(postForm(url.Values{
		"name":          {"Clavier"},
		"unitPrice":     {"49.90"},
		"stockQuantity": {"12"},
	}))
	assert.False(t, form.Validate().Has())
	assert.Equal(t, 49.90, form.UnitPrice)

	form = forms.ParseProduct(postForm(url.Values{
		"name":          {""},
		"unitPrice":     {"abc"},
		"stockQuantity": {"-3"},
	}))
	errs := form.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "unitPrice")
	assert.Contains(t, errs, "stockQuantity")
}

func TestClientFormEmail(t *testing.T) {
	form := forms.ParseClient(postForm(url.Values{
		"name":  {"Jean"},
		"email": {"pas-un-email"},
	}))
	errs := form.Validate()
	assert.Equal(t, "L'email est invalide.", errs["email"])

	form = forms.ParseClient(postForm(url.Values{
		"name":  {"Jean"},
		"email": {"jean@example.com"},
	}))
	assert.False(t, form.Validate().Has())
}

func TestOrderFormParsesIndexedItems(t *testing.T) {
	form := forms.ParseOrder(postForm(url.Values{
		"clientId":           {"4"},
		"promoCode":          {"promo-ab12"},
		"items[0].productId": {"10"},
		"items[0].quantity":  {"2"},
		"items[1].productId": {""},
		"items[1].quantity":  {""},
		"items[2].productId": {"11"},
		"items[2].quantity":  {"1"},
	}))

	require.Len(t, form.Items, 2)
	assert.Equal(t, int64(10), form.Items[0].ProductID)
	assert.Equal(t, 2, form.Items[0].Quantity)
	assert.Equal(t, int64(11), form.Items[1].ProductID)

	// Promo codes are upcased on parse, so lowercase input still passes.
	assert.Equal(t, "PROMO-AB12", form.PromoCode)
	assert.False(t, form.Validate().Has())
}

func TestOrderFormPromoPattern(t *testing.T) {
	valid := []string{"PROMO-AB12", "PROMO-0000", "PROMO-ZZZZ"}
	invalid := []string{"PROMO-abc", "PROMO-AB1", "PROMO-AB123", "CODE-AB12", "PROMO_AB12"}

	base := url.Values{
		"clientId":           {"1"},
		"items[0].productId": {"1"},
		"items[0].quantity":  {"1"},
	}

	for _, code := range valid {
		base.Set("promoCode", code)
		form := forms.ParseOrder(postForm(base))
		assert.NotContains(t, form.Validate(), "promoCode", code)
	}
	for _, code := range invalid {
		base.Set("promoCode", code)
		form := forms.ParseOrder(postForm(base))
		assert.Contains(t, form.Validate(), "promoCode", code)
	}
}

func TestOrderFormRequiresClientAndItems(t *testing.T) {
	form := forms.ParseOrder(postForm(url.Values{}))
	errs := form.Validate()
	assert.Equal(t, "Le client est obligatoire.", errs["clientId"])
	assert.Equal(t, "Au moins un article est obligatoire.", errs["items"])

	form = forms.ParseOrder(postForm(url.Values{
		"clientId":           {"3"},
		"items[0].productId": {"5"},
		"items[0].quantity":  {"0"},
	}))
	assert.Contains(t, form.Validate(), "items")
}

func TestPaymentFormRules(t *testing.T) {
	form := forms.ParsePayment(postForm(url.Values{
		"amount": {"120"},
		"type":   {"cash"},
	}), 9)
	assert.False(t, form.Validate().Has())
	assert.Equal(t, int64(9), form.OrderID)
	assert.Equal(t, "CASH", form.Type)

	form = forms.ParsePayment(postForm(url.Values{
		"amount": {"120"},
		"type":   {"CHECK"},
	}), 9)
	errs := form.Validate()
	assert.Contains(t, errs, "reference")
	assert.Contains(t, errs, "bank")

	form = forms.ParsePayment(postForm(url.Values{
		"amount": {""},
		"type":   {"CARD"},
	}), 9)
	errs = form.Validate()
	assert.Equal(t, "Le montant est obligatoire.", errs["amount"])
	assert.Equal(t, "Le type de paiement est invalide.", errs["type"])
}
