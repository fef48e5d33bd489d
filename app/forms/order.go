package forms

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/smartshop/webapp/app/models"
)

// OrderForm backs the admin order-creation screen. Line items arrive as
// parallel indexed fields (items[i].productId / items[i].quantity); empty
// rows are skipped.
type OrderForm struct {
	ClientID  int64
	PromoCode string
	Items     []models.CreateOrderItem

	clientRaw string
}

func ParseOrder(r *http.Request) OrderForm {
	f := OrderForm{
		PromoCode: strings.ToUpper(strings.TrimSpace(r.PostFormValue("promoCode"))),
		clientRaw: strings.TrimSpace(r.PostFormValue("clientId")),
	}
	f.ClientID, _ = strconv.ParseInt(f.clientRaw, 10, 64)

	for i := 0; ; i++ {
		prefix := "items[" + strconv.Itoa(i) + "]"
		if _, ok := r.PostForm[prefix+".productId"]; !ok {
			break
		}
		// The form posts every row, filled or not, so a blank row is
		// skipped rather than ending the scan.
		productID, _ := strconv.ParseInt(r.PostFormValue(prefix+".productId"), 10, 64)
		quantity, _ := strconv.Atoi(r.PostFormValue(prefix + ".quantity"))
		if productID == 0 && quantity == 0 {
			continue
		}
		f.Items = append(f.Items, models.CreateOrderItem{
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	return f
}

func (f OrderForm) Validate() Errors {
	errs := Errors{}
	if f.clientRaw == "" || f.ClientID <= 0 {
		errs["clientId"] = "Le client est obligatoire."
	}
	if f.PromoCode != "" && !promoCodePattern.MatchString(f.PromoCode) {
		errs["promoCode"] = "Le code promo est invalide (format attendu : PROMO-XXXX)."
	}
	if len(f.Items) == 0 {
		errs["items"] = "Au moins un article est obligatoire."
	}
	for _, it := range f.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			errs["items"] = "Chaque ligne doit avoir un produit et une quantité positive."
			break
		}
	}
	return errs
}

func (f OrderForm) ToRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		ClientID:  f.ClientID,
		PromoCode: f.PromoCode,
		Items:     f.Items,
	}
}

// PaymentForm backs the payment block on the admin order detail screen.
// The amount ceiling check against the order's remaining due happens in the
// controller, which knows the order.
type PaymentForm struct {
	OrderID     int64
	Amount      float64
	Type        string
	Reference   string
	Bank        string
	PaymentDate string
	DueDate     string

	amountRaw string
}

func ParsePayment(r *http.Request, orderID int64) PaymentForm {
	f := PaymentForm{
		OrderID:     orderID,
		Type:        strings.ToUpper(strings.TrimSpace(r.PostFormValue("type"))),
		Reference:   strings.TrimSpace(r.PostFormValue("reference")),
		Bank:        strings.TrimSpace(r.PostFormValue("bank")),
		PaymentDate: strings.TrimSpace(r.PostFormValue("paymentDate")),
		DueDate:     strings.TrimSpace(r.PostFormValue("dueDate")),
		amountRaw:   strings.TrimSpace(r.PostFormValue("amount")),
	}
	f.Amount, _ = strconv.ParseFloat(f.amountRaw, 64)
	return f
}

func (f PaymentForm) Validate() Errors {
	errs := Errors{}
	if f.amountRaw == "" {
		errs["amount"] = "Le montant est obligatoire."
	} else if _, err := strconv.ParseFloat(f.amountRaw, 64); err != nil || f.Amount <= 0 {
		errs["amount"] = "Le montant doit être un nombre positif."
	}
	switch f.Type {
	case models.PaymentCash:
	case models.PaymentCheck, models.PaymentTransfer:
		if f.Reference == "" {
			errs["reference"] = "La référence est obligatoire pour ce type de paiement."
		}
		if f.Bank == "" {
			errs["bank"] = "La banque est obligatoire pour ce type de paiement."
		}
	default:
		errs["type"] = "Le type de paiement est invalide."
	}
	return errs
}

func (f PaymentForm) ToRequest() models.CreatePaymentRequest {
	return models.CreatePaymentRequest{
		OrderID:     f.OrderID,
		Amount:      f.Amount,
		Type:        f.Type,
		Reference:   f.Reference,
		Bank:        f.Bank,
		PaymentDate: f.PaymentDate,
		DueDate:     f.DueDate,
	}
}
