/**
 * @description
 * Request validation built on go-playground/validator. Field rules live as
 * struct tags on the request types; rules spanning more than one field are
 * registered as struct-level validations here.
 */
package validation

import (
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation
// registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// A subscription line must carry something the resolver can work with:
	// a product reference or a descriptive roast.
	v.RegisterStructValidation(checkoutStructValidation, CheckoutRequest{})

	return v
}

func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)

	for i, it := range req.Items {
		if !isSubscriptionPayload(it) {
			continue
		}
		if strings.TrimSpace(it.ProductID) == "" &&
			strings.TrimSpace(it.CoffeeID) == "" &&
			strings.TrimSpace(it.SourceProductID) == "" &&
			strings.TrimSpace(it.Roast) == "" {
			sl.ReportError(req.Items[i], "items", "Items", "subscription_item_resolvable",
				"subscription item carries no product reference or roast")
		}
	}
}

func isSubscriptionPayload(it CartItemPayload) bool {
	tag := strings.ToLower(strings.TrimSpace(it.PurchaseType))
	tag = strings.NewReplacer("-", "", "_", "", " ", "").Replace(tag)
	switch tag {
	case "subscription", "recurring":
		return true
	case "":
		return strings.TrimSpace(it.DeliveryEvery) != ""
	}
	return false
}
