package validation

import "github.com/roastline/commerce-service/internal/domain"

// CartItemPayload is a single cart line as submitted by the storefront.
type CartItemPayload struct {
	ProductID       string `json:"productId,omitempty"`
	CoffeeID        string `json:"coffeeId,omitempty"`
	SourceProductID string `json:"sourceProductId,omitempty"`
	Name            string `json:"name,omitempty"`
	Roast           string `json:"roast,omitempty"`
	Price           int64  `json:"price" validate:"min=0"` // minor units
	Quantity        int    `json:"quantity" validate:"min=0"`
	PurchaseType    string `json:"purchaseType,omitempty"`
	DeliveryEvery   string `json:"deliveryEvery,omitempty"`
	Grind           string `json:"grind,omitempty"`
	Size            string `json:"size,omitempty"`
	Image           string `json:"image,omitempty"`
}

// CheckoutRequest is the payload for POST /api/checkout.
type CheckoutRequest struct {
	Items           []CartItemPayload      `json:"items" validate:"required,min=1,dive"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Payment         string                 `json:"payment" validate:"required"`
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest is the payload for POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the payload for POST /api/auth/reset-password/{token}.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateProfileRequest is the payload for PUT /api/client/profile.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
}

// UpdatePasswordRequest is the payload for PUT /api/client/password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserRequest is the payload for the admin staff-user create/update endpoints.
// Password is required on create only; updates never change it.
type UserRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=client admin livreur"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

// CartItems converts the payload lines into domain cart items.
func (r CheckoutRequest) CartItems() []domain.CartItem {
	items := make([]domain.CartItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.CartItem{
			ProductID:       it.ProductID,
			CoffeeID:        it.CoffeeID,
			SourceProductID: it.SourceProductID,
			Name:            it.Name,
			Roast:           it.Roast,
			Price:           it.Price,
			Quantity:        it.Quantity,
			PurchaseType:    it.PurchaseType,
			DeliveryEvery:   it.DeliveryEvery,
			Grind:           it.Grind,
			Size:            it.Size,
			Image:           it.Image,
		})
	}
	return items
}
