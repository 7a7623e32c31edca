// api/errors/shop_errors.go
package errors

import "errors"

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvalidCustomerData = errors.New("invalid customer data")

	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidOrderData = errors.New("invalid order data")
	ErrEmptyOrder       = errors.New("order must contain at least one item")

	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidProductData = errors.New("invalid product data")
	ErrProductSold        = errors.New("product already sold")

	ErrConversationNotFound = errors.New("conversation not found")
	ErrInvalidMessageData   = errors.New("invalid message data")

	ErrInvalidUploadToken = errors.New("invalid upload token")
	ErrUploadExpired      = errors.New("upload url expired")
)
