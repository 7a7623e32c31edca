// api/util/validation_util.go

package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/fixhub-app/fixhub/api/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{
		validate: validator.New(),
	}
}

func (v *ValidationUtil) ValidateTicket(ticket model.Ticket) error {
	if ticket.CustomerID == "" {
		return fmt.Errorf("ticket customer cannot be empty")
	}
	if ticket.DeviceBrand == "" || ticket.DeviceModel == "" {
		return fmt.Errorf("ticket device brand and model cannot be empty")
	}
	if ticket.Issue == "" {
		return fmt.Errorf("ticket issue description cannot be empty")
	}
	if ticket.Status != "" && !model.ValidTicketStatus(ticket.Status) {
		return fmt.Errorf("unknown ticket status %q", ticket.Status)
	}
	if ticket.QuotedPrice < 0 {
		return fmt.Errorf("ticket quoted price cannot be negative")
	}
	return nil
}

func (v *ValidationUtil) ValidateCustomer(customer model.Customer) error {
	if customer.Name == "" {
		return fmt.Errorf("customer name cannot be empty")
	}
	if customer.Phone == "" {
		return fmt.Errorf("customer phone cannot be empty")
	}
	if err := v.validate.Var(customer.Phone, "e164|numeric"); err != nil {
		return fmt.Errorf("customer phone is not a valid number")
	}
	if customer.Email != "" {
		if err := v.validate.Var(customer.Email, "email"); err != nil {
			return fmt.Errorf("customer email is not a valid address")
		}
	}
	return nil
}

func (v *ValidationUtil) ValidateOrder(order model.Order) error {
	if order.CustomerID == "" {
		return fmt.Errorf("order customer cannot be empty")
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order must have at least one item")
	}
	for _, item := range order.Items {
		if item.ProductID == "" {
			return fmt.Errorf("order item product cannot be empty")
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("order item quantity must be positive")
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("order item price cannot be negative")
		}
	}
	return nil
}

func (v *ValidationUtil) ValidateProduct(product model.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name cannot be empty")
	}
	if product.Price < 0 {
		return fmt.Errorf("product price cannot be negative")
	}
	if product.Stock < 0 {
		return fmt.Errorf("product stock cannot be negative")
	}
	if product.ImageURL != "" {
		if err := v.validate.Var(product.ImageURL, "url"); err != nil {
			return fmt.Errorf("product image url is not a valid url")
		}
	}
	return nil
}

func (v *ValidationUtil) ValidateSecondHandProduct(product model.SecondHandProduct) error {
	if product.Title == "" {
		return fmt.Errorf("listing title cannot be empty")
	}
	if product.Price < 0 {
		return fmt.Errorf("listing price cannot be negative")
	}
	switch product.Condition {
	case "A", "B", "C":
	default:
		return fmt.Errorf("listing condition must be A, B or C")
	}
	return nil
}

func (v *ValidationUtil) ValidateChatMessage(message model.ChatMessage) error {
	if message.ConversationID == "" {
		return fmt.Errorf("message conversation cannot be empty")
	}
	if message.Sender != model.ChatSenderCustomer && message.Sender != model.ChatSenderStaff {
		return fmt.Errorf("message sender must be customer or staff")
	}
	if message.Body == "" {
		return fmt.Errorf("message body cannot be empty")
	}
	return nil
}
