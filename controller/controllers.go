// api/controller/controllers.go
package controller

import (
	"github.com/fixhub-app/fixhub/api/auth"
	"github.com/fixhub-app/fixhub/api/service"
	"github.com/fixhub-app/fixhub/api/storage"
)

type Controllers struct {
	Auth       *AuthController
	Ticket     *TicketController
	Customer   *CustomerController
	Order      *OrderController
	Product    *ProductController
	SecondHand *SecondHandController
	Dashboard  *DashboardController
	Admin      *AdminController
	Chat       *ChatController
	Upload     *UploadController
}

func InitializeControllers(
	services *service.Services,
	authService *auth.Service,
	signer *storage.Signer,
	store *storage.DiskStore,
) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(authService),
		Ticket:     NewTicketController(services.Ticket),
		Customer:   NewCustomerController(services.Customer),
		Order:      NewOrderController(services.Order),
		Product:    NewProductController(services.Product),
		SecondHand: NewSecondHandController(services.SecondHand),
		Dashboard:  NewDashboardController(services.Dashboard),
		Admin:      NewAdminController(services.Admin),
		Chat:       NewChatController(services.Chat),
		Upload:     NewUploadController(signer, store),
	}
}
