// api/service/services.go
package service

import (
	"gorm.io/gorm"

	"github.com/fixhub-app/fixhub/api/audit"
	"github.com/fixhub-app/fixhub/api/cache"
	"github.com/fixhub-app/fixhub/api/dao"
	"github.com/fixhub-app/fixhub/api/realtime"
	"github.com/fixhub-app/fixhub/api/util"
)

type Services struct {
	Ticket     ITicketService
	Customer   ICustomerService
	Order      IOrderService
	Product    IProductService
	SecondHand ISecondHandService
	Chat       IChatService
	Dashboard  IDashboardService
	Admin      IAdminService

	ProfileDAO *dao.ProfileDAO
}

func InitializeServices(
	gormDB *gorm.DB,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	fetchCache *cache.FetchCache,
	notificationSvc *util.NotificationService,
	feed *realtime.BusFeed,
) (*Services, error) {
	ticketDAO := dao.NewTicketDAO(gormDB)
	customerDAO := dao.NewCustomerDAO(gormDB)
	orderDAO := dao.NewOrderDAO(gormDB)
	productDAO := dao.NewProductDAO(gormDB)
	secondHandDAO := dao.NewSecondHandDAO(gormDB)
	chatDAO := dao.NewChatDAO(gormDB)
	profileDAO := dao.NewProfileDAO(gormDB)

	services := &Services{
		Ticket:     NewTicketService(ticketDAO, validationUtil, fetchCache, notificationSvc, feed),
		Customer:   NewCustomerService(customerDAO, validationUtil, fetchCache, feed),
		Order:      NewOrderService(orderDAO, validationUtil, fetchCache, notificationSvc, feed),
		Product:    NewProductService(productDAO, validationUtil, fetchCache, feed),
		SecondHand: NewSecondHandService(secondHandDAO, validationUtil, fetchCache, feed),
		Chat:       NewChatService(chatDAO, validationUtil, feed),
		Dashboard:  NewDashboardService(ticketDAO, customerDAO, orderDAO, secondHandDAO, fetchCache),
		Admin:      NewAdminService(profileDAO, auditService),
		ProfileDAO: profileDAO,
	}

	return services, nil
}
