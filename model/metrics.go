package model

// DashboardMetrics is the aggregate served to the admin dashboard.
type DashboardMetrics struct {
	TicketsByStatus  map[string]int64 `json:"tickets_by_status"`
	OpenTickets      int64            `json:"open_tickets"`
	TotalCustomers   int64            `json:"total_customers"`
	TotalOrders      int64            `json:"total_orders"`
	MonthlyRevenue   float64          `json:"monthly_revenue"`
	UnsoldSecondHand int64            `json:"unsold_second_hand"`
}
