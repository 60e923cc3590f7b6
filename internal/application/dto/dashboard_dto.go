package dto

// DashboardResponse contadores del panel de administración.
type DashboardResponse struct {
	TotalProducts   int `json:"total_products"`
	TotalCategories int `json:"total_categories"`
	TotalOrders     int `json:"total_orders"`
}
