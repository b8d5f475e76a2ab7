package domain

// MonthlyRevenue is one bucket of the revenue breakdown.
type MonthlyRevenue struct {
	Month       string  `json:"month"`
	Revenue     float64 `json:"revenue"`
	RentalCount int     `json:"rentalCount"`
}

// RevenueSummary aggregates platform revenue for a reporting period.
type RevenueSummary struct {
	Period      string           `json:"period"`
	Total       float64          `json:"total"`
	RentalCount int              `json:"rentalCount"`
	ByMonth     []MonthlyRevenue `json:"byMonth"`
}

// DashboardStats backs the console landing dashboard.
type DashboardStats struct {
	TotalUsers     int     `json:"totalUsers"`
	TotalVehicles  int     `json:"totalVehicles"`
	ActiveRentals  int     `json:"activeRentals"`
	RiskyCustomers int     `json:"riskyCustomers"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
}
