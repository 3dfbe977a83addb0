package models

// PackageDemand counts bookings per package.
type PackageDemand struct {
	PackageName string `bson:"_id" json:"packageName"`
	Bookings    int64  `bson:"bookings" json:"bookings"`
}

// StatusCount counts bookings per status.
type StatusCount struct {
	Status BookingStatus `bson:"_id" json:"status"`
	Count  int64         `bson:"count" json:"count"`
}

// MonthlyRevenue is one point of the revenue series, Month formatted YYYY-MM.
type MonthlyRevenue struct {
	Month    string  `bson:"_id" json:"month"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
	Payments int64   `bson:"payments" json:"payments"`
}

// RevenueSummary aggregates recorded payments.
type RevenueSummary struct {
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
	PaymentCount int64   `bson:"paymentCount" json:"paymentCount"`
}

// RevenueStats is returned by GET /revenue-stats.
type RevenueStats struct {
	RevenueSummary
	Monthly []MonthlyRevenue `json:"monthly"`
	Demand  []PackageDemand  `json:"demand"`
}

// DashboardStats is returned by GET /dashboard-stats. Fields irrelevant to the caller's role are omitted.
type DashboardStats struct {
	Role              string        `json:"role"`
	TotalUsers        int64         `json:"totalUsers,omitempty"`
	TotalDecorators   int64         `json:"totalDecorators,omitempty"`
	PendingDecorators int64         `json:"pendingDecorators,omitempty"`
	TotalBookings     int64         `json:"totalBookings"`
	PaidBookings      int64         `json:"paidBookings"`
	CompletedBookings int64         `json:"completedBookings"`
	ByStatus          []StatusCount `json:"byStatus,omitempty"`
	Revenue           float64       `json:"revenue,omitempty"`
	Earnings          float64       `json:"earnings,omitempty"`
	TotalSpent        float64       `json:"totalSpent,omitempty"`
}
