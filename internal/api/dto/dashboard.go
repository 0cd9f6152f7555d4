package dto

// DashboardStatsResponse summarizes a tenant's invoices.
// SentInvoices counts both sent and paid invoices.
type DashboardStatsResponse struct {
	TotalInvoices int    `json:"totalInvoices"`
	SentInvoices  int    `json:"sentInvoices"`
	PaidInvoices  int    `json:"paidInvoices"`
	TotalRevenue  string `json:"totalRevenue"`
}
