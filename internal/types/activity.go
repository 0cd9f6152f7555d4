package types

import "fmt"

// ActivityAction names an audited operation
type ActivityAction string

const (
	ActivityInvoiceCreated ActivityAction = "invoice_created"
	ActivityInvoiceSent    ActivityAction = "invoice_sent"
	ActivityCompanyCreated ActivityAction = "company_created"
	ActivityCompanyUpdated ActivityAction = "company_updated"
	ActivityUserLogin      ActivityAction = "user_login"
	ActivityUserLogout     ActivityAction = "user_logout"
	ActivityUserUpdated    ActivityAction = "user_updated"
)

// ActivityForInvoiceStatus returns the action recorded for a manual status change
func ActivityForInvoiceStatus(status InvoiceStatus) ActivityAction {
	return ActivityAction(fmt.Sprintf("invoice_%s", status))
}

func (a ActivityAction) String() string {
	return string(a)
}

// EntityType names the kind of record an activity refers to
type EntityType string

const (
	EntityTypeInvoice EntityType = "invoice"
	EntityTypeCompany EntityType = "company"
	EntityTypeUser    EntityType = "user"
)

// ActivityFilter is used by the admin activity feed
type ActivityFilter struct {
	Action string `json:"action,omitempty" form:"action"`
	Search string `json:"search,omitempty" form:"search"`
}

// ActivityFeedLimitPerTenant caps how many records each tenant contributes to the feed
const ActivityFeedLimitPerTenant = 100
