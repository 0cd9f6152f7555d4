package types

type PlanTier string

const (
	PlanTierFree         PlanTier = "free"
	PlanTierStarter      PlanTier = "starter"
	PlanTierProfessional PlanTier = "professional"
	PlanTierEnterprise   PlanTier = "enterprise"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusTrialing  SubscriptionStatus = "trialing"
)

const (
	// DefaultPlanName is reported for tenants without a subscription
	DefaultPlanName = "Free"
	// DefaultInvoiceLimit is reported for tenants without a subscription
	DefaultInvoiceLimit = 5
	// TrialPeriodDays is the length of the subscription period created at provisioning
	TrialPeriodDays = 30
)
