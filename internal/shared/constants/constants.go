// Package constants holds values shared between layers.
package constants

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Context keys set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyEmail     = "user_email"
	ContextKeyRoles     = "user_roles"
	ContextKeyTenantID  = "tenant_id"
	ContextKeyClaims    = "token_claims"
	ContextKeyActor     = "actor"
	ContextKeyRequestID = "request_id"
)

const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
	HeaderRequestID     = "X-Request-ID"
)

const DateLayout = "2006-01-02"

const (
	TableOrganizations           = "organizations"
	TableTenants                 = "tenants"
	TableUsers                   = "users"
	TableUserRoles               = "user_roles"
	TableTicketTypes             = "ticket_types"
	TableCustomFields            = "custom_fields"
	TableTickets                 = "tickets"
	TableTicketComments          = "ticket_comments"
	TableTicketHistory           = "ticket_history"
	TableSLAPolicies             = "sla_policies"
	TableSLATrackings            = "sla_trackings"
	TableAssets                  = "assets"
	TableArticles                = "kb_articles"
	TableNotifications           = "notifications"
	TableNotificationPreferences = "notification_preferences"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)
