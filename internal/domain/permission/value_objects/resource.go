package value_objects

import "fmt"

type Resource string

const (
	ResourceUsers         Resource = "users"
	ResourceAgents        Resource = "agents"
	ResourceTickets       Resource = "tickets"
	ResourceSLAPolicies   Resource = "sla_policies"
	ResourceAssets        Resource = "assets"
	ResourceArticles      Resource = "kb_articles"
	ResourceNotifications Resource = "notifications"
	ResourceAnalytics     Resource = "analytics"
	ResourceOrganizations Resource = "organizations"
	ResourceTenants       Resource = "tenants"
	ResourceTicketTypes   Resource = "ticket_types"
	ResourceCustomFields  Resource = "custom_fields"
)

func NewResource(resource string) (Resource, error) {
	if resource == "" {
		return "", fmt.Errorf("resource cannot be empty")
	}
	if len(resource) > 50 {
		return "", fmt.Errorf("resource too long (max 50 characters)")
	}
	return Resource(resource), nil
}

func (r Resource) String() string {
	return string(r)
}
