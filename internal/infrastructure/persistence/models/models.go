// Package models holds the gorm persistence shapes. Domain entities never
// carry gorm tags; mappers translate between the two.
package models

// All lists every model in migration order.
func All() []any {
	return []any{
		&OrganizationModel{},
		&TenantModel{},
		&UserModel{},
		&RoleAssignmentModel{},
		&TicketTypeModel{},
		&CustomFieldModel{},
		&TicketModel{},
		&CommentModel{},
		&HistoryModel{},
		&SLAPolicyModel{},
		&SLATrackingModel{},
		&AssetModel{},
		&ArticleModel{},
		&NotificationModel{},
		&NotificationPreferenceModel{},
	}
}
