package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/infrastructure/repository"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	userRepo         *repository.UserRepository
	tenantRepo       *repository.TenantRepository
	organizationRepo *repository.OrganizationRepository
	ticketRepo       *repository.TicketRepository
	commentRepo      *repository.CommentRepository
	historyRepo      *repository.HistoryRepository
	ticketTypeRepo   *repository.TicketTypeRepository
	customFieldRepo  *repository.CustomFieldRepository
	slaPolicyRepo    *repository.SLAPolicyRepository
	slaTrackingRepo  *repository.SLATrackingRepository
	assetRepo        *repository.AssetRepository
	articleRepo      *repository.ArticleRepository
	notificationRepo *repository.NotificationRepository
	preferenceRepo   *repository.NotificationPreferenceRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db, log),
		tenantRepo:       repository.NewTenantRepository(db),
		organizationRepo: repository.NewOrganizationRepository(db),
		ticketRepo:       repository.NewTicketRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		historyRepo:      repository.NewHistoryRepository(db),
		ticketTypeRepo:   repository.NewTicketTypeRepository(db),
		customFieldRepo:  repository.NewCustomFieldRepository(db),
		slaPolicyRepo:    repository.NewSLAPolicyRepository(db),
		slaTrackingRepo:  repository.NewSLATrackingRepository(db),
		assetRepo:        repository.NewAssetRepository(db),
		articleRepo:      repository.NewArticleRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		preferenceRepo:   repository.NewNotificationPreferenceRepository(db),
	}
}
