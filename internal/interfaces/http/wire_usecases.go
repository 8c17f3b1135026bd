package http

import (
	analyticsUsecases "github.com/orris-inc/servicedesk/internal/application/analytics/usecases"
	assetUsecases "github.com/orris-inc/servicedesk/internal/application/asset/usecases"
	authUsecases "github.com/orris-inc/servicedesk/internal/application/auth/usecases"
	customfieldUsecases "github.com/orris-inc/servicedesk/internal/application/customfield/usecases"
	knowledgeUsecases "github.com/orris-inc/servicedesk/internal/application/knowledge/usecases"
	notificationUsecases "github.com/orris-inc/servicedesk/internal/application/notification/usecases"
	slaUsecases "github.com/orris-inc/servicedesk/internal/application/sla/usecases"
	tenantUsecases "github.com/orris-inc/servicedesk/internal/application/tenant/usecases"
	ticketUsecases "github.com/orris-inc/servicedesk/internal/application/ticket/usecases"
	userUsecases "github.com/orris-inc/servicedesk/internal/application/user/usecases"
	"github.com/orris-inc/servicedesk/internal/domain/knowledge"
)

// allUseCases holds every use case built by the container.
type allUseCases struct {
	// Auth
	login          *authUsecases.LoginUseCase
	register       *authUsecases.RegisterUseCase
	refreshToken   *authUsecases.RefreshTokenUseCase
	changePassword *authUsecases.ChangePasswordUseCase
	currentUser    *authUsecases.GetCurrentUserUseCase

	// Users
	listUsers     *userUsecases.ListUsersUseCase
	createUser    *userUsecases.CreateUserUseCase
	getUser       *userUsecases.GetUserUseCase
	updateUser    *userUsecases.UpdateUserUseCase
	setUserActive *userUsecases.SetUserActiveUseCase
	setUserRoles  *userUsecases.SetUserRolesUseCase
	deleteUser    *userUsecases.DeleteUserUseCase
	listAgents    *userUsecases.ListAgentsUseCase

	// Tenancy
	organizations *tenantUsecases.OrganizationUseCases
	tenants       *tenantUsecases.TenantUseCases

	// Tickets
	createTicket  *ticketUsecases.CreateTicketUseCase
	listTickets   *ticketUsecases.ListTicketsUseCase
	getTicket     *ticketUsecases.GetTicketUseCase
	updateTicket  *ticketUsecases.UpdateTicketUseCase
	assignTicket  *ticketUsecases.AssignTicketUseCase
	changeStatus  *ticketUsecases.ChangeStatusUseCase
	addComment    *ticketUsecases.AddCommentUseCase
	ticketHistory *ticketUsecases.GetHistoryUseCase
	ticketSLA     *ticketUsecases.GetTicketSLAUseCase
	deleteTicket  *ticketUsecases.DeleteTicketUseCase

	// Catalogue
	slaPolicies *slaUsecases.PolicyUseCases
	ticketTypes *customfieldUsecases.TicketTypeUseCases
	fields      *customfieldUsecases.FieldUseCases
	assets      *assetUsecases.AssetUseCases
	articles    *knowledgeUsecases.ArticleUseCases

	// Inbox and reporting
	notifications *notificationUsecases.NotificationUseCases
	preferences   *notificationUsecases.PreferenceUseCases
	analytics     *analyticsUsecases.AnalyticsUseCases
}

// ============================================================
// Section 5: Use cases
// ============================================================

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log

	var index knowledge.SearchIndex
	if c.meili != nil {
		index = c.meili
	}

	var reportCache analyticsUsecases.Cache
	if c.analyticsCache != nil {
		reportCache = c.analyticsCache
	}

	c.ucs = &allUseCases{
		login:          authUsecases.NewLoginUseCase(r.userRepo, r.tenantRepo, c.hasher, c.jwtSvc, log),
		register:       authUsecases.NewRegisterUseCase(r.userRepo, r.tenantRepo, c.hasher, c.jwtSvc, log),
		refreshToken:   authUsecases.NewRefreshTokenUseCase(r.userRepo, r.tenantRepo, c.jwtSvc, log),
		changePassword: authUsecases.NewChangePasswordUseCase(r.userRepo, c.hasher, log),
		currentUser:    authUsecases.NewGetCurrentUserUseCase(r.userRepo, r.tenantRepo, log),

		listUsers:     userUsecases.NewListUsersUseCase(r.userRepo, log),
		createUser:    userUsecases.NewCreateUserUseCase(r.userRepo, r.tenantRepo, c.hasher, log),
		getUser:       userUsecases.NewGetUserUseCase(r.userRepo, log),
		updateUser:    userUsecases.NewUpdateUserUseCase(r.userRepo, log),
		setUserActive: userUsecases.NewSetUserActiveUseCase(r.userRepo, log),
		setUserRoles:  userUsecases.NewSetUserRolesUseCase(r.userRepo, log),
		deleteUser:    userUsecases.NewDeleteUserUseCase(r.userRepo, log),
		listAgents:    userUsecases.NewListAgentsUseCase(r.userRepo, log),

		organizations: tenantUsecases.NewOrganizationUseCases(r.organizationRepo, log),
		tenants:       tenantUsecases.NewTenantUseCases(r.tenantRepo, r.organizationRepo, log),

		createTicket: ticketUsecases.NewCreateTicketUseCase(
			r.ticketRepo, r.historyRepo, c.ticketNumbers, r.ticketTypeRepo, r.customFieldRepo,
			r.assetRepo, r.slaTrackingRepo, c.slaResolver, r.userRepo, c.notifier, c.txManager, log,
		),
		listTickets: ticketUsecases.NewListTicketsUseCase(r.ticketRepo, r.slaTrackingRepo, r.userRepo, log),
		getTicket:   ticketUsecases.NewGetTicketUseCase(r.ticketRepo, r.commentRepo, r.slaTrackingRepo, r.userRepo, log),
		updateTicket: ticketUsecases.NewUpdateTicketUseCase(
			r.ticketRepo, r.historyRepo, r.customFieldRepo, r.slaTrackingRepo, c.slaResolver,
			c.notifier, c.publisher, c.txManager, log,
		),
		assignTicket: ticketUsecases.NewAssignTicketUseCase(
			r.ticketRepo, r.historyRepo, r.userRepo, c.notifier, c.publisher, c.txManager, log,
		),
		changeStatus: ticketUsecases.NewChangeStatusUseCase(
			r.ticketRepo, r.historyRepo, r.slaTrackingRepo, c.notifier, c.publisher, c.txManager, log,
		),
		addComment: ticketUsecases.NewAddCommentUseCase(
			r.ticketRepo, r.commentRepo, r.slaTrackingRepo, r.userRepo, c.notifier, c.publisher, c.txManager, log,
		),
		ticketHistory: ticketUsecases.NewGetHistoryUseCase(r.ticketRepo, r.historyRepo, log),
		ticketSLA:     ticketUsecases.NewGetTicketSLAUseCase(r.ticketRepo, r.slaTrackingRepo, log),
		deleteTicket:  ticketUsecases.NewDeleteTicketUseCase(r.ticketRepo, log),

		slaPolicies: slaUsecases.NewPolicyUseCases(r.slaPolicyRepo, log),
		ticketTypes: customfieldUsecases.NewTicketTypeUseCases(r.ticketTypeRepo, log),
		fields:      customfieldUsecases.NewFieldUseCases(r.customFieldRepo, r.ticketTypeRepo, log),
		assets:      assetUsecases.NewAssetUseCases(r.assetRepo, r.userRepo, log),
		articles:    knowledgeUsecases.NewArticleUseCases(r.articleRepo, index, c.renderer, log),

		notifications: notificationUsecases.NewNotificationUseCases(r.notificationRepo, log),
		preferences:   notificationUsecases.NewPreferenceUseCases(r.preferenceRepo, log),
		analytics:     analyticsUsecases.NewAnalyticsUseCases(r.ticketRepo, r.slaTrackingRepo, r.userRepo, reportCache, c.analyticsTTL(), log),
	}
}
