package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/orris-inc/servicedesk/internal/application/asset/dto"
	"github.com/orris-inc/servicedesk/internal/domain/asset"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/constants"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type AssetCommand struct {
	Actor             authorization.Actor
	AssetTag          string
	Name              string
	Type              string
	Status            string
	SerialNumber      string
	Manufacturer      string
	Model             string
	Location          string
	Notes             string
	PurchaseDate      *time.Time
	WarrantyExpiresAt *time.Time
	// TenantID is honored for global admins only.
	TenantID *uint
}

func (c AssetCommand) details() asset.Details {
	return asset.Details{
		SerialNumber: strings.TrimSpace(c.SerialNumber),
		Manufacturer: strings.TrimSpace(c.Manufacturer),
		Model:        strings.TrimSpace(c.Model),
		Location:     strings.TrimSpace(c.Location),
		Notes:        strings.TrimSpace(c.Notes),
	}
}

type ListAssetsQuery struct {
	Actor      authorization.Actor
	Type       string
	Status     string
	AssigneeID *uint
	Search     string
	Page       int
	PageSize   int
}

type ListAssetsResult struct {
	Assets   []*dto.AssetDTO
	Total    int64
	Page     int
	PageSize int
}

// AssetUseCases groups the CMDB operations.
type AssetUseCases struct {
	assetRepo asset.Repository
	userRepo  user.Repository
	logger    logger.Interface
}

func NewAssetUseCases(assetRepo asset.Repository, userRepo user.Repository, logger logger.Interface) *AssetUseCases {
	return &AssetUseCases{assetRepo: assetRepo, userRepo: userRepo, logger: logger}
}

func (uc *AssetUseCases) List(ctx context.Context, q ListAssetsQuery) (*ListAssetsResult, error) {
	p := utils.ValidatePagination(q.Page, q.PageSize)
	filter := asset.Filter{
		TenantID:   q.Actor.TenantFilter(),
		AssigneeID: q.AssigneeID,
		Search:     strings.TrimSpace(q.Search),
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
	if q.Type != "" {
		t := asset.Type(strings.ToUpper(q.Type))
		if !t.IsValid() {
			return nil, errors.NewValidationError("invalid asset type: " + q.Type)
		}
		filter.Type = &t
	}
	if q.Status != "" {
		s := asset.Status(strings.ToUpper(q.Status))
		if !s.IsValid() {
			return nil, errors.NewValidationError("invalid asset status: " + q.Status)
		}
		filter.Status = &s
	}

	assets, total, err := uc.assetRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list assets", "error", err)
		return nil, errors.NewInternalError("failed to list assets")
	}
	return &ListAssetsResult{Assets: toDTOs(assets), Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

// ListMine returns every asset assigned to the actor.
func (uc *AssetUseCases) ListMine(ctx context.Context, actor authorization.Actor) ([]*dto.AssetDTO, error) {
	id := actor.UserID
	assets, _, err := uc.assetRepo.List(ctx, asset.Filter{AssigneeID: &id, Page: 1, PageSize: constants.MaxPageSize})
	if err != nil {
		uc.logger.Errorw("failed to list assigned assets", "user_id", id, "error", err)
		return nil, errors.NewInternalError("failed to list assets")
	}
	return toDTOs(assets), nil
}

func (uc *AssetUseCases) Create(ctx context.Context, cmd AssetCommand) (*dto.AssetDTO, error) {
	tenantID := cmd.Actor.TenantID
	if cmd.Actor.IsGlobalAdmin() && cmd.TenantID != nil {
		tenantID = cmd.TenantID
	}

	a, err := asset.NewAsset(tenantID, cmd.AssetTag, cmd.Name, asset.Type(strings.ToUpper(cmd.Type)))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := a.Update(a.Name(), a.Type(), cmd.details()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := a.SetDates(cmd.PurchaseDate, cmd.WarrantyExpiresAt); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := uc.assetRepo.ExistsByTag(ctx, a.AssetTag())
	if err != nil {
		uc.logger.Errorw("failed to check asset tag", "asset_tag", a.AssetTag(), "error", err)
		return nil, errors.NewInternalError("failed to create asset")
	}
	if exists {
		return nil, errors.NewConflictError("asset tag already exists")
	}

	if err := uc.assetRepo.Create(ctx, a); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("asset tag already exists")
		}
		uc.logger.Errorw("failed to create asset", "asset_tag", a.AssetTag(), "error", err)
		return nil, errors.NewInternalError("failed to create asset")
	}

	uc.logger.Infow("asset created successfully", "asset_id", a.ID(), "asset_tag", a.AssetTag())
	return dto.ToAssetDTO(a, biztime.NowUTC()), nil
}

func (uc *AssetUseCases) Get(ctx context.Context, actor authorization.Actor, id uint) (*dto.AssetDTO, error) {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return dto.ToAssetDTO(a, biztime.NowUTC()), nil
}

// Update replaces the descriptive fields. Status is applied last so that
// moving to IN_USE still requires an assignee.
func (uc *AssetUseCases) Update(ctx context.Context, id uint, cmd AssetCommand) (*dto.AssetDTO, error) {
	a, err := uc.load(ctx, cmd.Actor, id)
	if err != nil {
		return nil, err
	}

	assetType := a.Type()
	if cmd.Type != "" {
		assetType = asset.Type(strings.ToUpper(cmd.Type))
	}
	name := cmd.Name
	if strings.TrimSpace(name) == "" {
		name = a.Name()
	}
	if err := a.Update(name, assetType, cmd.details()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := a.SetDates(cmd.PurchaseDate, cmd.WarrantyExpiresAt); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Status != "" {
		if err := a.ChangeStatus(asset.Status(strings.ToUpper(cmd.Status))); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	return uc.save(ctx, a, "failed to update asset")
}

func (uc *AssetUseCases) Delete(ctx context.Context, actor authorization.Actor, id uint) error {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.assetRepo.Delete(ctx, a.ID()); err != nil {
		uc.logger.Errorw("failed to delete asset", "asset_id", id, "error", err)
		return errors.NewInternalError("failed to delete asset")
	}
	uc.logger.Infow("asset deleted successfully", "asset_id", id)
	return nil
}

// Assign hands the asset to an active user of the same tenant.
func (uc *AssetUseCases) Assign(ctx context.Context, actor authorization.Actor, id, userID uint) (*dto.AssetDTO, error) {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to assign asset")
	}
	if u == nil || !u.IsActive() {
		return nil, errors.NewValidationError("user must be an active user")
	}
	if a.TenantID() != nil && (u.TenantID() == nil || *u.TenantID() != *a.TenantID()) {
		return nil, errors.NewValidationError("user must belong to the asset's tenant")
	}

	if err := a.AssignTo(u.ID()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return uc.save(ctx, a, "failed to assign asset")
}

func (uc *AssetUseCases) Unassign(ctx context.Context, actor authorization.Actor, id uint) (*dto.AssetDTO, error) {
	a, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	a.Unassign()
	return uc.save(ctx, a, "failed to unassign asset")
}

// Visible reports whether actor may see the asset, for listing its tickets.
func (uc *AssetUseCases) Visible(ctx context.Context, actor authorization.Actor, id uint) error {
	_, err := uc.load(ctx, actor, id)
	return err
}

func (uc *AssetUseCases) save(ctx context.Context, a *asset.Asset, failure string) (*dto.AssetDTO, error) {
	if err := uc.assetRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw(failure, "asset_id", a.ID(), "error", err)
		return nil, errors.NewInternalError(failure)
	}
	uc.logger.Infow("asset saved successfully", "asset_id", a.ID(), "status", a.Status())
	return dto.ToAssetDTO(a, biztime.NowUTC()), nil
}

func (uc *AssetUseCases) load(ctx context.Context, actor authorization.Actor, id uint) (*asset.Asset, error) {
	a, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get asset", "asset_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get asset")
	}
	if a == nil || !actor.CanAccessTenant(a.TenantID()) {
		return nil, errors.NewNotFoundError("asset not found")
	}
	return a, nil
}

func toDTOs(assets []*asset.Asset) []*dto.AssetDTO {
	now := biztime.NowUTC()
	out := make([]*dto.AssetDTO, 0, len(assets))
	for _, a := range assets {
		out = append(out, dto.ToAssetDTO(a, now))
	}
	return out
}
