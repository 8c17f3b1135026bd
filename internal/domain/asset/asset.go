// Package asset is the CMDB configuration item: hardware, software and
// network assets with a lifecycle status and an optional assignee.
package asset

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

type Type string

const (
	TypeHardware   Type = "HARDWARE"
	TypeSoftware   Type = "SOFTWARE"
	TypeNetwork    Type = "NETWORK"
	TypePeripheral Type = "PERIPHERAL"
	TypeMobile     Type = "MOBILE"
	TypeOther      Type = "OTHER"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeHardware, TypeSoftware, TypeNetwork, TypePeripheral, TypeMobile, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusInStock     Status = "IN_STOCK"
	StatusInUse       Status = "IN_USE"
	StatusMaintenance Status = "MAINTENANCE"
	StatusRetired     Status = "RETIRED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusInStock, StatusInUse, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}

var tagRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,49}$`)

type Asset struct {
	id                uint
	tenantID          *uint
	assetTag          string
	name              string
	assetType         Type
	status            Status
	details           Details
	assigneeID        *uint
	purchaseDate      *time.Time
	warrantyExpiresAt *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

// Details are descriptive attributes with no invariants.
type Details struct {
	SerialNumber string
	Manufacturer string
	Model        string
	Location     string
	Notes        string
}

func NewAsset(tenantID *uint, assetTag, name string, assetType Type) (*Asset, error) {
	tag, err := NormalizeTag(assetTag)
	if err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	a := &Asset{
		tenantID:  tenantID,
		assetTag:  tag,
		status:    StatusInStock,
		createdAt: now,
		updatedAt: now,
	}
	if err := a.Update(name, assetType, Details{}); err != nil {
		return nil, err
	}
	return a, nil
}

func ReconstructAsset(
	id uint,
	tenantID *uint,
	assetTag, name string,
	assetType Type,
	status Status,
	details Details,
	assigneeID *uint,
	purchaseDate, warrantyExpiresAt *time.Time,
	createdAt, updatedAt time.Time,
) *Asset {
	return &Asset{
		id:                id,
		tenantID:          tenantID,
		assetTag:          assetTag,
		name:              name,
		assetType:         assetType,
		status:            status,
		details:           details,
		assigneeID:        assigneeID,
		purchaseDate:      purchaseDate,
		warrantyExpiresAt: warrantyExpiresAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// NormalizeTag upper-cases an asset tag such as "lap-0042".
func NormalizeTag(tag string) (string, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if !tagRegex.MatchString(tag) {
		return "", fmt.Errorf("asset tag must be 2-50 characters of A-Z, 0-9 or '-'")
	}
	return tag, nil
}

func (a *Asset) ID() uint                      { return a.id }
func (a *Asset) TenantID() *uint               { return a.tenantID }
func (a *Asset) AssetTag() string              { return a.assetTag }
func (a *Asset) Name() string                  { return a.name }
func (a *Asset) Type() Type                    { return a.assetType }
func (a *Asset) Status() Status                { return a.status }
func (a *Asset) Details() Details              { return a.details }
func (a *Asset) AssigneeID() *uint             { return a.assigneeID }
func (a *Asset) PurchaseDate() *time.Time      { return a.purchaseDate }
func (a *Asset) WarrantyExpiresAt() *time.Time { return a.warrantyExpiresAt }
func (a *Asset) CreatedAt() time.Time          { return a.createdAt }
func (a *Asset) UpdatedAt() time.Time          { return a.updatedAt }

func (a *Asset) SetID(id uint) { a.id = id }

func (a *Asset) Update(name string, assetType Type, details Details) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("asset name is required")
	}
	if len(name) > 150 {
		return fmt.Errorf("asset name exceeds maximum length of 150 characters")
	}
	if !assetType.IsValid() {
		return fmt.Errorf("invalid asset type: %s", assetType)
	}
	a.name = name
	a.assetType = assetType
	a.details = details
	a.touch()
	return nil
}

func (a *Asset) SetDates(purchaseDate, warrantyExpiresAt *time.Time) error {
	if purchaseDate != nil && warrantyExpiresAt != nil && warrantyExpiresAt.Before(*purchaseDate) {
		return fmt.Errorf("warranty cannot expire before the purchase date")
	}
	a.purchaseDate = purchaseDate
	a.warrantyExpiresAt = warrantyExpiresAt
	a.touch()
	return nil
}

// ChangeStatus moves the lifecycle status. Retiring or stocking clears the assignee.
func (a *Asset) ChangeStatus(s Status) error {
	if !s.IsValid() {
		return fmt.Errorf("invalid asset status: %s", s)
	}
	if s == StatusInUse && a.assigneeID == nil {
		return fmt.Errorf("assign the asset to a user to mark it in use")
	}
	if s == StatusRetired || s == StatusInStock {
		a.assigneeID = nil
	}
	a.status = s
	a.touch()
	return nil
}

func (a *Asset) AssignTo(userID uint) error {
	if userID == 0 {
		return fmt.Errorf("user ID is required")
	}
	if a.status == StatusRetired {
		return fmt.Errorf("retired assets cannot be assigned")
	}
	a.assigneeID = &userID
	a.status = StatusInUse
	a.touch()
	return nil
}

func (a *Asset) Unassign() {
	a.assigneeID = nil
	if a.status == StatusInUse {
		a.status = StatusInStock
	}
	a.touch()
}

// IsUnderWarranty reports whether the warranty end date is still ahead of now.
func (a *Asset) IsUnderWarranty(now time.Time) bool {
	return a.warrantyExpiresAt != nil && now.Before(*a.warrantyExpiresAt)
}

func (a *Asset) touch() {
	a.updatedAt = biztime.NowUTC()
}
