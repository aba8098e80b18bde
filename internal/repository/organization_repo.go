package repository

import (
	"go-marketplace-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository interface {
	Create(org *model.Organization) error
	Update(org *model.Organization) error
	FindByID(id uuid.UUID) (*model.Organization, error)
	FindBySlug(slug string) (*model.Organization, error)
	FindAll() ([]model.Organization, error)

	CreateBranch(branch *model.Branch) error
	UpdateBranch(branch *model.Branch) error
	FindBranchByID(id uuid.UUID) (*model.Branch, error)
	FindBranchesByOrg(orgID uuid.UUID) ([]model.Branch, error)
}

type organizationRepo struct {
	db *gorm.DB
}

func NewOrganizationRepo(db *gorm.DB) OrganizationRepository {
	return &organizationRepo{db}
}

func (r *organizationRepo) Create(org *model.Organization) error {
	return r.db.Create(org).Error
}

func (r *organizationRepo) Update(org *model.Organization) error {
	return r.db.Save(org).Error
}

func (r *organizationRepo) FindByID(id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.Preload("Branches").First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) FindBySlug(slug string) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.Preload("Branches").Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) FindAll() ([]model.Organization, error) {
	var orgs []model.Organization
	err := r.db.Find(&orgs).Error
	return orgs, err
}

func (r *organizationRepo) CreateBranch(branch *model.Branch) error {
	return r.db.Create(branch).Error
}

func (r *organizationRepo) UpdateBranch(branch *model.Branch) error {
	return r.db.Save(branch).Error
}

func (r *organizationRepo) FindBranchByID(id uuid.UUID) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *organizationRepo) FindBranchesByOrg(orgID uuid.UUID) ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.Where("organization_id = ?", orgID).Find(&branches).Error
	return branches, err
}
