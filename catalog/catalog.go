// Package catalog exposes the read-only project and unit listings. All values
// are transient snapshots owned by the remote catalog; the client never writes
// back.
package catalog

import (
	"context"
	"fmt"

	"github.com/onepay-ir/onepay-client/gateway"
	"github.com/pkg/errors"
)

// UnitStatus is the remote catalog's availability projection for a unit.
type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitReserved  UnitStatus = "reserved"
	UnitSold      UnitStatus = "sold"
)

// ProjectStatus is the sales phase of a project.
type ProjectStatus string

const (
	ProjectPreSale   ProjectStatus = "pre_sale"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

// Unit is a residential unit within a project.
type Unit struct {
	ID        int64      `json:"id"`
	ProjectID int64      `json:"project_id"`
	UnitCode  string     `json:"unit_code"`
	Floor     int        `json:"floor"`
	AreaM2    float64    `json:"area_m2"`
	Bedrooms  int        `json:"bedrooms"`
	Price     int64      `json:"price"`
	Status    UnitStatus `json:"status"`
}

// FloorPlan is a CAD drawing attached to a project.
type FloorPlan struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Level      string `json:"level"`
	FileFormat string `json:"file_format"`
	SourceURL  string `json:"source_url"`
	ViewerURL  string `json:"viewer_url,omitempty"`
	ViewerURN  string `json:"viewer_urn,omitempty"`
}

// ProjectSummary is a project as it appears in the listing.
type ProjectSummary struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Description    string        `json:"description"`
	Address        string        `json:"address"`
	Status         ProjectStatus `json:"status"`
	CoverImage     string        `json:"cover_image,omitempty"`
	AvailableUnits int           `json:"available_units"`
	MinPrice       *int64        `json:"min_price,omitempty"`
}

// ProjectDetail is a single project with its plans and units.
type ProjectDetail struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Address     string        `json:"address"`
	Status      ProjectStatus `json:"status"`
	CoverImage  string        `json:"cover_image,omitempty"`
	Plans       []FloorPlan   `json:"plans"`
	Units       []Unit        `json:"units"`
}

// Service calls the catalog endpoints through the shared gateway.
type Service struct {
	api *gateway.Client
}

// New creates a catalog Service.
func New(api *gateway.Client) *Service {
	return &Service{api: api}
}

// Projects lists all projects.
func (s *Service) Projects(ctx context.Context) ([]ProjectSummary, error) {
	var projects []ProjectSummary
	if err := s.api.Get(ctx, "/projects", "", &projects); err != nil {
		return nil, errors.Wrap(err, "[Service.Projects] /projects")
	}
	return projects, nil
}

// Project fetches a single project with its plans and units.
func (s *Service) Project(ctx context.Context, id int64) (*ProjectDetail, error) {
	var project ProjectDetail
	if err := s.api.Get(ctx, fmt.Sprintf("/projects/%d", id), "", &project); err != nil {
		return nil, errors.Wrapf(err, "[Service.Project] /projects/%d", id)
	}
	return &project, nil
}
