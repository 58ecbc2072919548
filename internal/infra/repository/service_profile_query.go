package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/dto"
	"github.com/pro-master/backend/internal/models"
)

type ServiceProfileFilter struct {
	Categories  []string
	Services    []string
	IsFavorited *bool
	// ViewerID is zero for anonymous requests; IsFavorited is then ignored.
	ViewerID uint

	Offset int
	Limit  int
}

// ServiceProfileQuery builds the read shape of profiles: links, images,
// rating and the viewer's favorite flag.
type ServiceProfileQuery struct {
	db *gorm.DB
}

func NewServiceProfileQuery(db *gorm.DB) *ServiceProfileQuery {
	return &ServiceProfileQuery{db: db}
}

func (q *ServiceProfileQuery) List(ctx context.Context, f ServiceProfileFilter) ([]dto.ServiceProfileDTO, int64, error) {
	db := q.db.WithContext(ctx)

	base := db.Model(&models.ServiceProfile{})
	if len(f.Categories) > 0 {
		base = base.Where("id IN (?)", db.Table("service_profile_categories AS spc").
			Select("spc.service_profile_id").
			Joins("JOIN categories c ON c.id = spc.category_id").
			Where("c.name IN ?", f.Categories))
	}
	if len(f.Services) > 0 {
		base = base.Where("id IN (?)", db.Table("service_profile_services AS sps").
			Select("sps.service_profile_id").
			Joins("JOIN services s ON s.id = sps.service_id").
			Where("s.name IN ?", f.Services))
	}
	if f.IsFavorited != nil && f.ViewerID != 0 {
		favs := db.Model(&models.Favorite{}).Select("service_profile_id").Where("user_id = ?", f.ViewerID)
		if *f.IsFavorited {
			base = base.Where("id IN (?)", favs)
		} else {
			base = base.Where("id NOT IN (?)", favs)
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.ServiceProfile
	page := base.Session(&gorm.Session{}).Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		page = page.Offset(f.Offset).Limit(f.Limit)
	}
	if err := page.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	out, err := q.hydrate(db, profiles, f.ViewerID)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (q *ServiceProfileQuery) Get(ctx context.Context, id, viewerID uint) (*dto.ServiceProfileDTO, error) {
	db := q.db.WithContext(ctx)

	var p models.ServiceProfile
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}

	out, err := q.hydrate(db, []models.ServiceProfile{p}, viewerID)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (q *ServiceProfileQuery) hydrate(db *gorm.DB, profiles []models.ServiceProfile, viewerID uint) ([]dto.ServiceProfileDTO, error) {
	out := make([]dto.ServiceProfileDTO, 0, len(profiles))
	if len(profiles) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(profiles))
	index := make(map[uint]int, len(profiles))
	for i := range profiles {
		ids = append(ids, profiles[i].ID)
		index[profiles[i].ID] = i
		out = append(out, dto.NewServiceProfile(&profiles[i]))
	}

	var cats []struct {
		ServiceProfileID uint
		ID               uint
		Name             string
	}
	if err := db.Table("service_profile_categories AS spc").
		Select("spc.service_profile_id, c.id, c.name").
		Joins("JOIN categories c ON c.id = spc.category_id").
		Where("spc.service_profile_id IN ?", ids).
		Order("c.name ASC").
		Scan(&cats).Error; err != nil {
		return nil, err
	}
	for _, c := range cats {
		i := index[c.ServiceProfileID]
		out[i].Categories = append(out[i].Categories, dto.CategoryRef{ID: c.ID, Name: c.Name})
	}

	var svcs []struct {
		ServiceProfileID uint
		ID               uint
		Name             string
	}
	if err := db.Table("service_profile_services AS sps").
		Select("sps.service_profile_id, s.id, s.name").
		Joins("JOIN services s ON s.id = sps.service_id").
		Where("sps.service_profile_id IN ?", ids).
		Order("s.name ASC").
		Scan(&svcs).Error; err != nil {
		return nil, err
	}
	for _, s := range svcs {
		i := index[s.ServiceProfileID]
		out[i].Services = append(out[i].Services, dto.ServiceRef{ID: s.ID, Name: s.Name})
	}

	var images []models.Image
	if err := db.Where("service_profile_id IN ?", ids).Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	for _, img := range images {
		i := index[img.ServiceProfileID]
		out[i].Images = append(out[i].Images, dto.ImageDTO{ID: img.ID, Image: img.URL})
	}

	ratings, err := ratingsOf(db, ids)
	if err != nil {
		return nil, err
	}
	for id, r := range ratings {
		v := r
		out[index[id]].Rating = &v
	}

	if viewerID != 0 {
		var favored []uint
		if err := db.Model(&models.Favorite{}).
			Where("user_id = ? AND service_profile_id IN ?", viewerID, ids).
			Pluck("service_profile_id", &favored).Error; err != nil {
			return nil, err
		}
		for _, id := range favored {
			out[index[id]].IsFavorited = true
		}
	}

	return out, nil
}
