package repository

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/models"
)

// ratingOf is the average review score of a profile, nil without reviews.
// It is computed on every read, never stored.
func ratingOf(db *gorm.DB, profileID uint) (*float64, error) {
	var avg sql.NullFloat64
	if err := db.Model(&models.Review{}).
		Select("AVG(score)").
		Where("service_profile_id = ?", profileID).
		Row().
		Scan(&avg); err != nil {
		return nil, err
	}

	if !avg.Valid {
		return nil, nil
	}
	v := avg.Float64
	return &v, nil
}

func ratingsOf(db *gorm.DB, profileIDs []uint) (map[uint]float64, error) {
	out := make(map[uint]float64, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ServiceProfileID uint
		Rating           float64
	}
	if err := db.Model(&models.Review{}).
		Select("service_profile_id, AVG(score) AS rating").
		Where("service_profile_id IN ?", profileIDs).
		Group("service_profile_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.ServiceProfileID] = r.Rating
	}
	return out, nil
}
