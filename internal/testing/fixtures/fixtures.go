// Package fixtures inserts minimal valid rows for tests.
package fixtures

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/models"
)

var seq atomic.Int64

func next() int64 {
	return seq.Add(1)
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

// User inserts a user with unique email and phone. hash may be empty.
func User(t *testing.T, db *gorm.DB, master bool, hash string) *models.User {
	t.Helper()
	n := next()
	if hash == "" {
		hash = "x"
	}
	u := &models.User{
		Email:        fmt.Sprintf("user%d@example.com", n),
		PhoneNumber:  fmt.Sprintf("+7912%07d", n),
		PasswordHash: hash,
		FirstName:    "User",
		LastName:     fmt.Sprint(n),
		IsMaster:     master,
		IsActive:     true,
	}
	mustCreate(t, db, u)
	return u
}

func Staff(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	u := User(t, db, false, "")
	if err := db.Model(u).Update("is_staff", true).Error; err != nil {
		t.Fatalf("promote staff: %v", err)
	}
	u.IsStaff = true
	return u
}

func Master(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return User(t, db, true, "")
}

// Client inserts a non-master user together with its client profile.
func Client(t *testing.T, db *gorm.DB) (*models.User, *models.ClientProfile) {
	t.Helper()
	u := User(t, db, false, "")
	name := fmt.Sprintf("client%d", u.ID)
	cp := &models.ClientProfile{UserID: u.ID, ProfileName: &name}
	mustCreate(t, db, cp)
	return u, cp
}

func Category(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	mustCreate(t, db, c)
	return c
}

func Service(t *testing.T, db *gorm.DB, name string) *models.Service {
	t.Helper()
	s := &models.Service{Name: name, Description: name}
	mustCreate(t, db, s)
	return s
}

func ServiceProfile(t *testing.T, db *gorm.DB, owner *models.User) *models.ServiceProfile {
	t.Helper()
	n := next()
	p := &models.ServiceProfile{
		Name:        fmt.Sprintf("Profile %d", n),
		OwnerID:     owner.ID,
		Description: "description",
		PhoneNumber: fmt.Sprintf("+7913%07d", n),
	}
	mustCreate(t, db, p)
	return p
}

func Review(t *testing.T, db *gorm.DB, profile *models.ServiceProfile, author *models.User, score int) *models.Review {
	t.Helper()
	r := &models.Review{ServiceProfileID: profile.ID, AuthorID: author.ID, Text: "text", Score: score}
	mustCreate(t, db, r)
	return r
}

func Schedule(t *testing.T, db *gorm.DB, profile *models.ServiceProfile, date time.Time, startHour, endHour int) *models.Schedule {
	t.Helper()
	s := &models.Schedule{
		ServiceProfileID: profile.ID,
		Date:             datatypes.Date(date),
		StartTime:        datatypes.NewTime(startHour, 0, 0, 0),
		EndTime:          datatypes.NewTime(endHour, 0, 0, 0),
	}
	mustCreate(t, db, s)
	return s
}
