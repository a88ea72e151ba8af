package repositories

import (
	"LabLedger/cache"
	"LabLedger/models"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDoctorTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:testdb_doctor_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Doctor{}, &models.WorkType{}, &models.DoctorWorkTypePrice{})
	assert.NoError(t, err)

	return db
}

func TestEffectivePrice(t *testing.T) {
	db := setupDoctorTestDB(t)
	repo := NewDoctorRepository(db, &cache.Cache{})
	ctx := context.Background()

	err := db.Create(&models.Doctor{ID: "DR-000001", Name: "د. أحمد", AccessToken: "tok-1"}).Error
	assert.NoError(t, err)
	workType := models.WorkType{Name: "زيركون"}
	assert.NoError(t, db.Create(&workType).Error)
	assert.NoError(t, db.Create(&models.DoctorWorkTypePrice{
		DoctorID:   "DR-000001",
		WorkTypeID: workType.ID,
		Price:      150,
	}).Error)

	price, found, err := repo.EffectivePrice(ctx, "DR-000001", workType.ID)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 150.0, price)

	// No price row for this pair
	_, found, err = repo.EffectivePrice(ctx, "DR-000001", workType.ID+1)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestGetByAccessToken(t *testing.T) {
	db := setupDoctorTestDB(t)
	repo := NewDoctorRepository(db, &cache.Cache{})
	ctx := context.Background()

	err := db.Create(&models.Doctor{ID: "DR-000001", Name: "د. أحمد", AccessToken: "tok-1"}).Error
	assert.NoError(t, err)

	doctor, err := repo.GetByAccessToken(ctx, "tok-1")
	assert.NoError(t, err)
	assert.NotNil(t, doctor)
	assert.Equal(t, "DR-000001", doctor.ID)

	doctor, err = repo.GetByAccessToken(ctx, "wrong-token")
	assert.NoError(t, err)
	assert.Nil(t, doctor)
}
