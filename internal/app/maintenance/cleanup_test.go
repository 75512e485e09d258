package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ivoicehq/ivoice-server/internal/models"
	"github.com/ivoicehq/ivoice-server/internal/services"
)

func openCleanupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func TestRunOncePurgesStaleUnverifiedAccounts(t *testing.T) {
	db := openCleanupTestDB(t)
	signedUpAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	svc, err := services.NewAuthService(db, nil,
		services.WithClock(func() time.Time { return signedUpAt }),
	)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), services.SignupInput{
		Username: "ghost",
		Email:    "ghost@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	cleaner := NewCleaner(svc,
		WithNow(func() time.Time { return signedUpAt.Add(48 * time.Hour) }),
		WithMaxAge(24*time.Hour),
	)
	require.NoError(t, cleaner.RunOnce(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestRunOnceKeepsVerifiedAndRecentAccounts(t *testing.T) {
	db := openCleanupTestDB(t)
	signedUpAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	svc, err := services.NewAuthService(db, nil,
		services.WithClock(func() time.Time { return signedUpAt }),
	)
	require.NoError(t, err)

	for _, email := range []string{"fresh@example.com", "settled@example.com"} {
		_, err = svc.Signup(context.Background(), services.SignupInput{
			Username: email,
			Email:    email,
			Password: "secret123",
		})
		require.NoError(t, err)
	}

	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "settled@example.com").
		Update("is_verified", true).Error)

	cleaner := NewCleaner(svc,
		WithNow(func() time.Time { return signedUpAt.Add(time.Hour) }),
		WithMaxAge(24*time.Hour),
	)
	require.NoError(t, cleaner.RunOnce(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestCleanerWithoutServiceIsNoop(t *testing.T) {
	cleaner := NewCleaner(nil)
	require.NoError(t, cleaner.Start())
	require.NoError(t, cleaner.RunOnce(context.Background()))
	cleaner.Stop()
}
