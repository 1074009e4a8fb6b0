package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "campusevents_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler purges expired blacklist and refresh-token
// rows every hour so the tables stay small.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			if err := db.Where("token_blacklist_expires_at < ?", now).
				Delete(&authModel.TokenBlacklistModel{}).Error; err != nil {
				log.Printf("[ERROR] blacklist cleanup: %v", err)
			}
			if err := db.Where("refresh_token_expires_at < ?", now).
				Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
				log.Printf("[ERROR] refresh token cleanup: %v", err)
			}
		}
	}()
}
