package users

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	collegeModel "campusevents_backend/internals/features/campus/colleges/model"
	authService "campusevents_backend/internals/features/users/auth/service"
	"campusevents_backend/internals/features/users/user/model"
)

type AdminSeed struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	College  string `json:"college"`
	Role     string `json:"role"`
}

// SeedAdminsFromJSON inserts bootstrap accounts. The referenced college must
// already be seeded, so run the college seed first.
func SeedAdminsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading admin seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Failed to read seed file: %v", err)
		return
	}

	var inputs []AdminSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Failed to decode seed JSON: %v", err)
		return
	}

	for _, data := range inputs {
		var existing model.UserModel
		if err := db.Where("user_email = ?", data.Email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User with email '%s' already exists, skipped.", data.Email)
			continue
		}

		var college collegeModel.CollegeModel
		if err := db.Where("college_name = ?", data.College).First(&college).Error; err != nil {
			log.Printf("❌ College '%s' not found for user '%s', skipped.", data.College, data.Email)
			continue
		}

		hashed, err := authService.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Failed to hash password for '%s': %v", data.Email, err)
			continue
		}

		user := model.UserModel{
			UserName:         data.UserName,
			UserEmail:        data.Email,
			UserPasswordHash: hashed,
			UserFullName:     data.FullName,
			UserRole:         data.Role,
			UserCollegeID:    college.CollegeID,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Failed to insert user '%s': %v", data.Email, err)
		} else {
			log.Printf("✅ Inserted user '%s' (%s)", data.Email, data.Role)
		}
	}
}
