package colleges

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"campusevents_backend/internals/features/campus/colleges/model"
)

type CollegeSeed struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// SeedCollegesFromJSON inserts the colleges listed in the JSON file, skipping
// names that already exist.
func SeedCollegesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading college seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Failed to read seed file: %v", err)
		return
	}

	var inputs []CollegeSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Failed to decode seed JSON: %v", err)
		return
	}

	for _, data := range inputs {
		var existing model.CollegeModel
		if err := db.Where("college_name = ?", data.Name).First(&existing).Error; err == nil {
			log.Printf("ℹ️ College '%s' already exists, skipped.", data.Name)
			continue
		}

		college := model.CollegeModel{
			CollegeName:     data.Name,
			CollegeLocation: data.Location,
		}
		if err := db.Create(&college).Error; err != nil {
			log.Printf("❌ Failed to insert college '%s': %v", data.Name, err)
		} else {
			log.Printf("✅ Inserted college '%s'", data.Name)
		}
	}
}
