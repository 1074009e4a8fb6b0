package seeds

import (
	"gorm.io/gorm"

	"campusevents_backend/internals/seeds/colleges"
	"campusevents_backend/internals/seeds/users"
)

// RunAllSeeds loads the bootstrap data. Order matters: admins reference
// colleges by name.
func RunAllSeeds(db *gorm.DB) {
	colleges.SeedCollegesFromJSON(db, "internals/seeds/colleges/data_colleges.json")
	users.SeedAdminsFromJSON(db, "internals/seeds/users/data_admins.json")
}
