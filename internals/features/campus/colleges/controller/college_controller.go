package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campusevents_backend/internals/features/campus/colleges/dto"
	"campusevents_backend/internals/features/campus/colleges/model"
	helper "campusevents_backend/internals/helpers"
)

type CollegeController struct {
	DB *gorm.DB
}

func NewCollegeController(db *gorm.DB) *CollegeController {
	return &CollegeController{DB: db}
}

// 🟢 GET /api/public/colleges?page=&per_page= (registration form dropdown)
func (ctrl *CollegeController) GetColleges(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.CollegeModel{}).Count(&total).Error; err != nil {
		log.Printf("[ERROR] count colleges: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count colleges")
	}

	var colleges []model.CollegeModel
	if err := ctrl.DB.
		Order("college_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&colleges).Error; err != nil {
		log.Printf("[ERROR] list colleges: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch colleges")
	}

	return helper.JsonList(c, "", colleges, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/public/colleges/:id
func (ctrl *CollegeController) GetCollegeByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var college model.CollegeModel
	if err := ctrl.DB.Where("college_id = ?", id).Take(&college).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "College not found")
		}
		log.Printf("[ERROR] get college %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch college")
	}
	return helper.JsonOK(c, "", college)
}

// 🟢 POST /api/a/colleges. Colleges are immutable after creation, so this
// is the only mutating endpoint.
func (ctrl *CollegeController) CreateCollege(c *fiber.Ctx) error {
	var req dto.CollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	college := req.ToModel()
	if err := ctrl.DB.Create(college).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "23505") {
			return helper.JsonError(c, fiber.StatusConflict, "College name already exists")
		}
		log.Printf("[ERROR] create college: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create college")
	}
	return helper.JsonCreated(c, "College created", college)
}
