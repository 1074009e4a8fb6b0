package dto

import (
	"campusevents_backend/internals/features/campus/colleges/model"
)

type CollegeRequest struct {
	CollegeName     string `json:"college_name" validate:"required,max=255"`
	CollegeLocation string `json:"college_location,omitempty" validate:"omitempty,max=255"`
}

func (r *CollegeRequest) ToModel() *model.CollegeModel {
	return &model.CollegeModel{
		CollegeName:     r.CollegeName,
		CollegeLocation: r.CollegeLocation,
	}
}
