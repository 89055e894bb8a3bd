// internal/app/features/account/types.go
package account

import "github.com/dalemusser/jobhub/internal/domain/models"

type registerRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           string `json:"role" validate:"required,role"`
	FullName       string `json:"fullName" validate:"required"`
	MobileNumber   string `json:"mobileNumber"`
	CompanyName    string `json:"companyName"`
	CompanyWebsite string `json:"companyWebsite"`

	// Optional job seeker sections accepted at sign up.
	Resume                   string                      `json:"resume"`
	ProfileImage             string                      `json:"profileImage"`
	BasicDetails             *models.BasicDetails        `json:"basicDetails"`
	ProfessionalDetails      *models.ProfessionalDetails `json:"professionalDetails"`
	PersonalDetails          *models.PersonalDetails     `json:"personalDetails"`
	Skills                   *models.SkillSet            `json:"skills"`
	RolesAndResponsibilities *models.RolesSummary        `json:"rolesAndResponsibilities"`
	Education                []models.Education          `json:"education"`
	EmploymentDetailsList    []models.Employment         `json:"employmentDetailsList"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type sendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

type resetRequest struct {
	Email       string `json:"email" validate:"required"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
