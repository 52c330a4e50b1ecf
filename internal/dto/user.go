package dto

import "investapp/internal/models"

// UserDTO is the transport shape for a user. Credentials and tokens are
// never included.
type UserDTO struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	ProfileImage   string `json:"profile_image,omitempty"`
	Role           string `json:"role"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

// UserViewModel is the server-rendered page shape for a user.
type UserViewModel struct {
	ID             string
	Email          string
	Username       string
	Name           string
	LastName       string
	Phone          string
	ProfileImage   string
	Role           string
	EmailConfirmed bool
}

// UserToDTO maps an entity to its DTO.
func UserToDTO(e *models.User) UserDTO {
	return UserDTO{
		ID:             e.ID,
		Email:          e.Email,
		Username:       e.Username,
		Name:           e.Name,
		LastName:       e.LastName,
		Phone:          e.Phone,
		ProfileImage:   e.ProfileImage,
		Role:           e.Role,
		EmailConfirmed: e.EmailConfirmed,
	}
}

// UserToViewModel maps a DTO to the page view model.
func UserToViewModel(d UserDTO) UserViewModel {
	return UserViewModel(d)
}

// UserFromViewModel maps a page view model back to a DTO.
func UserFromViewModel(vm UserViewModel) UserDTO {
	return UserDTO(vm)
}
