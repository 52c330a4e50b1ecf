package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investapp/internal/config"
	"investapp/internal/dto"
	"investapp/internal/identity"
	"investapp/internal/middleware"
	"investapp/internal/pagination"
)

// Profile renders the authenticated user's profile page.
func (h *Handlers) Profile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := h.accounts.GetByID(userID)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "User not found"})
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{"User": dto.UserToViewModel(*user)})
}

// UploadProfileImage stores the submitted image and records it on the user.
func (h *Handlers) UploadProfileImage(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": "An image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not read the image"})
		return
	}
	defer file.Close()

	name, err := h.images.Save(userID, fileHeader.Filename, file)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": err.Error()})
		return
	}
	if err := h.accounts.SetProfileImage(userID, name); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not store the image"})
		return
	}

	c.Redirect(http.StatusFound, "/profile")
}

// Users renders the admin user listing.
func (h *Handlers) Users(c *gin.Context) {
	var page pagination.PageRequest
	_ = c.ShouldBindQuery(&page)

	users, err := h.accounts.GetAll(page)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Could not load users"})
		return
	}

	vms := make([]dto.UserViewModel, 0, len(users.Data))
	for _, u := range users.Data {
		vms = append(vms, dto.UserToViewModel(u))
	}

	c.HTML(http.StatusOK, "users.html", gin.H{
		"Users":      vms,
		"Page":       users.Page,
		"TotalPages": users.TotalPages,
	})
}

// ShowUserForm renders the admin edit form for one user.
func (h *Handlers) ShowUserForm(c *gin.Context) {
	user, err := h.accounts.GetByID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "User not found"})
		return
	}

	c.HTML(http.StatusOK, "user_form.html", gin.H{"User": dto.UserToViewModel(*user)})
}

// SaveUser applies the admin edit form to a user.
func (h *Handlers) SaveUser(c *gin.Context) {
	id := c.Param("id")

	req := identity.UpdateUserRequest{
		Email:    c.PostForm("email"),
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Name:     c.PostForm("name"),
		LastName: c.PostForm("last_name"),
		Phone:    c.PostForm("phone"),
		Role:     c.PostForm("role"),
	}

	_, err := h.accounts.UpdateUser(id, req, config.Get().BaseURL, false)
	if err != nil {
		c.HTML(http.StatusBadRequest, "user_form.html", gin.H{
			"Error": errorText(err),
			"User": dto.UserViewModel{
				ID:       id,
				Email:    req.Email,
				Username: req.Username,
				Name:     req.Name,
				LastName: req.LastName,
				Phone:    req.Phone,
				Role:     req.Role,
			},
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/users")
}

// DeleteUser removes a user and their stored profile image.
func (h *Handlers) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	if err := h.accounts.DeleteUser(id); err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "User not found"})
		return
	}
	_ = h.images.Delete(id)

	c.Redirect(http.StatusFound, "/admin/users")
}
