package fakeapi

import (
	"net/http"

	"food-delivery-admin/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (s *Server) listUsers(c *gin.Context) {
	var users []userRecord
	query := s.db.Where("is_admin = ?", false)
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.model()
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listCustomers(c *gin.Context) {
	var users []userRecord
	if err := s.db.Where("role = ?", models.RoleCustomer).Order("created_at desc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.model()
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getUser(c *gin.Context) {
	var u userRecord
	if err := s.db.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, u.model())
}

func (s *Server) createUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleCustomer
	}
	u, status, err := s.insertUser(s.db, req)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u.model())
}

func (s *Server) createCustomer(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Role = models.RoleCustomer
	u, status, err := s.insertUser(s.db, req)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u.model())
}

// insertUser checks email uniqueness and stores a bcrypt hash. On failure it
// also returns the status to answer with.
func (s *Server) insertUser(tx *gorm.DB, req models.CreateUserRequest) (userRecord, int, error) {
	validRoles := map[models.UserRole]bool{
		models.RoleCustomer:   true,
		models.RoleRestaurant: true,
		models.RoleDriver:     true,
	}
	if !validRoles[req.Role] {
		return userRecord{}, http.StatusBadRequest, errString("Invalid role. Must be: customer, restaurant or driver")
	}

	var existing userRecord
	if err := tx.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return userRecord{}, http.StatusConflict, errString("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return userRecord{}, http.StatusInternalServerError, errString("Failed to hash password")
	}
	u := userRecord{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         string(req.Role),
	}
	if err := tx.Create(&u).Error; err != nil {
		return userRecord{}, http.StatusInternalServerError, errString("Failed to create user")
	}
	return u, 0, nil
}

func (s *Server) updateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var u userRecord
	if err := s.db.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "User")
		return
	}
	if status, err := s.applyUserUpdate(s.db, &u, req); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u.model())
}

// applyUserUpdate writes the non-empty fields of req. Role is never touched.
func (s *Server) applyUserUpdate(tx *gorm.DB, u *userRecord, req models.UpdateUserRequest) (int, error) {
	updates := map[string]any{}
	if req.Firstname != "" {
		updates["firstname"] = req.Firstname
	}
	if req.Lastname != "" {
		updates["lastname"] = req.Lastname
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Email != "" && req.Email != u.Email {
		var existing userRecord
		if err := tx.Where("email = ? AND id <> ?", req.Email, u.ID).First(&existing).Error; err == nil {
			return http.StatusConflict, errString("Email already registered")
		}
		updates["email"] = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return http.StatusInternalServerError, errString("Failed to hash password")
		}
		updates["password_hash"] = string(hash)
	}
	if len(updates) == 0 {
		return 0, nil
	}
	if err := tx.Model(u).Updates(updates).Error; err != nil {
		return http.StatusInternalServerError, errString("Failed to update user")
	}
	if err := tx.First(u, "id = ?", u.ID).Error; err != nil {
		return http.StatusInternalServerError, errString("Failed to reload user")
	}
	return 0, nil
}

func (s *Server) deleteUser(c *gin.Context) {
	res := s.db.Delete(&userRecord{}, "id = ? AND is_admin = ?", c.Param("id"), false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

type errString string

func (e errString) Error() string { return string(e) }
