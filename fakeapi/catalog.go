package fakeapi

import (
	"net/http"
	"path"

	"food-delivery-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// photoName records an uploaded file's name under folder. File contents are
// not stored.
func photoName(c *gin.Context, field, folder string) string {
	fh, err := c.FormFile(field)
	if err != nil {
		return ""
	}
	return path.Join(folder, uuid.NewString()+"-"+path.Base(fh.Filename))
}

// ── Categories ──────────────────────────────────────────────────────────────

func (s *Server) listCategories(c *gin.Context) {
	var cats []categoryRecord
	if err := s.db.Order("name").Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	out := make([]models.Category, len(cats))
	for i, cat := range cats {
		out[i] = cat.model()
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getCategory(c *gin.Context) {
	var cat categoryRecord
	if err := s.db.First(&cat, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, cat.model())
}

func (s *Server) createCategory(c *gin.Context) {
	var req models.CategoryForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat := categoryRecord{Name: req.Name}
	if err := s.db.Create(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, cat.model())
}

func (s *Server) updateCategory(c *gin.Context) {
	var req models.CategoryForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var cat categoryRecord
	if err := s.db.First(&cat, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "Category")
		return
	}
	cat.Name = req.Name
	if err := s.db.Save(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, cat.model())
}

func (s *Server) deleteCategory(c *gin.Context) {
	var inUse int64
	s.db.Model(&restaurantRecord{}).Where("category_id = ?", c.Param("id")).Count(&inUse)
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Category is used by restaurants"})
		return
	}
	s.deleteByID(c, &categoryRecord{}, "Category")
}

// deleteByID removes the row with the :id param, answering 404 when absent.
func (s *Server) deleteByID(c *gin.Context, model any, what string) {
	res := s.db.Delete(model, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete " + what})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": what + " deleted"})
}

// ── Restaurants ─────────────────────────────────────────────────────────────

func (s *Server) restaurants() *gorm.DB {
	return s.db.Preload("Category").Preload("Owner")
}

func (s *Server) listRestaurants(c *gin.Context) {
	var rs []restaurantRecord
	if err := s.restaurants().Order("name").Find(&rs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list restaurants"})
		return
	}
	out := make([]models.Restaurant, len(rs))
	for i, r := range rs {
		out[i] = r.model()
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getRestaurant(c *gin.Context) {
	var r restaurantRecord
	if err := s.restaurants().First(&r, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "Restaurant")
		return
	}
	c.JSON(http.StatusOK, r.model())
}

// createRestaurant creates the owner account and the store together.
func (s *Server) createRestaurant(c *gin.Context) {
	var form models.RestaurantForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.RequireAccount(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var cat categoryRecord
	if err := s.db.First(&cat, "id = ?", form.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return
	}
	if form.Status == "" {
		form.Status = models.RestaurantActive
	}

	r := restaurantRecord{
		Name:       form.Name,
		CategoryID: cat.ID,
		Street:     form.Street,
		City:       form.City,
		Zipcode:    form.Zipcode,
		Status:     string(form.Status),
		Photo:      photoName(c, "restaurant_photo", c.DefaultQuery("folder", "restaurants")),
	}
	status := http.StatusInternalServerError
	err := s.db.Transaction(func(tx *gorm.DB) error {
		owner, st, err := s.insertUser(tx, models.CreateUserRequest{
			Firstname: form.Firstname,
			Lastname:  form.Lastname,
			Email:     form.Email,
			Password:  form.Password,
			Phone:     form.Phone,
			Role:      models.RoleRestaurant,
		})
		if err != nil {
			status = st
			return err
		}
		r.OwnerID = owner.ID
		return tx.Omit(clause.Associations).Create(&r).Error
	})
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.restaurants().First(&r, "id = ?", r.ID)
	c.JSON(http.StatusCreated, r.model())
}

func (s *Server) updateRestaurant(c *gin.Context) {
	var form models.RestaurantForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var r restaurantRecord
	if err := s.restaurants().First(&r, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "Restaurant")
		return
	}
	if form.CategoryID != "" {
		var cat categoryRecord
		if err := s.db.First(&cat, "id = ?", form.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			return
		}
	}

	updates := nonEmpty(map[string]string{
		"name":        form.Name,
		"category_id": form.CategoryID,
		"street":      form.Street,
		"city":        form.City,
		"zipcode":     form.Zipcode,
		"status":      string(form.Status),
		"photo":       photoName(c, "restaurant_photo", "restaurants"),
	})
	status := http.StatusInternalServerError
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&r).Omit(clause.Associations).Updates(updates).Error; err != nil {
				return err
			}
		}
		st, err := s.applyUserUpdate(tx, &r.Owner, models.UpdateUserRequest{
			Firstname: form.Firstname,
			Lastname:  form.Lastname,
			Email:     form.Email,
			Phone:     form.Phone,
			Password:  form.Password,
		})
		status = st
		return err
	})
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.restaurants().First(&r, "id = ?", r.ID)
	c.JSON(http.StatusOK, r.model())
}

func (s *Server) deleteRestaurant(c *gin.Context) {
	s.deleteByID(c, &restaurantRecord{}, "Restaurant")
}

func nonEmpty(fields map[string]string) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// ── Drivers ─────────────────────────────────────────────────────────────────

func (s *Server) drivers() *gorm.DB {
	return s.db.Preload("User")
}

func (s *Server) listDrivers(c *gin.Context) {
	var ds []driverRecord
	if err := s.drivers().Order("created_at desc").Find(&ds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list drivers"})
		return
	}
	out := make([]models.Driver, len(ds))
	for i, d := range ds {
		out[i] = d.model()
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getDriver(c *gin.Context) {
	var d driverRecord
	if err := s.drivers().First(&d, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "Driver")
		return
	}
	c.JSON(http.StatusOK, d.model())
}

func (s *Server) createDriver(c *gin.Context) {
	var form models.DriverForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.RequireAccount(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if form.Status == "" {
		form.Status = models.DriverAvailable
	}

	d := driverRecord{
		VehicleType: form.VehicleType,
		PlateNumber: form.PlateNumber,
		Status:      string(form.Status),
		Photo:       photoName(c, "driver_photo", "drivers"),
	}
	status := http.StatusInternalServerError
	err := s.db.Transaction(func(tx *gorm.DB) error {
		u, st, err := s.insertUser(tx, models.CreateUserRequest{
			Firstname: form.Firstname,
			Lastname:  form.Lastname,
			Email:     form.Email,
			Password:  form.Password,
			Phone:     form.Phone,
			Role:      models.RoleDriver,
		})
		if err != nil {
			status = st
			return err
		}
		d.UserID = u.ID
		return tx.Omit(clause.Associations).Create(&d).Error
	})
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.drivers().First(&d, "id = ?", d.ID)
	c.JSON(http.StatusCreated, d.model())
}

func (s *Server) updateDriver(c *gin.Context) {
	var form models.DriverForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var d driverRecord
	if err := s.drivers().First(&d, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "Driver")
		return
	}

	updates := nonEmpty(map[string]string{
		"vehicle_type": form.VehicleType,
		"plate_number": form.PlateNumber,
		"status":       string(form.Status),
		"photo":        photoName(c, "driver_photo", "drivers"),
	})
	status := http.StatusInternalServerError
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&d).Omit(clause.Associations).Updates(updates).Error; err != nil {
				return err
			}
		}
		st, err := s.applyUserUpdate(tx, &d.User, models.UpdateUserRequest{
			Firstname: form.Firstname,
			Lastname:  form.Lastname,
			Email:     form.Email,
			Phone:     form.Phone,
			Password:  form.Password,
		})
		status = st
		return err
	})
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.drivers().First(&d, "id = ?", d.ID)
	c.JSON(http.StatusOK, d.model())
}

func (s *Server) deleteDriver(c *gin.Context) {
	s.deleteByID(c, &driverRecord{}, "Driver")
}

// ── Products ────────────────────────────────────────────────────────────────

func (s *Server) listProducts(c *gin.Context) {
	var ps []productRecord
	query := s.db.Order("name")
	if rid := c.Query("restaurant_id"); rid != "" {
		query = query.Where("restaurant_id = ?", rid)
	}
	if err := query.Find(&ps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	out := make([]models.Product, len(ps))
	for i, p := range ps {
		out[i] = p.model()
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) bindProduct(c *gin.Context) (models.ProductForm, bool) {
	var req models.ProductForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be zero or more"})
		return req, false
	}
	var r restaurantRecord
	if err := s.db.First(&r, "id = ?", req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant not found"})
		return req, false
	}
	return req, true
}

func (s *Server) createProduct(c *gin.Context) {
	req, ok := s.bindProduct(c)
	if !ok {
		return
	}
	p := productRecord{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Available:    req.Available,
	}
	if err := s.db.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, p.model())
}

func (s *Server) updateProduct(c *gin.Context) {
	req, ok := s.bindProduct(c)
	if !ok {
		return
	}
	var p productRecord
	if err := s.db.First(&p, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "Product")
		return
	}
	p.RestaurantID = req.RestaurantID
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.Available = req.Available
	if err := s.db.Save(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, p.model())
}

func (s *Server) deleteProduct(c *gin.Context) {
	s.deleteByID(c, &productRecord{}, "Product")
}
