package admin

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/example/cacti/internal/models"
	"github.com/example/cacti/internal/utils"
)

var validate = validator.New()

// Resources returns the back-office configuration for every managed entity.
func Resources() []*Resource {
	return []*Resource{
		cactusResource(),
		productResource(),
		userResource(),
		roleResource(),
	}
}

func imageCell(image string) Cell {
	if image == "" {
		return Cell{}
	}
	return Cell{ThumbURL: "/static/media/" + models.ThumbName(image)}
}

func difficultyOptions(*gorm.DB) ([]Option, error) {
	options := make([]Option, 0, len(models.DifficultyChoices))
	for _, choice := range models.DifficultyChoices {
		options = append(options, Option{Value: string(choice.Code), Label: choice.Label})
	}
	return options, nil
}

func cactusOptions(db *gorm.DB) ([]Option, error) {
	var cacti []models.Cactus
	if err := db.Order("name").Find(&cacti).Error; err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(cacti))
	for _, c := range cacti {
		options = append(options, Option{Value: strconv.FormatUint(uint64(c.ID), 10), Label: c.Name})
	}
	return options, nil
}

func roleOptions(db *gorm.DB) ([]Option, error) {
	var roles []models.Role
	if err := db.Order("name").Find(&roles).Error; err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(roles))
	for _, r := range roles {
		options = append(options, Option{Value: strconv.FormatUint(uint64(r.ID), 10), Label: r.Name})
	}
	return options, nil
}

// asValidationError rewrites validator errors into user-facing messages,
// using the admin field labels rather than struct field names.
func asValidationError(err error, labels map[string]string) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := labels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			messages = append(messages, label+" is required")
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", label, fe.Param()))
		case "oneof":
			messages = append(messages, label+" has an unknown value")
		case "email":
			messages = append(messages, label+" must be a valid email address")
		default:
			messages = append(messages, label+" is invalid")
		}
	}
	return &ValidationError{Messages: messages}
}

type cactusForm struct {
	Name        string `validate:"required,max=80"`
	Description string `validate:"required"`
	Image       string `validate:"required,max=128"`
	Difficulty  string `validate:"omitempty,oneof=1 2 3"`
}

var cactusLabels = map[string]string{
	"Name":        "Name",
	"Description": "Description",
	"Image":       "Image",
	"Difficulty":  "Difficulty",
}

func cactusResource() *Resource {
	return &Resource{
		Slug:    "cacti",
		Title:   "Cacti",
		Columns: []string{"Name", "Difficulty", "Image"},
		Fields: []Field{
			{Name: "name", Label: "Name", Widget: WidgetText, Required: true},
			{Name: "description", Label: "Description", Widget: WidgetRichText, Required: true},
			{Name: "image", Label: "Image", Widget: WidgetImage},
			{Name: "difficulty", Label: "Difficulty", Widget: WidgetSelect, Options: difficultyOptions},
		},
		Count: func(db *gorm.DB) (int64, error) {
			var count int64
			err := db.Model(&models.Cactus{}).Count(&count).Error
			return count, err
		},
		List: func(db *gorm.DB, pg utils.Pagination) ([]Row, int64, error) {
			var total int64
			if err := db.Model(&models.Cactus{}).Count(&total).Error; err != nil {
				return nil, 0, err
			}

			var cacti []models.Cactus
			if err := db.Limit(pg.Limit).Offset(pg.Offset).Order("id").Find(&cacti).Error; err != nil {
				return nil, 0, err
			}

			rows := make([]Row, len(cacti))
			for i, cactus := range cacti {
				label := ""
				if cactus.Difficulty != nil {
					label = cactus.Difficulty.Label()
				}
				rows[i] = Row{
					ID:    cactus.ID,
					Cells: []Cell{{Text: cactus.Name}, {Text: label}, imageCell(cactus.Image)},
				}
			}
			return rows, total, nil
		},
		Fetch: func(db *gorm.DB, id uint) (*FormValues, error) {
			var cactus models.Cactus
			if err := db.First(&cactus, id).Error; err != nil {
				return nil, err
			}
			form := NewFormValues()
			form.Set("name", cactus.Name)
			form.Set("description", cactus.Description)
			form.Set("image", cactus.Image)
			if cactus.Difficulty != nil {
				form.Set("difficulty", string(*cactus.Difficulty))
			}
			return form, nil
		},
		Save: func(db *gorm.DB, id uint, form *FormValues) error {
			var cactus models.Cactus
			if id != 0 {
				if err := db.First(&cactus, id).Error; err != nil {
					return err
				}
			}

			payload := cactusForm{
				Name:        form.Get("name"),
				Description: form.Get("description"),
				Image:       form.Get("image"),
				Difficulty:  form.Get("difficulty"),
			}
			// Edits without a new upload keep the stored image.
			if payload.Image == "" {
				payload.Image = cactus.Image
			}

			if err := validate.Struct(payload); err != nil {
				return asValidationError(err, cactusLabels)
			}

			cactus.Name = payload.Name
			cactus.Description = payload.Description
			cactus.Image = payload.Image
			cactus.Difficulty = nil
			if payload.Difficulty != "" {
				d := models.Difficulty(payload.Difficulty)
				cactus.Difficulty = &d
			}

			return db.Save(&cactus).Error
		},
		Delete: func(db *gorm.DB, id uint) error {
			// Owned products go with their cactus; likes stay behind.
			if err := db.Where("cactus_id = ?", id).Delete(&models.RelatedProduct{}).Error; err != nil {
				return err
			}
			return db.Delete(&models.Cactus{}, id).Error
		},
	}
}

type productForm struct {
	Name        string `validate:"required,max=80"`
	Description string `validate:"required"`
	Image       string `validate:"required,max=128"`
	CactusID    uint   `validate:"required"`
}

var productLabels = map[string]string{
	"Name":        "Name",
	"Description": "Description",
	"Image":       "Image",
	"CactusID":    "Cactus",
}

func productResource() *Resource {
	return &Resource{
		Slug:    "products",
		Title:   "Related products",
		Columns: []string{"Name", "Cactus", "Image"},
		Fields: []Field{
			{Name: "name", Label: "Name", Widget: WidgetText, Required: true},
			{Name: "description", Label: "Description", Widget: WidgetRichText, Required: true},
			{Name: "image", Label: "Image", Widget: WidgetImage},
			{Name: "cactus", Label: "Cactus", Widget: WidgetSelect, Required: true, Options: cactusOptions},
		},
		Count: func(db *gorm.DB) (int64, error) {
			var count int64
			err := db.Model(&models.RelatedProduct{}).Count(&count).Error
			return count, err
		},
		List: func(db *gorm.DB, pg utils.Pagination) ([]Row, int64, error) {
			var total int64
			if err := db.Model(&models.RelatedProduct{}).Count(&total).Error; err != nil {
				return nil, 0, err
			}

			var products []models.RelatedProduct
			if err := db.Limit(pg.Limit).Offset(pg.Offset).Order("id").Find(&products).Error; err != nil {
				return nil, 0, err
			}

			parents := map[uint]string{}
			var cacti []models.Cactus
			if err := db.Find(&cacti).Error; err != nil {
				return nil, 0, err
			}
			for _, c := range cacti {
				parents[c.ID] = c.Name
			}

			rows := make([]Row, len(products))
			for i, p := range products {
				rows[i] = Row{
					ID:    p.ID,
					Cells: []Cell{{Text: p.Name}, {Text: parents[p.CactusID]}, imageCell(p.Image)},
				}
			}
			return rows, total, nil
		},
		Fetch: func(db *gorm.DB, id uint) (*FormValues, error) {
			var product models.RelatedProduct
			if err := db.First(&product, id).Error; err != nil {
				return nil, err
			}
			form := NewFormValues()
			form.Set("name", product.Name)
			form.Set("description", product.Description)
			form.Set("image", product.Image)
			form.Set("cactus", strconv.FormatUint(uint64(product.CactusID), 10))
			return form, nil
		},
		Save: func(db *gorm.DB, id uint, form *FormValues) error {
			var product models.RelatedProduct
			if id != 0 {
				if err := db.First(&product, id).Error; err != nil {
					return err
				}
			}

			cactusID, _ := strconv.ParseUint(form.Get("cactus"), 10, 32)
			payload := productForm{
				Name:        form.Get("name"),
				Description: form.Get("description"),
				Image:       form.Get("image"),
				CactusID:    uint(cactusID),
			}
			if payload.Image == "" {
				payload.Image = product.Image
			}

			if err := validate.Struct(payload); err != nil {
				return asValidationError(err, productLabels)
			}

			var parent models.Cactus
			if err := db.First(&parent, payload.CactusID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return &ValidationError{Messages: []string{"Cactus has an unknown value"}}
				}
				return err
			}

			product.Name = payload.Name
			product.Description = payload.Description
			product.Image = payload.Image
			product.CactusID = payload.CactusID

			return db.Save(&product).Error
		},
		Delete: func(db *gorm.DB, id uint) error {
			return db.Delete(&models.RelatedProduct{}, id).Error
		},
	}
}

type userForm struct {
	Email    string `validate:"required,email,max=255"`
	Username string `validate:"omitempty,max=255"`
	Password string `validate:"omitempty,min=6"`
}

var userLabels = map[string]string{
	"Email":    "Email",
	"Username": "Username",
	"Password": "Password",
}

func userResource() *Resource {
	return &Resource{
		Slug:    "users",
		Title:   "Users",
		Columns: []string{"Email", "Active", "Logins"},
		Fields: []Field{
			{Name: "email", Label: "Email", Widget: WidgetText, Required: true},
			{Name: "username", Label: "Username", Widget: WidgetText},
			{Name: "password", Label: "Password", Widget: WidgetPassword},
			{Name: "active", Label: "Active", Widget: WidgetCheckbox},
			{Name: "roles", Label: "Roles", Widget: WidgetMultiSelect, Options: roleOptions},
		},
		Count: func(db *gorm.DB) (int64, error) {
			var count int64
			err := db.Model(&models.User{}).Count(&count).Error
			return count, err
		},
		List: func(db *gorm.DB, pg utils.Pagination) ([]Row, int64, error) {
			var total int64
			if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
				return nil, 0, err
			}

			var users []models.User
			if err := db.Limit(pg.Limit).Offset(pg.Offset).Order("id").Find(&users).Error; err != nil {
				return nil, 0, err
			}

			rows := make([]Row, len(users))
			for i, u := range users {
				active := "no"
				if u.Active {
					active = "yes"
				}
				rows[i] = Row{
					ID:    u.ID,
					Cells: []Cell{{Text: u.Email}, {Text: active}, {Text: strconv.Itoa(u.LoginCount)}},
				}
			}
			return rows, total, nil
		},
		Fetch: func(db *gorm.DB, id uint) (*FormValues, error) {
			var user models.User
			if err := db.Preload("Roles").First(&user, id).Error; err != nil {
				return nil, err
			}
			form := NewFormValues()
			form.Set("email", user.Email)
			if user.Username != nil {
				form.Set("username", *user.Username)
			}
			if user.Active {
				form.Set("active", "1")
			}
			roleIDs := make([]string, 0, len(user.Roles))
			for _, r := range user.Roles {
				roleIDs = append(roleIDs, strconv.FormatUint(uint64(r.ID), 10))
			}
			form.SetAll("roles", roleIDs)
			return form, nil
		},
		Save: func(db *gorm.DB, id uint, form *FormValues) error {
			var user models.User
			if id != 0 {
				if err := db.Preload("Roles").First(&user, id).Error; err != nil {
					return err
				}
			}

			payload := userForm{
				Email:    form.Get("email"),
				Username: form.Get("username"),
				Password: form.Get("password"),
			}

			if err := validate.Struct(payload); err != nil {
				return asValidationError(err, userLabels)
			}
			if id == 0 && payload.Password == "" {
				return &ValidationError{Messages: []string{"Password is required"}}
			}

			user.Email = payload.Email
			user.Username = nil
			if payload.Username != "" {
				username := payload.Username
				user.Username = &username
			}
			user.Active = form.Get("active") == "1"

			if payload.Password != "" {
				hash, err := utils.HashPassword(payload.Password)
				if err != nil {
					return err
				}
				user.Password = hash
			}

			var roles []models.Role
			if ids := form.GetAll("roles"); len(ids) > 0 {
				if err := db.Where("id IN ?", ids).Find(&roles).Error; err != nil {
					return err
				}
			}

			if err := db.Omit("Roles").Save(&user).Error; err != nil {
				return err
			}
			return db.Model(&user).Association("Roles").Replace(roles)
		},
		Delete: func(db *gorm.DB, id uint) error {
			user := models.User{ID: id}
			if err := db.Model(&user).Association("Roles").Clear(); err != nil {
				return err
			}
			return db.Delete(&models.User{}, id).Error
		},
	}
}

type roleForm struct {
	Name        string `validate:"required,max=80"`
	Description string `validate:"omitempty,max=255"`
}

var roleLabels = map[string]string{
	"Name":        "Name",
	"Description": "Description",
}

func roleResource() *Resource {
	return &Resource{
		Slug:    "roles",
		Title:   "Roles",
		Columns: []string{"Name", "Description"},
		Fields: []Field{
			{Name: "name", Label: "Name", Widget: WidgetText, Required: true},
			{Name: "description", Label: "Description", Widget: WidgetText},
		},
		Count: func(db *gorm.DB) (int64, error) {
			var count int64
			err := db.Model(&models.Role{}).Count(&count).Error
			return count, err
		},
		List: func(db *gorm.DB, pg utils.Pagination) ([]Row, int64, error) {
			var total int64
			if err := db.Model(&models.Role{}).Count(&total).Error; err != nil {
				return nil, 0, err
			}

			var roles []models.Role
			if err := db.Limit(pg.Limit).Offset(pg.Offset).Order("id").Find(&roles).Error; err != nil {
				return nil, 0, err
			}

			rows := make([]Row, len(roles))
			for i, r := range roles {
				rows[i] = Row{ID: r.ID, Cells: []Cell{{Text: r.Name}, {Text: r.Description}}}
			}
			return rows, total, nil
		},
		Fetch: func(db *gorm.DB, id uint) (*FormValues, error) {
			var role models.Role
			if err := db.First(&role, id).Error; err != nil {
				return nil, err
			}
			form := NewFormValues()
			form.Set("name", role.Name)
			form.Set("description", role.Description)
			return form, nil
		},
		Save: func(db *gorm.DB, id uint, form *FormValues) error {
			var role models.Role
			if id != 0 {
				if err := db.First(&role, id).Error; err != nil {
					return err
				}
			}

			payload := roleForm{
				Name:        form.Get("name"),
				Description: form.Get("description"),
			}
			if err := validate.Struct(payload); err != nil {
				return asValidationError(err, roleLabels)
			}

			role.Name = payload.Name
			role.Description = payload.Description
			return db.Save(&role).Error
		},
		Delete: func(db *gorm.DB, id uint) error {
			return db.Delete(&models.Role{}, id).Error
		},
	}
}
