package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a new user
// @Description Create a USER account and return a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,name=string} true "User registration data"
// @Success 201 {object} object{success=bool,message=string,data=object{token=string,user=object}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate user and get JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{success=bool,message=string,data=object{token=string,user=object}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/auth/login [post]
func (h *UserHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get current user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/users/me [get]
func (h *UserHandler) GetProfileDoc() {}

// UpdateProfile godoc
// @Summary Update current user
// @Description Change name, email or password. Omitted fields are unchanged.
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{email=string,name=string,password=string} true "Profile changes"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/users/me [put]
func (h *UserHandler) UpdateProfileDoc() {}

// ListUsers godoc
// @Summary List users
// @Description Paginated user listing (Admin only)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param role query string false "ADMIN or USER"
// @Param limit query int false "Limit (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{users=array,total=int,limit=int,offset=int}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/admin/users [get]
func (h *UserHandler) ListUsersDoc() {}

// CreateUser godoc
// @Summary Create user
// @Description Create a user with any role (Admin only)
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,name=string,role=string} true "User data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/admin/users [post]
func (h *UserHandler) CreateUserDoc() {}

// GetUser godoc
// @Summary Get user by ID
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/admin/users/{id} [get]
func (h *UserHandler) GetUserDoc() {}

// DeleteUser godoc
// @Summary Delete user
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/admin/users/{id} [delete]
func (h *UserHandler) DeleteUserDoc() {}

// ChangeRole godoc
// @Summary Change user role
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body object{role=string} true "ADMIN or USER"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/admin/users/{id}/role [put]
func (h *UserHandler) ChangeRoleDoc() {}

// ToggleActive godoc
// @Summary Activate or deactivate user
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/admin/users/{id}/toggle-active [put]
func (h *UserHandler) ToggleActiveDoc() {}

// GetStats godoc
// @Summary User statistics
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{total_users=int,admin_count=int,user_count=int,active_users=int}}
// @Router /api/admin/stats [get]
func (h *UserHandler) GetStatsDoc() {}
