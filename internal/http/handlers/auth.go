package handlers

import (
	"net/http"
	"strings"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepository{}
	user, err := repo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	if !user.Active {
		RespondError(c, http.StatusUnauthorized, "account disabled", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	token, err := middleware.IssueToken(user.ID, user.TenantID, user.Role, user.VendorID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "user="+user.ID.String())
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type registerRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required"`
	TenantID   string `json:"tenantId" binding:"required,uuid"`
	VendorID   string `json:"vendorId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	switch req.Role {
	case models.RoleAdmin, models.RoleClientAdmin, models.RoleVendorAdmin, models.RoleEmployee:
	default:
		RespondError(c, http.StatusBadRequest, "unknown role", nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	repo := repositories.UserRepository{}
	exists, err := repo.ExistsByEmail(email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondDomainError(c, domain.ConflictError{Resource: "user", Msg: "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		TenantID:     uuid.MustParse(req.TenantID),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Department:   strings.TrimSpace(req.Department),
		Active:       true,
	}
	if req.VendorID != "" {
		vendorID, err := uuid.Parse(req.VendorID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid vendorId", err)
			return
		}
		user.VendorID = &vendorID
	}
	if err := repo.Insert(user); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "user="+user.ID.String())
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GET /api/auth/validate — echoes the authenticated caller's identity. The
// auth middleware has already rejected invalid tokens by the time this runs.
func Validate(c *gin.Context) {
	resp := gin.H{
		"userId":   middleware.GetUserID(c),
		"tenantId": middleware.GetTenantID(c),
		"role":     middleware.GetRole(c),
		"valid":    true,
	}
	if vendorID := middleware.GetVendorID(c); vendorID != uuid.Nil {
		resp["vendorId"] = vendorID
	}
	c.JSON(http.StatusOK, resp)
}
