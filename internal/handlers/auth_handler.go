package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/auth"
	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/httperr"
	"github.com/pro-master/backend/internal/infra/tokenstore"
	"github.com/pro-master/backend/internal/middleware"
	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/validators"
)

var (
	errEmailTaken         = httperr.Invalid("email_taken", "A user with this email already exists.")
	errPhoneTaken         = httperr.Invalid("phone_number_taken", "A user with this phone number already exists.")
	errInvalidCredentials = httperr.Invalid("invalid_credentials", "Unable to log in with provided credentials.")
	errInvalidPassword    = httperr.Invalid("invalid_password", "Invalid password.")
	errEmailDomain        = httperr.Invalid("invalid_email_domain", "The email domain does not accept mail.")
	errPasswordTooLong    = httperr.Invalid("invalid_password", "Password must be at most 72 bytes long.")
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	tokens tokenstore.Store
	log    *zap.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, tokens tokenstore.Store, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, tokens: tokens, log: log}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	FirstName   string `json:"first_name" binding:"max=150"`
	LastName    string `json:"last_name" binding:"max=150"`
	IsMaster    bool   `json:"is_master"`
}

// LoginRequest takes either email or phone_number; email wins when both
// are present.
type LoginRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email, err := validators.NormalizeEmail(req.Email)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if h.config.EmailCheckDomain && !validators.IsEmailDomainValid(email) {
		httperr.Respond(c, h.log, errEmailDomain)
		return
	}

	phone, err := validators.NormalizePhone(req.PhoneNumber, h.config.PhoneDefaultRegion)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if count > 0 {
		httperr.Respond(c, h.log, errEmailTaken)
		return
	}
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("phone_number = ?", phone).Count(&count).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if count > 0 {
		httperr.Respond(c, h.log, errPhoneTaken)
		return
	}

	// max=72 counts characters; bcrypt limits bytes
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		httperr.Respond(c, h.log, errPasswordTooLong)
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	user := models.User{
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsMaster:     req.IsMaster,
		IsActive:     true,
	}

	// clients get their profile in the same transaction
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if user.IsMaster {
			return nil
		}
		return tx.Create(&models.ClientProfile{UserID: user.ID}).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, h.log, httperr.Invalid("user_exists", "A user with this email or phone number already exists."))
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	token, err := auth.Issue(h.config, &user)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":       user,
		"auth_token": token.Value,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	q := h.db.WithContext(c.Request.Context())
	switch {
	case req.Email != "":
		email, err := validators.NormalizeEmail(req.Email)
		if err != nil {
			httperr.Respond(c, h.log, errInvalidCredentials)
			return
		}
		q = q.Where("email = ?", email)
	case req.PhoneNumber != "":
		phone, err := validators.NormalizePhone(req.PhoneNumber, h.config.PhoneDefaultRegion)
		if err != nil {
			httperr.Respond(c, h.log, errInvalidCredentials)
			return
		}
		q = q.Where("phone_number = ?", phone)
	default:
		httperr.BadRequest(c, "credentials_required", "Provide email or phone_number.")
		return
	}

	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, h.log, errInvalidCredentials)
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}
	if !user.IsActive {
		httperr.Respond(c, h.log, errInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Respond(c, h.log, errInvalidPassword)
		return
	}

	token, err := auth.Issue(h.config, &user)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token.Value})
}

// Logout revokes the current token for the rest of its lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	if err := h.tokens.Revoke(c.Request.Context(), p.TokenID, middleware.TokenTTL(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
