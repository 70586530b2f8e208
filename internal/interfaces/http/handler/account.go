package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// AccountHandler handles profile details and delivery contacts.
type AccountHandler struct {
	BaseHandler
	accountService *identityapp.AccountService
	contactService *identityapp.ContactService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *identityapp.AccountService, contactService *identityapp.ContactService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		contactService: contactService,
	}
}

// GetDetails handles GET /user/details.
func (h *AccountHandler) GetDetails(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.accountService.GetDetails(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// UpdateDetails handles POST /user/details.
func (h *AccountHandler) UpdateDetails(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	info, err := h.accountService.UpdateDetails(c.Request.Context(), identityapp.UpdateDetailsInput{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Password:  req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// ListContacts handles GET /user/contact.
func (h *AccountHandler) ListContacts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewContactViews(contacts))
}

// CreateContact handles POST /user/contact.
func (h *AccountHandler) CreateContact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), identityapp.CreateContactInput{
		UserID:    userID,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Structure: req.Structure,
		Building:  req.Building,
		Apartment: req.Apartment,
		Phone:     req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewContactView(contact))
}

// UpdateContact handles PUT /user/contact.
func (h *AccountHandler) UpdateContact(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), identityapp.UpdateContactInput{
		ContactID: req.ID,
		UserID:    userID,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Structure: req.Structure,
		Building:  req.Building,
		Apartment: req.Apartment,
		Phone:     req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewContactView(contact))
}

// DeleteContacts handles DELETE /user/contact. Only the caller's own
// rows are removed; foreign ids silently delete nothing.
func (h *AccountHandler) DeleteContacts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.DeleteContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	deleted, err := h.contactService.Delete(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"deleted": deleted})
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.GET("/details", h.GetDetails)
		user.POST("/details", h.UpdateDetails)
	}

	contact := rg.Group("/user/contact")
	contact.Use(middleware.RequireCustomer())
	{
		contact.GET("", h.ListContacts)
		contact.POST("", h.CreateContact)
		contact.PUT("", h.UpdateContact)
		contact.DELETE("", h.DeleteContacts)
	}
}
