package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabrix/internal/domain"
	"cabrix/internal/service"
)

// CompanyHandler handles HTTP requests for companies.
type CompanyHandler struct {
	companies *service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// RegisterCompanyRequest is the HTTP request body for company registration.
type RegisterCompanyRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	AdminUsername  string `json:"admin_username"`
	AdminEmail     string `json:"admin_email"`
	AdminPassword  string `json:"admin_password"`
	AdminFirstName string `json:"admin_first_name"`
	AdminLastName  string `json:"admin_last_name"`
	AdminPhone     string `json:"admin_phone"`
}

// CompanyResponse is the HTTP response for company data.
type CompanyResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	ContactEmail     string `json:"contact_email"`
	ContactPhone     string `json:"contact_phone"`
	RegistrationDate string `json:"registration_date,omitempty"`
}

func companyResponse(company *domain.Company) CompanyResponse {
	resp := CompanyResponse{
		ID:           company.ID,
		Name:         company.Name,
		Address:      company.Address,
		ContactEmail: company.ContactEmail,
		ContactPhone: company.ContactPhone,
	}
	if !company.RegistrationDate.IsZero() {
		resp.RegistrationDate = company.RegistrationDate.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// Register handles POST /api/companies
func (h *CompanyHandler) Register(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.companies.RegisterCompany(c.Request.Context(), service.RegisterCompanyRequest{
		Name:           req.Name,
		Address:        req.Address,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		AdminUsername:  req.AdminUsername,
		AdminEmail:     req.AdminEmail,
		AdminPassword:  req.AdminPassword,
		AdminFirstName: req.AdminFirstName,
		AdminLastName:  req.AdminLastName,
		AdminPhone:     req.AdminPhone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{
		"message": "Company registered successfully",
		"company": companyResponse(result.Company),
	})
}

// GetCompany handles GET /api/companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companies.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, companyResponse(company))
}

// GetAll handles GET /api/companies
func (h *CompanyHandler) GetAll(c *gin.Context) {
	companies, err := h.companies.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CompanyResponse, 0, len(companies))
	for _, company := range companies {
		response = append(response, companyResponse(company))
	}

	respondJSON(c, http.StatusOK, response)
}
