package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmpark/company-catalog-backend/internal/app/service"
	apperrors "github.com/jmpark/company-catalog-backend/internal/errors"
	"github.com/jmpark/company-catalog-backend/internal/middleware"
)

type CompanyController struct {
	companyService service.CompanyService
}

func NewCompanyController(companyService service.CompanyService) *CompanyController {
	return &CompanyController{
		companyService: companyService,
	}
}

// GetCompaniesByNameAuto searches with a potentially partial name and
// returns every company with a localized name containing it, in any
// language. An empty match list is a successful response.
// GET /companies/name/auto/:name
func (ctrl *CompanyController) GetCompaniesByNameAuto(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	matches, err := ctrl.companyService.GetCompaniesByNameMatch(name)
	if err != nil {
		log.Error("Failed to search companies by name fragment", err, map[string]interface{}{
			"fragment": name,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Company name search completed", map[string]interface{}{
		"fragment": name,
		"matches":  len(matches),
	})

	c.JSON(http.StatusOK, gin.H{
		"searchString": name,
		"matches":      matches,
	})
}

// GetCompanyByID retrieves a company record by UUID value
// GET /companies/:company
func (ctrl *CompanyController) GetCompanyByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := uuid.Parse(c.Param("company"))
	if err != nil {
		log.Warn("Invalid company ID format", map[string]interface{}{
			"company_id": c.Param("company"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "회사 ID 형식이 올바르지 않습니다")
		return
	}

	match, err := ctrl.companyService.GetCompanyByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		log.Error("Failed to fetch company", err, map[string]interface{}{
			"company_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": match,
	})
}

// GetCompaniesByNameExact searches for exact matches of the provided
// company name. The payload is a list: the same name can be used by
// different companies in different regions.
// GET /companies/name/:name
func (ctrl *CompanyController) GetCompaniesByNameExact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	name := c.Param("name")

	matches, err := ctrl.companyService.GetCompaniesByExactName(name)
	if err != nil {
		log.Error("Failed to search companies by exact name", err, map[string]interface{}{
			"name": name,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
	})
}

// GetCompaniesByTag returns the companies linked to any tag whose display
// string equals the given name, in any language.
// GET /companies/tags/:tag
func (ctrl *CompanyController) GetCompaniesByTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	tag := c.Param("tag")

	companies, err := ctrl.companyService.GetCompaniesByTag(tag)
	if err != nil {
		log.Error("Failed to fetch companies by tag", err, map[string]interface{}{
			"tag": tag,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Companies fetched by tag", map[string]interface{}{
		"tag":       tag,
		"companies": len(companies),
	})

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
	})
}
