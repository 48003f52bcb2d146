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

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

// CreateTag inserts a completely new tag. The JSON body maps language codes
// to display names; keys that are not ISO 639-1 are dropped.
// POST /tags
func (ctrl *TagController) CreateTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var localizations map[string]string
	if err := c.ShouldBindJSON(&localizations); err != nil {
		log.Warn("Invalid tag creation payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "요청 본문이 올바르지 않습니다")
		return
	}

	tag, err := ctrl.tagService.CreateTag(localizations)
	if err != nil {
		if errors.Is(err, service.ErrEmptyLocalization) {
			apperrors.BadRequest(c, apperrors.ValidationEmptyText, "태그 이름은 비워둘 수 없습니다")
			return
		}
		if errors.Is(err, service.ErrNoValidLocalizations) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidLanguage, "유효한 언어 코드가 없습니다")
			return
		}
		log.Error("Failed to create tag", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Tag created", map[string]interface{}{
		"tag_id": tag.ID,
	})

	c.JSON(http.StatusCreated, tag)
}

// AttachTagByName adds an existing tag to a company, both resolved by name.
// A language query parameter pins the tag lookup to one language; it is
// only needed when tags in different languages share a display string.
// POST /companies/:company/tag/name/:tag?language=<code>
func (ctrl *TagController) AttachTagByName(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	companyName := c.Param("company")
	tagName := c.Param("tag")
	language := c.Query("language")

	err := ctrl.tagService.AttachTagByName(companyName, tagName, language)
	if err != nil {
		ctrl.respondAssociationError(c, err, companyName, tagName)
		return
	}

	log.Info("Tag attached", map[string]interface{}{
		"company": companyName,
		"tag":     tagName,
	})

	c.Status(http.StatusCreated)
}

// DetachTagByName removes a tag from a company, both resolved by name.
// Detaching a pair that was never attached yields 404.
// DELETE /companies/:company/tag/name/:tag?language=<code>
func (ctrl *TagController) DetachTagByName(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	companyName := c.Param("company")
	tagName := c.Param("tag")
	language := c.Query("language")

	err := ctrl.tagService.DetachTagByName(companyName, tagName, language)
	if err != nil {
		ctrl.respondAssociationError(c, err, companyName, tagName)
		return
	}

	log.Info("Tag detached", map[string]interface{}{
		"company": companyName,
		"tag":     tagName,
	})

	c.Status(http.StatusNoContent)
}

// AttachTagByID links a tag to a company by UUIDs, avoiding name ambiguity.
// POST /companies/:company/tag/:tag_id
func (ctrl *TagController) AttachTagByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	companyID, tagID, ok := ctrl.parseIDs(c)
	if !ok {
		return
	}

	err := ctrl.tagService.AttachTagByID(companyID, tagID)
	if err != nil {
		ctrl.respondAssociationError(c, err, companyID.String(), tagID.String())
		return
	}

	log.Info("Tag attached by ID", map[string]interface{}{
		"company_id": companyID,
		"tag_id":     tagID,
	})

	c.Status(http.StatusCreated)
}

// DetachTagByID removes a company tag association by UUIDs.
// DELETE /companies/:company/tag/:tag_id
func (ctrl *TagController) DetachTagByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	companyID, tagID, ok := ctrl.parseIDs(c)
	if !ok {
		return
	}

	err := ctrl.tagService.DetachTagByID(companyID, tagID)
	if err != nil {
		ctrl.respondAssociationError(c, err, companyID.String(), tagID.String())
		return
	}

	log.Info("Tag detached by ID", map[string]interface{}{
		"company_id": companyID,
		"tag_id":     tagID,
	})

	c.Status(http.StatusNoContent)
}

func (ctrl *TagController) parseIDs(c *gin.Context) (companyID, tagID uuid.UUID, ok bool) {
	log := middleware.GetLoggerFromContext(c)

	companyID, err := uuid.Parse(c.Param("company"))
	if err != nil {
		log.Warn("Invalid company ID format", map[string]interface{}{
			"company_id": c.Param("company"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "회사 ID 형식이 올바르지 않습니다")
		return uuid.Nil, uuid.Nil, false
	}

	tagID, err = uuid.Parse(c.Param("tag_id"))
	if err != nil {
		log.Warn("Invalid tag ID format", map[string]interface{}{
			"tag_id": c.Param("tag_id"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "태그 ID 형식이 올바르지 않습니다")
		return uuid.Nil, uuid.Nil, false
	}

	return companyID, tagID, true
}

func (ctrl *TagController) respondAssociationError(c *gin.Context, err error, company, tag string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrTagNotFound):
		apperrors.NotFound(c, apperrors.TagNotFound, "태그를 찾을 수 없습니다")
	case errors.Is(err, service.ErrCompanyNotFound):
		apperrors.NotFound(c, apperrors.CompanyNotFound, "회사를 찾을 수 없습니다")
	case errors.Is(err, service.ErrTagNotAttached):
		apperrors.NotFound(c, apperrors.TagNotAttached, "회사에 연결된 태그가 아닙니다")
	case errors.Is(err, service.ErrAmbiguousTag):
		apperrors.BadRequest(c, apperrors.TagAmbiguous, "태그 이름이 여러 태그와 일치합니다. language 파라미터로 지정해주세요")
	case errors.Is(err, service.ErrAmbiguousCompany):
		apperrors.BadRequest(c, apperrors.CompanyAmbiguous, "회사 이름이 여러 회사와 일치합니다")
	case errors.Is(err, service.ErrTagAlreadyAttached):
		apperrors.Conflict(c, apperrors.TagAlreadyAttached, "이미 회사에 연결된 태그입니다")
	default:
		log.Error("Company tag association failed", err, map[string]interface{}{
			"company": company,
			"tag":     tag,
		})
		apperrors.InternalError(c, "")
	}
}
