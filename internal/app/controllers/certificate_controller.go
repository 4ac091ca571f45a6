package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/middleware"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// CertificateController handles completion certificates
type CertificateController struct {
	certificateService *services.CertificateService
	logger             zerolog.Logger
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService *services.CertificateService, logger zerolog.Logger) *CertificateController {
	return &CertificateController{
		certificateService: certificateService,
		logger:             logger,
	}
}

// RequestCertificate asks for a certificate on one of the current
// student's completed enrollments
func (c *CertificateController) RequestCertificate(ctx *gin.Context) {
	var req dto.RequestCertificateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.certificateService.RequestCertificate(ctx.Request.Context(), currentUserID(ctx), req.EnrollmentID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("enrollmentID", req.EnrollmentID).Msg("Certificate request rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("certificateID", resp.ID).Str("number", resp.CertificateNumber).Msg("Certificate requested")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// UpdateCertificateStatus approves, rejects or issues a certificate
func (c *CertificateController) UpdateCertificateStatus(ctx *gin.Context) {
	certificateID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCertificateStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.certificateService.UpdateCertificateStatus(ctx.Request.Context(), currentUserID(ctx), certificateID, req.Status)
	if err != nil {
		c.logger.Warn().Err(err).Int64("certificateID", certificateID).Str("status", string(req.Status)).Msg("Certificate status change rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// GetCertificate returns one certificate by ID
func (c *CertificateController) GetCertificate(ctx *gin.Context) {
	certificateID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.certificateService.GetCertificate(ctx.Request.Context(), certificateID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListCertificates lists certificates, optionally filtered by status
func (c *CertificateController) ListCertificates(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	status := models.CertificateStatus(ctx.Query("status"))

	resp, err := c.certificateService.ListCertificates(ctx.Request.Context(), status, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// MyCertificates lists the current student's certificates
func (c *CertificateController) MyCertificates(ctx *gin.Context) {
	resp, err := c.certificateService.ListStudentCertificates(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}
