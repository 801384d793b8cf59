package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/server/http/dto"
)

// PackageHandler serves the package catalog.
type PackageHandler struct {
	facade PackageFacade
}

// NewPackageHandler constructs PackageHandler.
func NewPackageHandler(facade PackageFacade) *PackageHandler {
	return &PackageHandler{facade: facade}
}

// List handles GET /api/packages.
func (h *PackageHandler) List(c *gin.Context) {
	packages, err := h.facade.Packages(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	resp := make([]dto.PackageResponse, 0, len(packages))
	for _, p := range packages {
		resp = append(resp, toPackageResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/packages/:id.
func (h *PackageHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid package id")
		return
	}
	pkg, err := h.facade.Package(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrPackageNotFound), errors.Is(err, domainErrors.ErrNotFound):
			writeError(c, http.StatusNotFound, "package not found")
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toPackageResponse(*pkg))
}

func toPackageResponse(p model.Package) dto.PackageResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return dto.PackageResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Discount:   p.Discount,
		FinalPrice: p.FinalPrice(),
		Features:   features,
	}
}
