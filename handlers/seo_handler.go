package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vincentbastille10/SpectraAIDirectory/services"
)

type SeoHandler struct {
	seoService services.SeoService
}

func NewSeoHandler(seoService services.SeoService) *SeoHandler {
	return &SeoHandler{seoService: seoService}
}

func (h *SeoHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, h.seoService.RobotsTxt())
}

func (h *SeoHandler) Sitemap(c *gin.Context) {
	body, err := h.seoService.SitemapXML()
	if err != nil {
		c.String(http.StatusInternalServerError, "sitemap error: %v", err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Verification echoes the configured site-verification file.
func (h *SeoHandler) Verification(filename string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "google-site-verification: %s", filename)
	}
}
