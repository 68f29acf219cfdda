package services

import (
	"encoding/xml"
	"fmt"

	"github.com/vincentbastille10/SpectraAIDirectory/repositories"
)

// staticPaths are always present in the sitemap regardless of content.
var staticPaths = []string{"/", "/annuaire", "/ajouter"}

type SeoService interface {
	SitemapXML() ([]byte, error)
	RobotsTxt() string
}

type seoService struct {
	toolRepo repositories.ToolRepository
	baseURL  string
}

func NewSeoService(toolRepo repositories.ToolRepository, baseURL string) SeoService {
	return &seoService{
		toolRepo: toolRepo,
		baseURL:  baseURL,
	}
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML renders one <url> per published row plus the fixed static
// paths. Rebuilt from storage on every request.
func (s *seoService) SitemapXML() ([]byte, error) {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, path := range staticPaths {
		set.URLs = append(set.URLs, sitemapURL{Loc: s.baseURL + path})
	}

	tools, err := s.toolRepo.GetAllPublished()
	if err != nil {
		return nil, err
	}
	for _, tool := range tools {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/tool/%s", s.baseURL, tool.Slug),
			LastMod: tool.UpdatedAt.Format("2006-01-02"),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func (s *seoService) RobotsTxt() string {
	return fmt.Sprintf(
		"User-agent: *\nAllow: /\nDisallow: /checkout_success\nDisallow: /checkout_cancel\n\nSitemap: %s/sitemap.xml\n",
		s.baseURL,
	)
}
