package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"text/template"

	"github.com/okfde/froide-campaign-service/internal/models"
)

// MaxSubjectLength is the longest request subject passed to the request form
const MaxSubjectLength = 250

// hideFeatures are always switched off on the prefilled request form
var hideFeatures = []string{
	"hide_public",
	"hide_full_text",
	"hide_similar",
	"hide_draft",
	"hide_editing",
}

// RequestURLRedirect returns the internal path redirecting to the request form of a target
func (p *Provider) RequestURLRedirect(ident string) string {
	return RedirectPath(p.urls.BasePath, p.campaign.ID, ident)
}

// RedirectPath returns the path of the request redirect endpoint of a target
func RedirectPath(basePath string, campaignID uint, ident string) string {
	return fmt.Sprintf("%s/campaign/%d/%s/request/", basePath, campaignID, url.PathEscape(ident))
}

// RequestURL returns the prefilled request form URL of a target
func (p *Provider) RequestURL(ctx context.Context, ident string) (string, error) {
	obj, err := p.getObject(ctx, ident)
	if err != nil {
		return "", err
	}
	return p.MakeRequestURL(obj)
}

// MakeRequestURL renders subject and body of a target into the request form URL
func (p *Provider) MakeRequestURL(obj *models.InformationObject) (string, error) {
	data := p.requestContext(obj)

	subject, err := render(p.subject, data)
	if err != nil {
		return "", fmt.Errorf("failed to render subject: %w", err)
	}
	body, err := render(p.body, data)
	if err != nil {
		return "", fmt.Errorf("failed to render body: %w", err)
	}

	query := url.Values{}
	query.Set("subject", TruncateSubject(subject))
	query.Set("body", body)
	query.Set("ref", Ref(p.campaign.ID, obj.Ident))
	for _, f := range hideFeatures {
		query.Set(f, "1")
	}
	if p.config.LawType != "" {
		query.Set("law_type", p.config.LawType)
	}

	target := p.urls.MakeRequestURL
	if obj.PublicBody != nil {
		query.Set("hide_publicbody", "1")
		target = strings.TrimSuffix(target, "/") + "/to/" + url.PathEscape(obj.PublicBody.Slug) + "/"
	}
	return target + "?" + query.Encode(), nil
}

// requestContext is the data request templates are rendered with
func (p *Provider) requestContext(obj *models.InformationObject) map[string]interface{} {
	var publicBody, publicBodySlug string
	if obj.PublicBody != nil {
		publicBody = obj.PublicBody.Name
		publicBodySlug = obj.PublicBody.Slug
	}
	ctx := obj.Context
	if ctx == nil {
		ctx = models.JSON{}
	}
	return map[string]interface{}{
		"ident":           obj.Ident,
		"title":           obj.Title,
		"subtitle":        obj.Subtitle,
		"address":         obj.Address,
		"publicbody":      publicBody,
		"publicbody_slug": publicBodySlug,
		"campaign":        p.campaign.Title,
		"context":         ctx,
	}
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// TruncateSubject cuts subjects longer than MaxSubjectLength characters and marks the cut
func TruncateSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) <= MaxSubjectLength {
		return subject
	}
	return string(runes[:MaxSubjectLength]) + "..."
}

// Ref returns the reference token tying a request to a campaign target
func Ref(campaignID uint, ident string) string {
	return fmt.Sprintf("campaign:%d@%s", campaignID, ident)
}

// ParseRef splits a reference token into campaign id and ident
func ParseRef(ref string) (uint, string, bool) {
	rest, ok := strings.CutPrefix(ref, "campaign:")
	if !ok {
		return 0, "", false
	}
	idPart, ident, ok := strings.Cut(rest, "@")
	if !ok || ident == "" {
		return 0, "", false
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return uint(id), ident, true
}
