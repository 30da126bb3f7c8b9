package notaires

import (
	"strings"

	"notary-crawler/internal/domain"
	"notary-crawler/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

// Detail page selectors.
const (
	selTitle   = "h1.office-sheet__title"
	selPhone   = "div.office-sheet__phone.field--telephone a"
	selMail    = "div.office-sheet__email.field--email a"
	selWebsite = "div.office-sheet__url.field--link a"
	selAddress = "div.office-sheet__address.field--address p.address"
)

// Extract reads every contact field of a detail page. Fields the page does
// not carry come back empty.
func Extract(doc *goquery.Document) domain.Notary {
	return domain.Notary{
		Name:    ExtractName(doc),
		Phone:   ExtractPhone(doc),
		Mail:    ExtractMail(doc),
		Website: ExtractWebsite(doc),
		Address: ExtractAddress(doc),
	}
}

// ExtractName reads titles like "Maître Jean Dupont : Office notarial" and
// keeps the part before " : ".
func ExtractName(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	span := doc.Find(selTitle).First().Find("span").First()
	if span.Length() == 0 {
		return ""
	}
	name, _, _ := strings.Cut(util.CleanText(span.Text()), " : ")
	return name
}

func ExtractPhone(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	a := doc.Find(selPhone).First()
	if a.Length() == 0 {
		return ""
	}
	return util.FormatPhone(a.Text())
}

func ExtractMail(doc *goquery.Document) string {
	href, ok := firstHref(doc, selMail)
	if !ok {
		return ""
	}
	return strings.TrimPrefix(href, "mailto:")
}

func ExtractWebsite(doc *goquery.Document) string {
	href, ok := firstHref(doc, selWebsite)
	if !ok {
		return ""
	}
	return util.EnsureScheme(href)
}

// ExtractAddress joins the address spans ("12 rue de la République",
// "69002", "Lyon") with single spaces.
func ExtractAddress(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	var parts []string
	doc.Find(selAddress).First().Find("span").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, util.CleanText(s.Text()))
	})
	return strings.Join(parts, " ")
}

func firstHref(doc *goquery.Document, sel string) (string, bool) {
	if doc == nil {
		return "", false
	}
	href, ok := doc.Find(sel).First().Attr("href")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(href), true
}
