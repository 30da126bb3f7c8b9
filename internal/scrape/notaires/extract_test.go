package notaires

import (
	"strings"
	"testing"

	"notary-crawler/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const detailHTML = `<html><body>
<h1 class="office-sheet__title text-center text-m-start"><span>Maître Jean Dupont : Office notarial Bellecour</span></h1>
<div class="office-sheet__phone field--telephone"><a href="tel:+33478421010">04.78.42.10.10</a></div>
<div class="office-sheet__email field--email"><a href="mailto:jean@etude-bellecour.fr">Envoyer un email</a></div>
<div class="office-sheet__url field--link"><a href="www.etude-bellecour.fr">Site</a></div>
<div class="office-sheet__address field--address"><p class="address">
  <span>12 place Bellecour</span>
  <span>69002</span>
  <span>Lyon</span>
</p></div>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtract(t *testing.T) {
	n := Extract(mustDoc(t, detailHTML))

	if n.Name != "Maître Jean Dupont" {
		t.Fatalf("name = %q", n.Name)
	}
	if n.Phone != "04 78 42 10 10" {
		t.Fatalf("phone = %q", n.Phone)
	}
	if n.Mail != "jean@etude-bellecour.fr" {
		t.Fatalf("mail = %q", n.Mail)
	}
	if n.Website != "https://www.etude-bellecour.fr" {
		t.Fatalf("website = %q", n.Website)
	}
	if n.Address != "12 place Bellecour 69002 Lyon" {
		t.Fatalf("address = %q", n.Address)
	}
}

func TestExtractNameWithoutSeparator(t *testing.T) {
	doc := mustDoc(t, `<h1 class="office-sheet__title"><span>SCP Martin et Associés</span><span>ignored</span></h1>`)
	if got := ExtractName(doc); got != "SCP Martin et Associés" {
		t.Fatalf("name = %q", got)
	}
}

func TestExtractWebsiteKeepsScheme(t *testing.T) {
	doc := mustDoc(t, `<div class="office-sheet__url field--link"><a href="http://etude.example">x</a></div>`)
	if got := ExtractWebsite(doc); got != "http://etude.example" {
		t.Fatalf("website = %q", got)
	}
}

func TestExtractorsAreTotal(t *testing.T) {
	docs := map[string]string{
		"empty":         ``,
		"unrelated":     `<html><body><p>Page introuvable</p></body></html>`,
		"broken markup": `<h1 class="office-sheet__title"><div><p class="address"><span>`,
		"title no span": `<h1 class="office-sheet__title">Maître X : Office</h1>`,
		"links no href": `<div class="office-sheet__email field--email"><a>mail</a></div>
<div class="office-sheet__url field--link"><a>site</a></div>
<div class="office-sheet__phone field--telephone"></div>`,
		"address no p": `<div class="office-sheet__address field--address"><span>12 rue X</span></div>`,
	}
	for name, html := range docs {
		t.Run(name, func(t *testing.T) {
			n := Extract(mustDoc(t, html))
			if n != (domain.Notary{}) {
				t.Fatalf("expected empty record, got %+v", n)
			}
		})
	}

	if n := Extract(nil); n != (domain.Notary{}) {
		t.Fatalf("nil document: %+v", n)
	}
}
