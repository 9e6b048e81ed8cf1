package iopubmed

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/gnames/biolexica/pkg/literature"
)

type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	PMID     string      `xml:"MedlineCitation>PMID"`
	Title    innerText   `xml:"MedlineCitation>Article>ArticleTitle"`
	Abstract []innerText `xml:"MedlineCitation>Article>Abstract>AbstractText"`
}

// innerText collects character data of an element and its children, so
// markup like <i> inside titles is flattened.
type innerText string

func (t *innerText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(v)
		}
	}
	*t = innerText(strings.TrimSpace(b.String()))
	return nil
}

func parseArticles(bs []byte) ([]literature.Article, error) {
	var set articleSet
	dec := xml.NewDecoder(bytes.NewReader(bs))
	dec.Strict = false
	if err := dec.Decode(&set); err != nil {
		return nil, err
	}

	res := make([]literature.Article, 0, len(set.Articles))
	for _, v := range set.Articles {
		parts := make([]string, 0, len(v.Abstract))
		for _, p := range v.Abstract {
			if p != "" {
				parts = append(parts, string(p))
			}
		}
		res = append(res, literature.Article{
			PubMed:   strings.TrimSpace(v.PMID),
			Title:    string(v.Title),
			Abstract: strings.Join(parts, " "),
		})
	}
	return res, nil
}
