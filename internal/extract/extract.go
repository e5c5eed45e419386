package extract

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const UnknownTitle = "Unknown Title"

// Metadata is the plain entity record carried into graph ingestion.
type Metadata struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Citations []string `json:"citations"`
}

// Extract pulls title, authors and citation titles out of a TEI metadata
// document. It is total: malformed or partially missing structure degrades
// to defaults, never to an error. Author order and citation order follow the
// document; nothing is deduplicated here.
func Extract(doc []byte) Metadata {
	meta := Metadata{
		Title:     UnknownTitle,
		Authors:   []string{},
		Citations: []string{},
	}

	var tei teiDocument
	dec := xml.NewDecoder(bytes.NewReader(doc))
	dec.Strict = false
	if err := dec.Decode(&tei); err != nil {
		return meta
	}

	if ts := tei.Header.FileDesc.TitleStmt; ts != nil && ts.Title != nil {
		if t := strings.TrimSpace(ts.Title.Text); t != "" {
			meta.Title = t
		}
	}

	for _, a := range documentAuthors(tei) {
		name := strings.TrimSpace(personName(a))
		if name == "" {
			continue
		}
		meta.Authors = append(meta.Authors, name)
	}

	for _, entry := range bibliography(tei) {
		if t := citationTitle(entry); t != "" {
			meta.Citations = append(meta.Citations, t)
		}
	}

	return meta
}

func documentAuthors(tei teiDocument) []teiAuthor {
	sd := tei.Header.FileDesc.SourceDesc
	if sd == nil || sd.BiblStruct == nil {
		return nil
	}
	if an := sd.BiblStruct.Analytic; an != nil && len(an.Authors) > 0 {
		return an.Authors
	}
	if mo := sd.BiblStruct.Monogr; mo != nil {
		return mo.Authors
	}
	return nil
}

func personName(a teiAuthor) string {
	if a.PersName == nil {
		return ""
	}
	forename := ""
	for _, f := range a.PersName.Forenames {
		if f.Type == "first" {
			forename = strings.TrimSpace(f.Text)
			break
		}
	}
	surname := strings.TrimSpace(a.PersName.Surname)
	return strings.TrimSpace(forename + " " + surname)
}

func bibliography(tei teiDocument) []teiBiblStruct {
	var entries []teiBiblStruct
	for _, div := range tei.Text.Back.Divs {
		if div.ListBibl == nil {
			continue
		}
		entries = append(entries, div.ListBibl.Entries...)
	}
	return entries
}

// citationTitle prefers the article-level (analytic) title and falls back to
// the venue-level (monographic) one. Entries with neither are skipped.
func citationTitle(entry teiBiblStruct) string {
	if entry.Analytic != nil && entry.Analytic.Title != nil {
		if t := strings.TrimSpace(entry.Analytic.Title.Text); t != "" {
			return t
		}
	}
	if entry.Monogr != nil && entry.Monogr.Title != nil {
		if t := strings.TrimSpace(entry.Monogr.Title.Text); t != "" {
			return t
		}
	}
	return ""
}
