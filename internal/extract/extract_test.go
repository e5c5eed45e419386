package extract

import "testing"

const fullDoc = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <fileDesc>
      <titleStmt>
        <title level="a" type="main"> Graph Neural Networks </title>
      </titleStmt>
      <sourceDesc>
        <biblStruct>
          <analytic>
            <author>
              <persName>
                <forename type="first">Alice</forename>
                <surname>Smith</surname>
              </persName>
            </author>
            <author>
              <persName>
                <forename type="first">Bob</forename>
                <forename type="middle">J</forename>
                <surname>Jones</surname>
              </persName>
            </author>
          </analytic>
        </biblStruct>
      </sourceDesc>
    </fileDesc>
  </teiHeader>
  <text>
    <back>
      <div type="references">
        <listBibl>
          <biblStruct>
            <analytic>
              <title level="a">Prior Work</title>
            </analytic>
            <monogr>
              <title level="j">Some Journal</title>
            </monogr>
          </biblStruct>
        </listBibl>
      </div>
    </back>
  </text>
</TEI>`

func TestExtractFullDocument(t *testing.T) {
	meta := Extract([]byte(fullDoc))

	if meta.Title != "Graph Neural Networks" {
		t.Fatalf("title = %q", meta.Title)
	}
	if len(meta.Authors) != 2 || meta.Authors[0] != "Alice Smith" || meta.Authors[1] != "Bob Jones" {
		t.Fatalf("authors = %v", meta.Authors)
	}
	if len(meta.Citations) != 1 || meta.Citations[0] != "Prior Work" {
		t.Fatalf("citations = %v", meta.Citations)
	}
}

func TestExtractMissingTitleStmt(t *testing.T) {
	doc := `<TEI><teiHeader><fileDesc></fileDesc></teiHeader></TEI>`
	meta := Extract([]byte(doc))

	if meta.Title != UnknownTitle {
		t.Fatalf("title = %q, want %q", meta.Title, UnknownTitle)
	}
	if len(meta.Authors) != 0 {
		t.Fatalf("authors = %v, want empty", meta.Authors)
	}
	if len(meta.Citations) != 0 {
		t.Fatalf("citations = %v, want empty", meta.Citations)
	}
}

func TestExtractEmptyTitleFallsBack(t *testing.T) {
	doc := `<TEI><teiHeader><fileDesc><titleStmt><title>   </title></titleStmt></fileDesc></teiHeader></TEI>`
	if meta := Extract([]byte(doc)); meta.Title != UnknownTitle {
		t.Fatalf("title = %q, want %q", meta.Title, UnknownTitle)
	}
}

func TestExtractMalformedNeverPanics(t *testing.T) {
	cases := []string{
		"",
		"not xml at all",
		"<TEI><teiHeader>",
		"<unrelated/>",
	}
	for _, c := range cases {
		meta := Extract([]byte(c))
		if meta.Title != UnknownTitle {
			t.Fatalf("input %q: title = %q", c, meta.Title)
		}
	}
}

func TestExtractSkipsBlankAuthors(t *testing.T) {
	doc := `<TEI><teiHeader><fileDesc>
	<titleStmt><title>T</title></titleStmt>
	<sourceDesc><biblStruct><analytic>
		<author><persName><forename type="first">  </forename><surname>  </surname></persName></author>
		<author><persName><surname>Curie</surname></persName></author>
		<author></author>
	</analytic></biblStruct></sourceDesc>
	</fileDesc></teiHeader></TEI>`
	meta := Extract([]byte(doc))
	if len(meta.Authors) != 1 || meta.Authors[0] != "Curie" {
		t.Fatalf("authors = %v, want [Curie]", meta.Authors)
	}
}

func TestExtractCitationMonographicFallback(t *testing.T) {
	doc := `<TEI><text><back><div type="references"><listBibl>
	<biblStruct><monogr><title level="m">A Book</title></monogr></biblStruct>
	<biblStruct></biblStruct>
	<biblStruct><analytic><title>An Article</title></analytic></biblStruct>
	</listBibl></div></back></text></TEI>`
	meta := Extract([]byte(doc))
	if len(meta.Citations) != 2 || meta.Citations[0] != "A Book" || meta.Citations[1] != "An Article" {
		t.Fatalf("citations = %v", meta.Citations)
	}
}
