package extract

import "encoding/xml"

// Minimal TEI mapping for the fields the graph cares about. The upstream
// extraction service emits full TEI; everything else is ignored by the
// decoder, and every element here is optional.

type teiDocument struct {
	XMLName xml.Name  `xml:"TEI"`
	Header  teiHeader `xml:"teiHeader"`
	Text    teiText   `xml:"text"`
}

type teiHeader struct {
	FileDesc teiFileDesc `xml:"fileDesc"`
}

type teiFileDesc struct {
	TitleStmt  *teiTitleStmt  `xml:"titleStmt"`
	SourceDesc *teiSourceDesc `xml:"sourceDesc"`
}

type teiTitleStmt struct {
	Title *teiTitle `xml:"title"`
}

type teiTitle struct {
	Level string `xml:"level,attr"`
	Type  string `xml:"type,attr"`
	Text  string `xml:",chardata"`
}

type teiSourceDesc struct {
	BiblStruct *teiBiblStruct `xml:"biblStruct"`
}

type teiBiblStruct struct {
	Analytic *teiAnalytic `xml:"analytic"`
	Monogr   *teiMonogr   `xml:"monogr"`
}

type teiAnalytic struct {
	Title   *teiTitle   `xml:"title"`
	Authors []teiAuthor `xml:"author"`
}

type teiMonogr struct {
	Title   *teiTitle   `xml:"title"`
	Authors []teiAuthor `xml:"author"`
}

type teiAuthor struct {
	PersName *teiPersName `xml:"persName"`
}

type teiPersName struct {
	Forenames []teiForename `xml:"forename"`
	Surname   string        `xml:"surname"`
}

type teiForename struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type teiText struct {
	Back teiBack `xml:"back"`
}

type teiBack struct {
	Divs []teiDiv `xml:"div"`
}

type teiDiv struct {
	Type     string       `xml:"type,attr"`
	ListBibl *teiListBibl `xml:"listBibl"`
}

type teiListBibl struct {
	Entries []teiBiblStruct `xml:"biblStruct"`
}
