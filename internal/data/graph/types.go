package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// PaperNode is the full field set of a Paper as stored. A placeholder paper
// (created only as a citation target) carries the title and nothing else.
type PaperNode struct {
	Title     string     `json:"title"`
	Abstract  string     `json:"abstract,omitempty"`
	Year      int64      `json:"year,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	FullText  string     `json:"full_text,omitempty"`
	JobID     string     `json:"job_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PaperCreateFields are written only when the Paper node is first created.
type PaperCreateFields struct {
	Abstract string
	Year     int64
	Venue    string
	FullText string
	JobID    string
}

type AuthorNode struct {
	Name        string     `json:"name"`
	Affiliation string     `json:"affiliation,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// NamedNode covers Method, Dataset and Task nodes, which share a shape.
type NamedNode struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PaperDetail is a paper with its one-hop neighborhood attached.
type PaperDetail struct {
	PaperNode
	Authors   []string `json:"authors"`
	Citations []string `json:"citations"`
	Methods   []string `json:"methods"`
	Datasets  []string `json:"datasets"`
	Tasks     []string `json:"tasks"`
}

type PaperSummary struct {
	Title   string   `json:"title"`
	JobID   string   `json:"job_id,omitempty"`
	Authors []string `json:"authors"`
}

type PaperRef struct {
	Title string `json:"title"`
	JobID string `json:"job_id,omitempty"`
}

func paperFromNode(n neo4j.Node) *PaperNode {
	return &PaperNode{
		Title:     propString(n.Props, "title"),
		Abstract:  propString(n.Props, "abstract"),
		Year:      propInt(n.Props, "year"),
		Venue:     propString(n.Props, "venue"),
		FullText:  propString(n.Props, "full_text"),
		JobID:     propString(n.Props, "job_id"),
		CreatedAt: propTime(n.Props, "created_at"),
		UpdatedAt: propTime(n.Props, "updated_at"),
	}
}

func authorFromNode(n neo4j.Node) *AuthorNode {
	return &AuthorNode{
		Name:        propString(n.Props, "name"),
		Affiliation: propString(n.Props, "affiliation"),
		CreatedAt:   propTime(n.Props, "created_at"),
	}
}

func namedFromNode(n neo4j.Node) *NamedNode {
	return &NamedNode{
		Name:        propString(n.Props, "name"),
		Description: propString(n.Props, "description"),
	}
}

func propString(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func propInt(props map[string]any, key string) int64 {
	if v, ok := props[key].(int64); ok {
		return v
	}
	return 0
}

func propTime(props map[string]any, key string) *time.Time {
	if v, ok := props[key].(time.Time); ok {
		t := v.UTC()
		return &t
	}
	return nil
}

// stringList converts a collected Cypher list into []string, dropping nulls
// and empties that OPTIONAL MATCH can introduce.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// nilIfEmpty keeps never-provided create-only fields absent on the node
// instead of storing empty strings.
func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nilIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
