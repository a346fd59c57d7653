// Path: internal/domain/models.go
package domain

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	// UntitledPlaceholder is shown when an article has neither a title nor content to derive one from.
	UntitledPlaceholder = "Untitled"
	// UnknownAuthorPlaceholder is shown when an article has no author.
	UnknownAuthorPlaceholder = "Unknown author"

	derivedTitleRunes  = 50
	derivedTitleSuffix = "..."
)

// Article represents a single article document. It is read-only from this
// service's point of view and carries both JSON and BSON mappings.
type Article struct {
	ID       DocumentID `json:"id" bson:"_id"`
	Title    string     `json:"title,omitempty" bson:"title,omitempty"`
	Author   string     `json:"author,omitempty" bson:"author,omitempty"`
	Content  string     `json:"content" bson:"content"`
	Summary  string     `json:"summary,omitempty" bson:"summary,omitempty"`
	URL      string     `json:"url,omitempty" bson:"url,omitempty"`
	Likes    Count      `json:"likes,omitzero" bson:"likes,omitempty"`
	Comments Count      `json:"comments,omitzero" bson:"comments,omitempty"`
	Images   []string   `json:"images,omitempty" bson:"images,omitempty"`
}

// UnmarshalJSON accepts both "id" and the raw Mongo "_id" key, so responses
// relayed from other deployments decode the same way as our own.
func (a *Article) UnmarshalJSON(data []byte) error {
	type plain Article
	var aux struct {
		plain
		RawID DocumentID `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*a = Article(aux.plain)
	if a.ID == "" {
		a.ID = aux.RawID
	}
	return nil
}

// UnmarshalBSON decodes a stored document. Text fields holding a number or a
// boolean keep its string form and other non-string values decode as empty,
// so one malformed document does not fail the whole page.
func (a *Article) UnmarshalBSON(data []byte) error {
	var doc struct {
		ID       DocumentID    `bson:"_id"`
		Title    looseString   `bson:"title"`
		Author   looseString   `bson:"author"`
		Content  looseString   `bson:"content"`
		Summary  looseString   `bson:"summary"`
		URL      looseString   `bson:"url"`
		Likes    Count         `bson:"likes"`
		Comments Count         `bson:"comments"`
		Images   bson.RawValue `bson:"images"`
	}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*a = Article{
		ID:       doc.ID,
		Title:    string(doc.Title),
		Author:   string(doc.Author),
		Content:  string(doc.Content),
		Summary:  string(doc.Summary),
		URL:      string(doc.URL),
		Likes:    doc.Likes,
		Comments: doc.Comments,
		Images:   scalarStrings(doc.Images),
	}
	return nil
}

// DisplayTitle returns the title, or the first 50 characters of the content
// followed by an ellipsis when the title is absent.
func (a Article) DisplayTitle() string {
	if a.Title != "" {
		return a.Title
	}
	if a.Content == "" {
		return ""
	}
	content := a.Content
	if utf8.RuneCountInString(content) > derivedTitleRunes {
		content = string([]rune(content)[:derivedTitleRunes])
	}
	return content + derivedTitleSuffix
}

// DisplayAuthor returns the author or a placeholder.
func (a Article) DisplayAuthor() string {
	if a.Author != "" {
		return a.Author
	}
	return UnknownAuthorPlaceholder
}

// MatchesSearch reports whether search is a case-insensitive substring of the
// title or the author. The empty search matches everything.
func (a Article) MatchesSearch(search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Author), needle)
}

// ArticlePage is one page of a listing plus the collection total.
type ArticlePage struct {
	Articles []Article `json:"articles"`
	Total    int64     `json:"total"`
}
