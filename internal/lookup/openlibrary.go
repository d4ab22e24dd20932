package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const openLibraryBaseURL = "https://openlibrary.org"

// userAgent identifies us to the catalog services, as their usage policies
// ask for.
const userAgent = "bookmon/1.0 (https://github.com/benedicteb/bookmon)"

// seriesRE matches series strings like "Harry Potter #1" or
// "Kingkiller Chronicle #2.5".
var seriesRE = regexp.MustCompile(`^(.+?)\s*#(\d+(?:\.\d+)?)\s*$`)

// parseSeriesString splits an edition series string into a name and an
// optional position. Strings without a "#<number>" suffix come back whole
// with an empty position.
func parseSeriesString(s string) (name, position string) {
	s = strings.TrimSpace(s)
	if m := seriesRE.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), m[2]
	}
	return s, ""
}

// OpenLibrary looks up books through the openlibrary.org API.
type OpenLibrary struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenLibrary creates an OpenLibrary provider with a request timeout.
func NewOpenLibrary() *OpenLibrary {
	return &OpenLibrary{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    openLibraryBaseURL,
	}
}

func (p *OpenLibrary) Name() string { return "OpenLibrary" }

// GetBookByISBN resolves an ISBN through three calls: a search for the work
// key, the work record itself, and the edition record for series data. The
// edition and author detail calls are best-effort.
func (p *OpenLibrary) GetBookByISBN(ctx context.Context, isbn string) (*BookLookup, error) {
	isbn = NormalizeISBN(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("invalid ISBN")
	}

	doc, err := p.searchForBook(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	work, err := p.fetchWork(ctx, doc.Key)
	if err != nil {
		return nil, err
	}

	result := &BookLookup{
		Title:       work.Title,
		Description: work.Description.text(),
		ISBN:        isbn,
		PublishDate: work.FirstPublishDate,
	}
	if len(work.Covers) > 0 {
		result.CoverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", work.Covers[0])
	}

	result.Authors = p.collectAuthors(ctx, work.Authors, doc.AuthorName)

	if seriesName, position, ok := p.fetchEditionSeries(ctx, isbn); ok {
		result.SeriesName = seriesName
		result.SeriesPosition = position
	}

	return result, nil
}

// searchForBook finds the work key for an ISBN. A search with no results is
// a miss, not an error.
func (p *OpenLibrary) searchForBook(ctx context.Context, isbn string) (*searchDoc, error) {
	var out searchResponse
	query := url.Values{"q": {isbn}}
	if err := p.getJSON(ctx, "/search.json?"+query.Encode(), &out); err != nil {
		return nil, err
	}
	if out.NumFound == 0 || len(out.Docs) == 0 {
		return nil, nil
	}
	return &out.Docs[0], nil
}

func (p *OpenLibrary) fetchWork(ctx context.Context, workKey string) (*workRecord, error) {
	var out workRecord
	if err := p.getJSON(ctx, workKey+".json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// collectAuthors pairs the work's author references with the names from the
// search result, enriching each from the author record when that call
// succeeds.
func (p *OpenLibrary) collectAuthors(ctx context.Context, refs []workAuthor, names []string) []Author {
	var out []Author
	for i, ref := range refs {
		if i >= len(names) {
			break
		}
		a := Author{Name: names[i]}
		var detail authorRecord
		if err := p.getJSON(ctx, ref.Author.Key+".json", &detail); err == nil {
			a.PersonalName = detail.PersonalName
			a.BirthDate = detail.BirthDate
			a.DeathDate = detail.DeathDate
			a.Bio = detail.Bio.text()
		}
		out = append(out, a)
	}
	return out
}

// fetchEditionSeries reads the edition record for its series list. Failures
// are swallowed; series data is a nice-to-have.
func (p *OpenLibrary) fetchEditionSeries(ctx context.Context, isbn string) (name, position string, ok bool) {
	var edition struct {
		Series []string `json:"series"`
	}
	if err := p.getJSON(ctx, "/isbn/"+isbn+".json", &edition); err != nil {
		return "", "", false
	}
	if len(edition.Series) == 0 {
		return "", "", false
	}
	name, position = parseSeriesString(edition.Series[0])
	if name == "" {
		return "", "", false
	}
	return name, position, true
}

func (p *OpenLibrary) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// NormalizeISBN strips hyphens and spaces and rejects anything that is not
// ten or thirteen characters long.
func NormalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}
	return isbn
}

// OpenLibrary API response types.

type searchResponse struct {
	NumFound int         `json:"num_found"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
}

type workRecord struct {
	Title            string       `json:"title"`
	Authors          []workAuthor `json:"authors"`
	Description      textValue    `json:"description"`
	FirstPublishDate string       `json:"first_publish_date"`
	Covers           []int64      `json:"covers"`
}

type workAuthor struct {
	Author struct {
		Key string `json:"key"`
	} `json:"author"`
}

type authorRecord struct {
	Name         string    `json:"name"`
	PersonalName string    `json:"personal_name"`
	BirthDate    string    `json:"birth_date"`
	DeathDate    string    `json:"death_date"`
	Bio          textValue `json:"bio"`
}

// textValue accepts the two shapes OpenLibrary uses for prose fields: a bare
// string or a {"type": ..., "value": ...} object.
type textValue struct {
	value string
}

func (t *textValue) text() string { return t.value }

func (t *textValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.value = s
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		t.value = obj.Value
		return nil
	}
	// Unexpected shapes degrade to empty rather than failing the lookup.
	t.value = ""
	return nil
}
