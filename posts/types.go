package posts

// Defaults applied when frontmatter omits the corresponding field.
const (
	DefaultTitle  = "Untitled"
	DefaultAuthor = "Anonymous"
)

// Category is the closed set of article categories. The set is fixed by the
// site, not derived from content; frontmatter values outside it are dropped.
type Category string

const (
	CategoryTechNotes    Category = "tech-notes"
	CategoryReadingNotes Category = "reading-notes"
	CategoryDailyLog     Category = "daily-log"
)

// AllCategories returns the closed category set in display order.
func AllCategories() []Category {
	return []Category{CategoryTechNotes, CategoryReadingNotes, CategoryDailyLog}
}

// ParseCategory maps a frontmatter value onto the closed category set.
func ParseCategory(value string) (Category, bool) {
	switch Category(value) {
	case CategoryTechNotes, CategoryReadingNotes, CategoryDailyLog:
		return Category(value), true
	default:
		return "", false
	}
}

// Post is one markdown article. Identity is the filename-derived slug, which
// never changes once assigned. Listing operations return summaries with
// Content empty; Get performs the full resolution.
type Post struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	Category    Category `json:"category,omitempty"`
	Content     string   `json:"content,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty"`
	ReadingTime int      `json:"readingTime,omitempty"`
}
