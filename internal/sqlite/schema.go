// Package sqlite exports a catalog snapshot into a standalone SQLite
// database for ad-hoc querying. The JSON storage file stays the source of
// truth; the exported database is a throwaway artifact.
package sqlite

// Schema DDL for all exported tables.
const (
	createAuthors = `CREATE TABLE authors (
    author_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_on TEXT NOT NULL
);`

	createCategories = `CREATE TABLE categories (
    category_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    created_on TEXT NOT NULL
);`

	createSeries = `CREATE TABLE series (
    series_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    status TEXT,
    total_books INTEGER
);`

	createBooks = `CREATE TABLE books (
    book_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    added_on TEXT NOT NULL,
    isbn TEXT,
    category_id TEXT NOT NULL,
    author_id TEXT NOT NULL,
    total_pages INTEGER NOT NULL,
    series_id TEXT,
    position_in_series TEXT,
    FOREIGN KEY (category_id) REFERENCES categories(category_id),
    FOREIGN KEY (author_id) REFERENCES authors(author_id),
    FOREIGN KEY (series_id) REFERENCES series(series_id)
);`

	createReadings = `CREATE TABLE readings (
    reading_id TEXT PRIMARY KEY,
    book_id TEXT NOT NULL,
    event TEXT NOT NULL,
    created_on TEXT NOT NULL,
    current_page INTEGER,
    FOREIGN KEY (book_id) REFERENCES books(book_id)
);`

	createReviews = `CREATE TABLE reviews (
    review_id TEXT PRIMARY KEY,
    book_id TEXT NOT NULL,
    text TEXT NOT NULL,
    created_on TEXT NOT NULL,
    FOREIGN KEY (book_id) REFERENCES books(book_id)
);`

	createGoals = `CREATE TABLE goals (
    year INTEGER PRIMARY KEY,
    target INTEGER NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxBooksAuthor   = `CREATE INDEX idx_books_author ON books(author_id);`
	idxBooksCategory = `CREATE INDEX idx_books_category ON books(category_id);`
	idxBooksSeries   = `CREATE INDEX idx_books_series ON books(series_id);`
	idxReadingsBook  = `CREATE INDEX idx_readings_book ON readings(book_id);`
	idxReadingsEvent = `CREATE INDEX idx_readings_event ON readings(event);`
	idxReviewsBook   = `CREATE INDEX idx_reviews_book ON reviews(book_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createAuthors,
	createCategories,
	createSeries,
	createBooks,
	createReadings,
	createReviews,
	createGoals,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxBooksAuthor,
	idxBooksCategory,
	idxBooksSeries,
	idxReadingsBook,
	idxReadingsEvent,
	idxReviewsBook,
}
