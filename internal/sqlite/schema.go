// Schema definitions for the SQLite document backend.
package sqlite

// Schema DDL for all tables.
const (
	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    name TEXT PRIMARY KEY,
    revision TEXT NOT NULL,
    line_count INTEGER NOT NULL,
    updated_at TEXT NOT NULL
);`

	createDocumentLines = `CREATE TABLE IF NOT EXISTS document_lines (
    name TEXT NOT NULL,
    line_no INTEGER NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (name, line_no),
    FOREIGN KEY (name) REFERENCES documents(name) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxDocumentsUpdated = `CREATE INDEX IF NOT EXISTS idx_documents_updated ON documents(updated_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createDocuments,
	createDocumentLines,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxDocumentsUpdated,
}
