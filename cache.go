package ndsprite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// PaletteCache remembers the normal palette generated for each subject along
// with the hashes of the images it was generated from. Reusing a cached
// palette keeps the output stable between runs when the inputs haven't
// changed.
type PaletteCache struct {
	db *sql.DB
}

// NewPaletteCache opens or creates the sqlite database at file.
func NewPaletteCache(file string) (*PaletteCache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// Writers are serialized anyway, this avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, subject TEXT NOT NULL UNIQUE, front_sha1 TEXT NOT NULL, back_sha1 TEXT NOT NULL, method TEXT NOT NULL, normal BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &PaletteCache{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *PaletteCache) Close() error {
	return c.db.Close()
}

// Find returns the cached palette for subject if it was generated from
// images with the same hashes using the same method, otherwise nil.
func (c *PaletteCache) Find(subject, frontSHA1, backSHA1 string, method PaletteMethod) (*Palette, error) {
	var b []byte
	switch err := c.db.QueryRow("SELECT normal FROM palette WHERE subject = ? AND front_sha1 = ? AND back_sha1 = ? AND method = ?", subject, frontSHA1, backSHA1, method.String()).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		p := new(Palette)
		if err := p.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, err
	}
}

// Store records p as the palette for subject, replacing any previous entry.
func (c *PaletteCache) Store(subject, frontSHA1, backSHA1 string, method PaletteMethod, p Palette) error {
	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := c.db.Exec("INSERT OR REPLACE INTO palette (subject, front_sha1, back_sha1, method, normal) VALUES (?, ?, ?, ?, ?)", subject, frontSHA1, backSHA1, method.String(), b); err != nil {
		return err
	}
	return nil
}
