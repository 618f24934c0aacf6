package tilekit

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqlPutAsset = `INSERT INTO assets (name, data) VALUES (:name, :data) ON CONFLICT (name) DO UPDATE SET data=EXCLUDED.data;`
	sqlGetAsset = `SELECT name, data FROM assets WHERE name=? LIMIT 1;`
	sqlNames    = `SELECT name FROM assets ORDER BY name;`
)

// Pack is a single SQLite file holding a whole asset tree (maps, tilesets,
// entities and their images) keyed by slash separated name.
//
// Packs are built offline (see cmd/tilec pack) and read at load time like
// any other Source.
type Pack struct {
	filename string
	db       *sqlx.DB
}

// OpenPack given it's filename on disk.
// Will create if it doesn't exist.
func OpenPack(fname string) (*Pack, error) {
	db, err := sqlx.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}

	p := &Pack{db: db, filename: fname}
	err = p.init()
	if err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

// Filename returns the path to the pack on disk
func (p *Pack) Filename() string {
	return p.filename
}

// Close the underlying database
func (p *Pack) Close() error {
	return p.db.Close()
}

// ReadFile returns the asset stored under `name`.
// Unknown names return an error wrapping fs.ErrNotExist.
func (p *Pack) ReadFile(name string) ([]byte, error) {
	a := dbAsset{}
	err := p.db.Get(&a, sqlGetAsset, path.Clean(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	} else if err != nil {
		return nil, err
	}
	return a.Data, nil
}

// Put stores `data` under `name`, replacing anything already there.
func (p *Pack) Put(name string, data []byte) error {
	_, err := p.db.NamedExec(sqlPutAsset, dbAsset{Name: path.Clean(name), Data: data})
	return err
}

// Names returns all asset names in the pack, sorted.
func (p *Pack) Names() ([]string, error) {
	names := []string{}
	err := p.db.Select(&names, sqlNames)
	return names, err
}

// AddDir walks `root` and stores every regular file in it, named by its
// path relative to root. Everything is written in one transaction so a
// failed walk leaves the pack unchanged.
// Returns the number of files added.
func (p *Pack) AddDir(root string) (int, error) {
	assets := []dbAsset{}
	err := filepath.WalkDir(root, func(fpath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, fpath)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(fpath)
		if err != nil {
			return err
		}

		assets = append(assets, dbAsset{Name: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(assets) == 0 {
		return 0, nil
	}

	txn, err := p.db.Beginx()
	if err != nil {
		return 0, err
	}

	for _, a := range assets {
		_, err = txn.NamedExec(sqlPutAsset, a)
		if err != nil {
			txn.Rollback()
			return 0, err
		}
	}

	return len(assets), txn.Commit()
}

// init creates our DB table if it doesn't exist
func (p *Pack) init() error {
	createAssets := `CREATE TABLE IF NOT EXISTS assets(
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL
	    );`
	_, err := p.db.Exec(createAssets)
	return err
}

// dbAsset object encodes a single asset file.
type dbAsset struct {
	Name string `db:"name"`
	Data []byte `db:"data"`
}
