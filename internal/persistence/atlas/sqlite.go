// Package atlas records discovered world features and generated chunk
// digests in SQLite. The atlas is a read model; the world itself is always
// recomputed from the seed.
package atlas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

var ErrClosed = errors.New("atlas closed")

const (
	KindCity    = "city"
	KindVolcano = "volcano"
)

type Feature struct {
	Seed    int64  `json:"seed"`
	Kind    string `json:"kind"`
	RegionX int    `json:"region_x"`
	RegionZ int    `json:"region_z"`
	CenterX int    `json:"center_x"`
	CenterZ int    `json:"center_z"`
	Radius  int    `json:"radius"`
	// plateau height for cities, cone height for volcanoes
	Height int    `json:"height"`
	Biome  string `json:"biome,omitempty"`
}

type Chunk struct {
	Seed      int64  `json:"seed"`
	CX        int    `json:"cx"`
	CZ        int    `json:"cz"`
	Digest    string `json:"digest"`
	Biome     string `json:"biome"`
	MinHeight int    `json:"min_height"`
	MaxHeight int    `json:"max_height"`
	Buildings int    `json:"buildings"`
}

type SQLiteAtlas struct {
	db  *sql.DB
	log *log.Logger

	mu     sync.RWMutex
	ch     chan req
	wg     sync.WaitGroup
	once   sync.Once
	closed atomic.Bool

	failed atomic.Int64
}

type reqKind int

const (
	reqFeature reqKind = iota + 1
	reqChunk
	reqMeta
)

type req struct {
	kind    reqKind
	at      string
	feature Feature
	chunk   Chunk
	meta    map[string]string
	done    chan error
}

// OpenSQLite opens (creating if needed) the atlas at path and starts the
// writer goroutine. logger may be nil.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteAtlas, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &SQLiteAtlas{
		db:  db,
		log: logger,
		ch:  make(chan req, 16384),
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.loop()
	}()
	return a, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS features (
			seed INTEGER NOT NULL,
			kind TEXT NOT NULL,
			region_x INTEGER NOT NULL,
			region_z INTEGER NOT NULL,
			center_x INTEGER NOT NULL,
			center_z INTEGER NOT NULL,
			radius INTEGER NOT NULL,
			height INTEGER NOT NULL,
			biome TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (seed, kind, region_x, region_z)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_features_center ON features(seed, center_x, center_z);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			seed INTEGER NOT NULL,
			cx INTEGER NOT NULL,
			cz INTEGER NOT NULL,
			digest TEXT NOT NULL,
			biome TEXT NOT NULL,
			min_height INTEGER NOT NULL,
			max_height INTEGER NOT NULL,
			buildings INTEGER NOT NULL,
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (seed, cx, cz)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close drains pending writes and closes the database.
func (a *SQLiteAtlas) Close() error {
	var err error
	a.once.Do(func() {
		a.mu.Lock()
		a.closed.Store(true)
		close(a.ch)
		a.mu.Unlock()
		a.wg.Wait()
		err = a.db.Close()
		if n := a.failed.Load(); n > 0 && a.log != nil {
			a.log.Printf("atlas: %d writes failed", n)
		}
	})
	return err
}

func (a *SQLiteAtlas) enqueue(r req) error {
	if a == nil {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed.Load() {
		return ErrClosed
	}
	r.at = time.Now().UTC().Format(time.RFC3339Nano)
	a.ch <- r
	return nil
}

// RecordFeature queues a feature row; re-recording a region replaces it.
func (a *SQLiteAtlas) RecordFeature(f Feature) error {
	return a.enqueue(req{kind: reqFeature, feature: f})
}

// RecordChunk queues a chunk digest row.
func (a *SQLiteAtlas) RecordChunk(c Chunk) error {
	return a.enqueue(req{kind: reqChunk, chunk: c})
}

// UpsertMeta writes key/value pairs in one transaction and waits for the
// writer to commit them, together with any rows queued before the call.
func (a *SQLiteAtlas) UpsertMeta(kv map[string]string) error {
	if a == nil || len(kv) == 0 {
		return nil
	}
	done := make(chan error, 1)
	if err := a.enqueue(req{kind: reqMeta, meta: kv, done: done}); err != nil {
		return err
	}
	return <-done
}

func (a *SQLiteAtlas) loop() {
	ctx := context.Background()

	insertFeature, _ := a.db.Prepare(`INSERT OR REPLACE INTO features(seed,kind,region_x,region_z,center_x,center_z,radius,height,biome,recorded_at) VALUES(?,?,?,?,?,?,?,?,?,?)`)
	insertChunk, _ := a.db.Prepare(`INSERT OR REPLACE INTO chunks(seed,cx,cz,digest,biome,min_height,max_height,buildings,recorded_at) VALUES(?,?,?,?,?,?,?,?,?)`)
	insertMeta, _ := a.db.Prepare(`INSERT OR REPLACE INTO meta(key,value,updated_at) VALUES(?,?,?)`)
	defer func() {
		for _, st := range []*sql.Stmt{insertFeature, insertChunk, insertMeta} {
			if st != nil {
				_ = st.Close()
			}
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 1000
		commitMaxWait = time.Second
	)

	begin := func() error {
		if tx != nil {
			return nil
		}
		txx, err := a.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return err
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
		return nil
	}
	commit := func() error {
		if tx == nil {
			return nil
		}
		err := tx.Commit()
		if err != nil {
			a.failed.Add(int64(opCount))
		}
		tx = nil
		opCount = 0
		lastCommit = time.Now()
		return err
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		a.failed.Add(int64(opCount) + 1)
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	handle := func(r req) {
		if err := begin(); err != nil {
			a.failed.Add(1)
			if r.done != nil {
				r.done <- err
			}
			return
		}
		switch r.kind {
		case reqFeature:
			f := r.feature
			if insertFeature == nil {
				return
			}
			if _, err := tx.Stmt(insertFeature).Exec(f.Seed, f.Kind, f.RegionX, f.RegionZ, f.CenterX, f.CenterZ, f.Radius, f.Height, f.Biome, r.at); err != nil {
				rollback()
				return
			}
			opCount++

		case reqChunk:
			c := r.chunk
			if insertChunk == nil {
				return
			}
			if _, err := tx.Stmt(insertChunk).Exec(c.Seed, c.CX, c.CZ, c.Digest, c.Biome, c.MinHeight, c.MaxHeight, c.Buildings, r.at); err != nil {
				rollback()
				return
			}
			opCount++

		case reqMeta:
			if insertMeta == nil {
				r.done <- errors.New("meta statement unavailable")
				return
			}
			st := tx.Stmt(insertMeta)
			for k, v := range r.meta {
				if k == "" {
					continue
				}
				if _, err := st.Exec(k, v, r.at); err != nil {
					rollback()
					r.done <- fmt.Errorf("meta %s: %w", k, err)
					return
				}
				opCount++
			}
			r.done <- commit()
			return
		}
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			_ = commit()
		}
	}

	tick := time.NewTicker(commitMaxWait)
	defer tick.Stop()
	for {
		select {
		case r, ok := <-a.ch:
			if !ok {
				_ = commit()
				return
			}
			handle(r)
		case <-tick.C:
			if tx != nil && time.Since(lastCommit) >= commitMaxWait {
				_ = commit()
			}
		}
	}
}
