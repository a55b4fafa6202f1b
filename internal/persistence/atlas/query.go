package atlas

import (
	"context"
	"database/sql"
)

// QueryFeatures lists features for a seed ordered by kind and region. An
// empty kind matches every kind; limit <= 0 means no limit.
func QueryFeatures(ctx context.Context, db *sql.DB, seed int64, kind string, limit int) ([]Feature, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx, `SELECT seed,kind,region_x,region_z,center_x,center_z,radius,height,biome FROM features
		WHERE seed=? AND (?='' OR kind=?) ORDER BY kind, region_x, region_z LIMIT ?`, seed, kind, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Feature
	for rows.Next() {
		var f Feature
		if err := rows.Scan(&f.Seed, &f.Kind, &f.RegionX, &f.RegionZ, &f.CenterX, &f.CenterZ, &f.Radius, &f.Height, &f.Biome); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func QueryChunks(ctx context.Context, db *sql.DB, seed int64, limit int) ([]Chunk, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx, `SELECT seed,cx,cz,digest,biome,min_height,max_height,buildings FROM chunks
		WHERE seed=? ORDER BY cx, cz LIMIT ?`, seed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.Seed, &c.CX, &c.CZ, &c.Digest, &c.Biome, &c.MinHeight, &c.MaxHeight, &c.Buildings); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func QueryMeta(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT key,value FROM meta ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}
