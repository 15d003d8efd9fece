package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS characters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id INTEGER NOT NULL UNIQUE,
	name TEXT NOT NULL,
	pronoun TEXT NOT NULL DEFAULT 'they',
	glyph TEXT NOT NULL DEFAULT '@',
	map_id INTEGER NOT NULL DEFAULT 0,
	y INTEGER NOT NULL DEFAULT 0,
	x INTEGER NOT NULL DEFAULT 0,
	health REAL NOT NULL DEFAULT 100,
	stress REAL NOT NULL DEFAULT 0,
	stance TEXT NOT NULL DEFAULT 'standing',
	grace INTEGER NOT NULL DEFAULT 0,
	grit INTEGER NOT NULL DEFAULT 0,
	wit INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS skills (
	character_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	rank INTEGER NOT NULL DEFAULT 0,
	tnl REAL NOT NULL DEFAULT 0,
	pending REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (character_id, name)
);

CREATE TABLE IF NOT EXISTS inventories (
	eid INTEGER NOT NULL,
	owner_id INTEGER,
	key TEXT NOT NULL,
	slot TEXT NOT NULL DEFAULT 'any',
	container_eid INTEGER NOT NULL DEFAULT 0,
	map_id INTEGER,
	x INTEGER,
	y INTEGER,
	state TEXT NOT NULL DEFAULT '{}',
	level INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS inventories_owner ON inventories(owner_id);
CREATE INDEX IF NOT EXISTS inventories_map ON inventories(map_id);
`

// SQLiteRepo implements Repo on a local sqlite database.
type SQLiteRepo struct {
	db *sqlx.DB
}

// OpenSQLite opens (and migrates) the database at dsn.
func OpenSQLite(dsn string) (*SQLiteRepo, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("persist: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("persist: migrate: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error { return r.db.Close() }

func (r *SQLiteRepo) GetCharacterBrief(ctx context.Context, ownerID int64) (CharacterBrief, bool, error) {
	var row struct {
		ID      int64   `db:"id"`
		Name    string  `db:"name"`
		Pronoun string  `db:"pronoun"`
		Glyph   string  `db:"glyph"`
		MapID   int64   `db:"map_id"`
		Y       int     `db:"y"`
		X       int     `db:"x"`
		Health  float64 `db:"health"`
		Stress  float64 `db:"stress"`
		Stance  string  `db:"stance"`
		Grace   int     `db:"grace"`
		Grit    int     `db:"grit"`
		Wit     int     `db:"wit"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT id, name, pronoun, glyph, map_id, y, x, health, stress, stance, grace, grit, wit
		 FROM characters WHERE owner_id = ?`, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return CharacterBrief{}, false, nil
	}
	if err != nil {
		return CharacterBrief{}, false, err
	}
	return CharacterBrief{
		ID: row.ID, Name: row.Name, Pronoun: row.Pronoun, Glyph: row.Glyph,
		MapID: row.MapID, Y: row.Y, X: row.X,
		Health: row.Health, Stress: row.Stress, Stance: row.Stance,
		Grace: row.Grace, Grit: row.Grit, Wit: row.Wit,
	}, true, nil
}

func (r *SQLiteRepo) CreateCharacter(ctx context.Context, ownerID int64, b CharacterBrief) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO characters (owner_id, name, pronoun, glyph, map_id, y, x, health, stress, stance, grace, grit, wit)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ownerID, b.Name, b.Pronoun, b.Glyph, b.MapID, b.Y, b.X,
		b.Health, b.Stress, b.Stance, b.Grace, b.Grit, b.Wit)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) UpsertCharacter(ctx context.Context, ownerID int64, b CharacterBrief) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO characters (owner_id, name, pronoun, glyph, map_id, y, x, health, stress, stance, grace, grit, wit)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(owner_id) DO UPDATE SET
			name=excluded.name, pronoun=excluded.pronoun, glyph=excluded.glyph,
			map_id=excluded.map_id, y=excluded.y, x=excluded.x,
			health=excluded.health, stress=excluded.stress, stance=excluded.stance,
			grace=excluded.grace, grit=excluded.grit, wit=excluded.wit`,
		ownerID, b.Name, b.Pronoun, b.Glyph, b.MapID, b.Y, b.X,
		b.Health, b.Stress, b.Stance, b.Grace, b.Grit, b.Wit)
	return err
}

func (r *SQLiteRepo) GetSkillsForCharacter(ctx context.Context, characterID int64) ([]SkillRow, error) {
	var rows []SkillRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT name, rank, tnl, pending FROM skills WHERE character_id = ?`, characterID)
	return rows, err
}

func (r *SQLiteRepo) UpsertSkills(ctx context.Context, characterID int64, rows []SkillRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO skills (character_id, name, rank, tnl, pending) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(character_id, name) DO UPDATE SET
				rank=excluded.rank, tnl=excluded.tnl, pending=excluded.pending`,
			characterID, row.Name, row.Rank, row.Tnl, row.Pending); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepo) GetInventoriesForOwner(ctx context.Context, ownerID int64) ([]InventoryRow, error) {
	return r.selectInventories(ctx,
		`SELECT eid, COALESCE(owner_id, 0) AS owner_id, key, slot, container_eid,
			COALESCE(map_id, -1) AS map_id, COALESCE(x, -1) AS x, COALESCE(y, -1) AS y, state, level
		 FROM inventories WHERE owner_id = ? ORDER BY eid`, ownerID)
}

func (r *SQLiteRepo) GetWorldInventories(ctx context.Context) ([]InventoryRow, error) {
	return r.selectInventories(ctx,
		`SELECT eid, COALESCE(owner_id, 0) AS owner_id, key, slot, container_eid,
			COALESCE(map_id, -1) AS map_id, COALESCE(x, -1) AS x, COALESCE(y, -1) AS y, state, level
		 FROM inventories WHERE owner_id IS NULL ORDER BY eid`)
}

func (r *SQLiteRepo) selectInventories(ctx context.Context, query string, args ...any) ([]InventoryRow, error) {
	var raw []struct {
		EID          int64  `db:"eid"`
		OwnerID      int64  `db:"owner_id"`
		Key          string `db:"key"`
		Slot         string `db:"slot"`
		ContainerEID int64  `db:"container_eid"`
		MapID        int64  `db:"map_id"`
		X            int    `db:"x"`
		Y            int    `db:"y"`
		State        string `db:"state"`
		Level        int    `db:"level"`
	}
	if err := r.db.SelectContext(ctx, &raw, query, args...); err != nil {
		return nil, err
	}
	out := make([]InventoryRow, len(raw))
	for i, v := range raw {
		out[i] = InventoryRow{
			EID: v.EID, OwnerID: v.OwnerID, Key: v.Key, Slot: v.Slot,
			ContainerEID: v.ContainerEID, MapID: v.MapID, X: v.X, Y: v.Y,
			State: v.State, Level: v.Level,
		}
	}
	return out, nil
}

func (r *SQLiteRepo) ReplaceInventoriesForOwner(ctx context.Context, ownerID int64, rows []InventoryRow) error {
	return r.replaceInventories(ctx,
		`DELETE FROM inventories WHERE owner_id = ?`, ownerID, rows, func(row InventoryRow) []any {
			return []any{row.EID, ownerID, row.Key, row.Slot, row.ContainerEID,
				nil, nil, nil, row.State, row.Level}
		})
}

func (r *SQLiteRepo) ReplaceInventoriesForMap(ctx context.Context, mapID int64, rows []InventoryRow) error {
	return r.replaceInventories(ctx,
		`DELETE FROM inventories WHERE owner_id IS NULL AND (map_id = ? OR map_id IS NULL)`, mapID,
		rows, func(row InventoryRow) []any {
			var m, x, y any
			if row.ContainerEID == 0 {
				m, x, y = row.MapID, row.X, row.Y
			}
			return []any{row.EID, nil, row.Key, row.Slot, row.ContainerEID,
				m, x, y, row.State, row.Level}
		})
}

func (r *SQLiteRepo) replaceInventories(ctx context.Context, deleteQuery string, deleteArg any, rows []InventoryRow, bind func(InventoryRow) []any) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArg); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventories (eid, owner_id, key, slot, container_eid, map_id, x, y, state, level)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, bind(row)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
