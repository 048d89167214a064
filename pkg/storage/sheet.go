package storage

import (
	"context"
	"database/sql"

	"github.com/soloelec/invsheet/pkg/inventory"
)

// LoadSheet reads the whole sheet in display order.
func (d *DB) LoadSheet(ctx context.Context) ([]inventory.Record, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT ref, designation, qty, price, note, image, updated_at FROM records ORDER BY position, ref")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []inventory.Record
	for rows.Next() {
		var r inventory.Record
		if err := rows.Scan(&r.Ref, &r.Designation, &r.Qty, &r.Price, &r.Note, &r.Image, &r.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveSheet replaces the stored sheet with the given records, keeping their
// slice order as the display order. The swap happens in one transaction.
func (d *DB) SaveSheet(ctx context.Context, records []inventory.Record) error {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return wrapWriteErr("records", err)
	}
	for i, r := range records {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO records(ref, designation, qty, price, note, image, updated_at, position) VALUES(?,?,?,?,?,?,?,?)",
			r.Ref, r.Designation, r.Qty, r.Price, r.Note, r.Image, r.Timestamp, i); err != nil {
			return wrapWriteErr("records", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return wrapWriteErr("records", err)
	}
	return nil
}
