// Copyright (c) 2025 Mara Ionescu.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
)

// dbtx covers both *sql.DB and *sql.Tx so a plan can be built read-only
// or inside the applying transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Plan describes what a sync would do, by gift id. Deletes are
// uncommitted gifts purged before re-insert; Updates are committed
// gifts refreshed in place; Inserts come from the snapshot; Preserved
// are committed gifts the snapshot no longer mentions, left untouched.
type Plan struct {
	Deletes   []string `json:"deletes"`
	Updates   []string `json:"updates"`
	Inserts   []string `json:"inserts"`
	Preserved []string `json:"preserved"`
}

// Summary renders the plan for CLI output.
func (p *Plan) Summary() string {
	return fmt.Sprintf("%s deletes, %s updates, %s inserts, %s preserved",
		humanize.Comma(int64(len(p.Deletes))),
		humanize.Comma(int64(len(p.Updates))),
		humanize.Comma(int64(len(p.Inserts))),
		humanize.Comma(int64(len(p.Preserved))))
}

// BuildPlan diffs the snapshot against the database without writing.
// The commitment ledger, not the denormalized is_committed flag, decides
// which gifts count as committed.
func BuildPlan(ctx context.Context, q dbtx, snap *Snapshot) (*Plan, error) {
	committed := make(map[string]bool)
	rows, err := q.QueryContext(ctx, `SELECT gift_id FROM commitments WHERE status = 'active'`)
	if err != nil {
		return nil, fmt.Errorf("query active commitments: %w", err)
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		committed[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	existing := make(map[string]bool)
	rows, err = q.QueryContext(ctx, `SELECT id FROM gifts`)
	if err != nil {
		return nil, fmt.Errorf("query gifts: %w", err)
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		existing[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	plan := &Plan{
		Deletes:   []string{},
		Updates:   []string{},
		Inserts:   []string{},
		Preserved: []string{},
	}

	inSnapshot := make(map[string]bool)
	for _, g := range snap.Gifts() {
		inSnapshot[g.ID] = true
		if existing[g.ID] && committed[g.ID] {
			plan.Updates = append(plan.Updates, g.ID)
		} else {
			plan.Inserts = append(plan.Inserts, g.ID)
		}
	}

	for id := range existing {
		if committed[id] {
			if !inSnapshot[id] {
				plan.Preserved = append(plan.Preserved, id)
			}
			continue
		}
		plan.Deletes = append(plan.Deletes, id)
	}

	sort.Strings(plan.Deletes)
	sort.Strings(plan.Updates)
	sort.Strings(plan.Inserts)
	sort.Strings(plan.Preserved)
	return plan, nil
}
