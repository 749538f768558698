package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `dayplan manages a child's daily activity schedule: a catalog of reusable activities and per-day timelines of placed items.

Core concepts:
- Activity: a reusable template (name, emoji, color, duration, category). The catalog starts with 8 built-in defaults.
- Schedule item: one placement of an activity on a calendar day, occupying [startTime, endTime). End time is fixed at placement from the activity's duration.
- Days never contain overlapping items. place_activity rejects overlaps with ok=false; use check_conflict to preview a slot first.
- Editing a default activity creates a custom copy that replaces it; deleting a default hides it until reset_all.
- Item status is explicit (planned, completed, skipped); now_status additionally derives current/upcoming/missed from the wall clock without storing anything.

Typical flow:
1) list_activities to see what can be scheduled.
2) place_activity to fill a day; check_conflict when proposing times.
3) complete_item / skip_item as the day unfolds; now_status to see where the child is right now.
4) day_stats for the evening summary; copy_day to reuse a good day's plan.
5) export_data / import_data to move everything between devices.

Times are HH:MM, dates are YYYY-MM-DD. All mutations persist automatically.

Docs:
- dayplan://docs/usage (tool-by-tool guide with the scheduling rules)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "dayplan://docs/usage",
		Name:        "docs_usage",
		Title:       "dayplan usage guide",
		Description: "Scheduling rules and the intended tool flow.",
		Content: `# dayplan: Usage Guide

## The catalog

` + "`list_activities`" + ` returns defaults first (seed order), then custom activities in creation order. Each entry carries an emoji resolved from its emojiKey.

- ` + "`create_activity`" + ` needs a name, a color, a positive duration, and a category.
- ` + "`update_activity`" + ` on a default does not edit it in place: a custom copy is created and shown instead, keeping the same position in the list. Further updates edit that same copy.
- ` + "`delete_activity`" + ` on a default records the deletion so the default stays hidden across restarts. ` + "`reset_all`" + ` is the only way back.

## Days and placement

A day is identified by its date string. ` + "`place_activity`" + ` computes the end time from the activity's duration and refuses slots that overlap an existing item; adjacent slots (one ends exactly when the next starts) are fine. The rejection is an ordinary result with ` + "`ok=false`" + `, not an error.

` + "`update_item`" + ` applies time changes as given without re-checking overlaps. Call ` + "`check_conflict`" + ` with ` + "`excludeItemId`" + ` first when moving an item.

` + "`copy_day`" + ` only fills empty days. Clear the target first if you really mean to replace it. Copied items always start as planned.

## Status

Stored status moves only through ` + "`complete_item`" + `, ` + "`skip_item`" + `, and ` + "`update_item`" + `. ` + "`now_status`" + ` derives what the day looks like at the current wall clock: the item whose window contains now, the next one coming up, and a per-item status where completed always wins over the clock and items on future dates read as future.

` + "`day_stats`" + ` counts explicitly skipped items as missed; an item whose window merely passed stays out of that count.

## Backup

` + "`export_data`" + ` returns the complete state as one document. ` + "`import_data`" + ` replaces everything with the document's contents, including un-hiding any deleted defaults. ` + "`reset_all`" + ` wipes state and storage back to the 8 defaults.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
