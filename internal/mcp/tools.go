package mcp

import (
	"context"
	"errors"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ganot/dayplan/internal/domain/backup"
	"github.com/ganot/dayplan/internal/domain/catalog"
	"github.com/ganot/dayplan/internal/domain/progress"
	"github.com/ganot/dayplan/internal/domain/schedule"
	"github.com/ganot/dayplan/internal/timeslot"
)

// Catalog tools.

type listActivitiesInput struct{}

type listActivitiesOutput struct {
	Activities []activityView `json:"activities"`
}

type activityView struct {
	catalog.Activity
	Emoji string `json:"emoji"`
}

type createActivityInput struct {
	Name            string `json:"name" jsonschema:"activity display name"`
	EmojiKey        string `json:"emojiKey,omitempty" jsonschema:"emoji preset key, e.g. homework, reading, play"`
	ColorKey        string `json:"colorKey" jsonschema:"one of: blue, purple, pink, green, orange, yellow, red, teal"`
	DurationMinutes int    `json:"durationMinutes" jsonschema:"default slot length in minutes"`
	Category        string `json:"category" jsonschema:"one of: study, reading, play, exercise, art, music, meal, rest"`
}

type activityOutput struct {
	Activity catalog.Activity `json:"activity"`
}

type updateActivityInput struct {
	ID              string  `json:"id" jsonschema:"activity id, defaults included"`
	Name            *string `json:"name,omitempty"`
	EmojiKey        *string `json:"emojiKey,omitempty"`
	ColorKey        *string `json:"colorKey,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Category        *string `json:"category,omitempty"`
}

type deleteActivityInput struct {
	ID string `json:"id"`
}

type okOutput struct {
	OK bool `json:"ok"`
}

// Schedule tools.

type getDayInput struct {
	Date string `json:"date" jsonschema:"calendar date, YYYY-MM-DD"`
}

type getDayOutput struct {
	Date  string          `json:"date"`
	Items []schedule.Item `json:"items"`
	Stats progress.Stats  `json:"stats"`
}

type placeActivityInput struct {
	Date       string `json:"date" jsonschema:"calendar date, YYYY-MM-DD"`
	ActivityID string `json:"activityId"`
	StartTime  string `json:"startTime" jsonschema:"start of the slot, HH:MM"`
}

type placeActivityOutput struct {
	OK     bool           `json:"ok"`
	Reason string         `json:"reason,omitempty"`
	Item   *schedule.Item `json:"item,omitempty"`
}

type checkConflictInput struct {
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	ExcludeItemID string `json:"excludeItemId,omitempty" jsonschema:"item to ignore, for move previews"`
}

type checkConflictOutput struct {
	Conflict bool `json:"conflict"`
}

type updateItemInput struct {
	ItemID    string  `json:"itemId"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Status    *string `json:"status,omitempty" jsonschema:"one of: planned, in_progress, completed, skipped"`
}

type itemOutput struct {
	Item schedule.Item `json:"item"`
}

type itemIDInput struct {
	ItemID string `json:"itemId"`
}

type clearDayInput struct {
	Date string `json:"date"`
}

type copyDayInput struct {
	SourceDate string `json:"sourceDate"`
	TargetDate string `json:"targetDate"`
}

type copyDayOutput struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type dayStatsInput struct {
	Date string `json:"date"`
}

// Status tools.

type nowStatusInput struct {
	Date string `json:"date,omitempty" jsonschema:"day to evaluate, defaults to the selected date"`
}

type itemStatusView struct {
	ItemID    string                 `json:"itemId"`
	Name      string                 `json:"name"`
	StartTime string                 `json:"startTime"`
	EndTime   string                 `json:"endTime"`
	Status    progress.DerivedStatus `json:"status"`
}

type nowStatusOutput struct {
	Date        string           `json:"date"`
	CurrentTime string           `json:"currentTime"`
	Current     *schedule.Item   `json:"current,omitempty"`
	Next        *schedule.Item   `json:"next,omitempty"`
	Remaining   string           `json:"remaining,omitempty" jsonschema:"time left in the current slot"`
	Items       []itemStatusView `json:"items"`
}

// Backup tools.

type exportDataInput struct{}

type importDataInput struct {
	Data backup.Document `json:"data"`
}

type importDataOutput struct {
	OK         bool `json:"ok"`
	Activities int  `json:"activities"`
	Schedules  int  `json:"schedules"`
}

type resetAllInput struct{}

func registerTools(server *sdkmcp.Server, svcs Services, now func() time.Time) {
	if now == nil {
		now = time.Now
	}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activities",
		Description: "List the visible activity catalog: defaults (minus deletions, with edits applied) followed by custom activities",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listActivitiesInput) (*sdkmcp.CallToolResult, listActivitiesOutput, error) {
		visible := svcs.Catalog.Visible()
		views := make([]activityView, 0, len(visible))
		for _, act := range visible {
			views = append(views, activityView{Activity: act, Emoji: act.Emoji()})
		}
		return nil, listActivitiesOutput{Activities: views}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_activity",
		Description: "Create a custom activity in the catalog",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createActivityInput) (*sdkmcp.CallToolResult, activityOutput, error) {
		act, err := svcs.Catalog.Add(catalog.CreateRequest{
			Name:            in.Name,
			EmojiKey:        in.EmojiKey,
			ColorKey:        catalog.Color(in.ColorKey),
			DurationMinutes: in.DurationMinutes,
			Category:        catalog.Category(in.Category),
		})
		if err != nil {
			return nil, activityOutput{}, toolError(err)
		}
		return nil, activityOutput{Activity: *act}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_activity",
		Description: "Update an activity. Editing a default creates a custom copy that replaces it in the visible list",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in updateActivityInput) (*sdkmcp.CallToolResult, activityOutput, error) {
		patch := catalog.Patch{
			Name:            in.Name,
			EmojiKey:        in.EmojiKey,
			DurationMinutes: in.DurationMinutes,
		}
		if in.ColorKey != nil {
			color := catalog.Color(*in.ColorKey)
			patch.ColorKey = &color
		}
		if in.Category != nil {
			category := catalog.Category(*in.Category)
			patch.Category = &category
		}
		act, err := svcs.Catalog.Update(in.ID, patch)
		if err != nil {
			return nil, activityOutput{}, toolError(err)
		}
		return nil, activityOutput{Activity: *act}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_activity",
		Description: "Delete an activity. Deleting a default hides it permanently until a full reset",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in deleteActivityInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := svcs.Catalog.Delete(in.ID); err != nil {
			return nil, okOutput{}, toolError(err)
		}
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_day",
		Description: "Get one day's schedule, items sorted by start time, with completion stats",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getDayInput) (*sdkmcp.CallToolResult, getDayOutput, error) {
		out := getDayOutput{Date: in.Date, Items: []schedule.Item{}}
		day := svcs.Schedule.ForDate(in.Date)
		if day != nil {
			out.Items = day.SortedItems()
		}
		out.Stats = progress.DayStats(day)
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "place_activity",
		Description: "Place an activity on a day at a start time. The end time follows from the activity's duration. Overlapping slots are rejected with ok=false",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in placeActivityInput) (*sdkmcp.CallToolResult, placeActivityOutput, error) {
		act, err := svcs.Catalog.GetByID(in.ActivityID)
		if err != nil {
			return nil, placeActivityOutput{}, toolError(err)
		}
		item, err := svcs.Schedule.AddItem(in.Date, *act, in.StartTime)
		if err != nil {
			if errors.Is(err, schedule.ErrTimeConflict) {
				return nil, placeActivityOutput{OK: false, Reason: "time conflict with an existing item"}, nil
			}
			return nil, placeActivityOutput{}, toolError(err)
		}
		return nil, placeActivityOutput{OK: true, Item: item}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "check_conflict",
		Description: "Check whether a time slot would overlap an existing item on a day",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in checkConflictInput) (*sdkmcp.CallToolResult, checkConflictOutput, error) {
		conflict, err := svcs.Schedule.CheckConflict(in.Date, in.StartTime, in.EndTime, in.ExcludeItemID)
		if err != nil {
			return nil, checkConflictOutput{}, toolError(err)
		}
		return nil, checkConflictOutput{Conflict: conflict}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_item",
		Description: "Patch a placed item's times or status. Time changes are applied as given",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in updateItemInput) (*sdkmcp.CallToolResult, itemOutput, error) {
		patch := schedule.ItemPatch{StartTime: in.StartTime, EndTime: in.EndTime}
		if in.Status != nil {
			status := schedule.ItemStatus(*in.Status)
			patch.Status = &status
		}
		item, err := svcs.Schedule.UpdateItem(in.ItemID, patch)
		if err != nil {
			return nil, itemOutput{}, toolError(err)
		}
		return nil, itemOutput{Item: *item}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "complete_item",
		Description: "Mark a placed item completed",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in itemIDInput) (*sdkmcp.CallToolResult, itemOutput, error) {
		return setItemStatus(svcs, in.ItemID, schedule.StatusCompleted)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "skip_item",
		Description: "Mark a placed item skipped. Skipped items count as missed in day stats",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in itemIDInput) (*sdkmcp.CallToolResult, itemOutput, error) {
		return setItemStatus(svcs, in.ItemID, schedule.StatusSkipped)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_item",
		Description: "Remove a placed item from its day",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in itemIDInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := svcs.Schedule.RemoveItem(in.ItemID); err != nil {
			return nil, okOutput{}, toolError(err)
		}
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_day",
		Description: "Remove every item from a day",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in clearDayInput) (*sdkmcp.CallToolResult, okOutput, error) {
		svcs.Schedule.RemoveAllItems(in.Date)
		return nil, okOutput{OK: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "copy_day",
		Description: "Copy a day's items to an empty day. Copies start over as planned. Fails with ok=false when the target already has items or the source is empty",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in copyDayInput) (*sdkmcp.CallToolResult, copyDayOutput, error) {
		err := svcs.Schedule.CopyToDate(in.SourceDate, in.TargetDate)
		switch {
		case err == nil:
			return nil, copyDayOutput{OK: true}, nil
		case errors.Is(err, schedule.ErrTargetNotEmpty):
			return nil, copyDayOutput{OK: false, Reason: "target day already has items"}, nil
		case errors.Is(err, schedule.ErrNothingToCopy):
			return nil, copyDayOutput{OK: false, Reason: "source day has no items"}, nil
		default:
			return nil, copyDayOutput{}, toolError(err)
		}
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "day_stats",
		Description: "Completion stats for one day: totals, completed, missed (explicitly skipped), completion rate, minutes",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in dayStatsInput) (*sdkmcp.CallToolResult, progress.Stats, error) {
		return nil, progress.DayStats(svcs.Schedule.ForDate(in.Date)), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "now_status",
		Description: "Evaluate a day against the wall clock: the current item, the next item, and each item's derived status",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in nowStatusInput) (*sdkmcp.CallToolResult, nowStatusOutput, error) {
		date := in.Date
		if date == "" {
			date = svcs.Schedule.SelectedDate()
		}
		wallClock := now()
		out := nowStatusOutput{
			Date:        date,
			CurrentTime: timeslot.FromMinutes(timeslot.MinutesOfDay(wallClock)),
			Items:       []itemStatusView{},
		}
		day := svcs.Schedule.ForDate(date)
		if day == nil {
			return nil, out, nil
		}
		items := day.SortedItems()
		for _, item := range items {
			out.Items = append(out.Items, itemStatusView{
				ItemID:    item.ID,
				Name:      item.Activity.Name,
				StartTime: item.StartTime,
				EndTime:   item.EndTime,
				Status:    progress.Status(item, wallClock, date),
			})
		}
		if current, ok := progress.CurrentItem(day.Items, wallClock); ok {
			out.Current = &current
			if left, err := progress.MinutesUntil(current.EndTime, wallClock); err == nil {
				out.Remaining = timeslot.FormatRemaining(left)
			}
		}
		if next, ok := progress.NextItem(day.Items, wallClock); ok {
			out.Next = &next
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_data",
		Description: "Export the full catalog and all schedules as a backup document",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in exportDataInput) (*sdkmcp.CallToolResult, backup.Document, error) {
		doc, err := svcs.Backup.Export(ctx)
		if err != nil {
			return nil, backup.Document{}, toolError(err)
		}
		return nil, *doc, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_data",
		Description: "Replace all state with a backup document's contents",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in importDataInput) (*sdkmcp.CallToolResult, importDataOutput, error) {
		if err := svcs.Backup.Import(ctx, &in.Data); err != nil {
			return nil, importDataOutput{}, toolError(err)
		}
		return nil, importDataOutput{
			OK:         true,
			Activities: len(in.Data.Activities),
			Schedules:  len(in.Data.Schedules),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_all",
		Description: "Clear all activities, schedules, and stored data, restoring the default catalog",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in resetAllInput) (*sdkmcp.CallToolResult, okOutput, error) {
		if err := svcs.Backup.ClearAll(ctx); err != nil {
			return nil, okOutput{}, toolError(err)
		}
		return nil, okOutput{OK: true}, nil
	})
}

func setItemStatus(svcs Services, itemID string, status schedule.ItemStatus) (*sdkmcp.CallToolResult, itemOutput, error) {
	item, err := svcs.Schedule.UpdateItem(itemID, schedule.ItemPatch{Status: &status})
	if err != nil {
		return nil, itemOutput{}, toolError(err)
	}
	return nil, itemOutput{Item: *item}, nil
}
