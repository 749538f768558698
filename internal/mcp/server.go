package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ganot/dayplan/internal/domain/backup"
	"github.com/ganot/dayplan/internal/domain/catalog"
	"github.com/ganot/dayplan/internal/domain/schedule"
)

// CatalogService defines catalog operations needed by MCP.
type CatalogService interface {
	Visible() []catalog.Activity
	GetByID(id string) (*catalog.Activity, error)
	Add(req catalog.CreateRequest) (*catalog.Activity, error)
	Update(id string, patch catalog.Patch) (*catalog.Activity, error)
	Delete(id string) error
	Reset()
}

// ScheduleService defines schedule operations needed by MCP.
type ScheduleService interface {
	ForDate(date string) *schedule.Schedule
	CheckConflict(date, startTime, endTime, excludeItemID string) (bool, error)
	AddItem(date string, activity catalog.Activity, startTime string) (*schedule.Item, error)
	UpdateItem(itemID string, patch schedule.ItemPatch) (*schedule.Item, error)
	RemoveItem(itemID string) error
	RemoveAllItems(date string)
	CopyToDate(sourceDate, targetDate string) error
	Reset()
	SelectedDate() string
}

// BackupService defines backup operations needed by MCP.
type BackupService interface {
	Export(ctx context.Context) (*backup.Document, error)
	Import(ctx context.Context, doc *backup.Document) error
	ClearAll(ctx context.Context) error
}

// Services contains all domain services needed by MCP.
type Services struct {
	Catalog  CatalogService
	Schedule ScheduleService
	Backup   BackupService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
	// Now supplies the wall clock for status tools. Defaults to time.Now.
	Now func() time.Time
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "dayplan",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Now)

	return server
}
