// Package testserver spins up a fully wired MCP server over streamable
// HTTP for functional tests.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/ganot/dayplan/internal/domain/backup"
	"github.com/ganot/dayplan/internal/domain/catalog"
	"github.com/ganot/dayplan/internal/domain/schedule"
	"github.com/ganot/dayplan/internal/mcp"
	"github.com/ganot/dayplan/internal/sqlite"
	"github.com/ganot/dayplan/internal/store"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Mirror   *store.Mirror
	Catalog  *catalog.Service
	Schedule *schedule.Service
	Now      time.Time
}

// New builds the service stack on an in-memory sqlite store and serves
// it over streamable HTTP. The status clock is pinned to ts.Now.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	mirror := store.NewMirror(sqlite.NewGateway(db), nil)
	catalogSvc := catalog.NewService(mirror, nil)
	scheduleSvc := schedule.NewService(mirror, nil)
	backupSvc := backup.NewService(catalogSvc, scheduleSvc, mirror, nil)

	ts := &TestServer{
		DB:       db,
		Mirror:   mirror,
		Catalog:  catalogSvc,
		Schedule: scheduleSvc,
		Now:      time.Date(2025, 3, 10, 9, 10, 0, 0, time.Local),
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Catalog:  catalogSvc,
			Schedule: scheduleSvc,
			Backup:   backupSvc,
		},
		Now: func() time.Time { return ts.Now },
	})

	handler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)
	server := httptest.NewServer(handler)
	ts.Server = server

	t.Cleanup(func() {
		server.Close()
		mirror.Wait()
		_ = db.Close()
	})

	return ts
}

// Connect returns a client session speaking to the test server.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL,
	}, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})

	return session
}
