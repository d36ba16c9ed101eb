// Package testserver builds a fully wired in-process server for functional
// tests: in-memory SQLite storage, real services, real tool surface.
package testserver

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mvmnexus/innova/internal/clock"
	"github.com/mvmnexus/innova/internal/docstore"
	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/mvmnexus/innova/internal/domain/query"
	"github.com/mvmnexus/innova/internal/kv"
	"github.com/mvmnexus/innova/internal/mcp"
	"github.com/mvmnexus/innova/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	MCP    *sdkmcp.Server
	DB     *sqlite.DB
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	store := sqlite.NewKV(db)
	accountRepo := docstore.NewAccountRepository(store)
	projectRepo := docstore.NewProjectRepository(store)
	sessionStore := docstore.NewSessionStore(kv.NewMemory())

	identitySvc := identity.NewService(accountRepo, nil)
	projectSvc := project.NewService(projectRepo, accountRepo, clock.System{}, nil)
	querySvc := query.NewService(projectRepo, accountRepo, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Identity: identitySvc,
			Projects: projectSvc,
			Queries:  querySvc,
			Session:  sessionStore,
		},
	})

	server := httptest.NewServer(mcp.NewHTTPHandler(mcpServer, nil))

	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return &TestServer{
		Server: server,
		MCP:    mcpServer,
		DB:     db,
	}
}
