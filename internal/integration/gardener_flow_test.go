package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cosmicgardener/gardener-server-go/internal/config"
	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"github.com/cosmicgardener/gardener-server-go/internal/headless"
	"github.com/cosmicgardener/gardener-server-go/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// gardenerEnv serves one manager over both HTTP and gRPC.
type gardenerEnv struct {
	games  *game.Manager
	http   *httptest.Server
	conn   *grpc.ClientConn
	logger *zap.Logger
}

func newGardenerEnv(t *testing.T, settings game.Settings) *gardenerEnv {
	t.Helper()
	logger := zaptest.NewLogger(t)

	games := game.NewManager(game.ManagerConfig{
		Settings:     settings,
		TickInterval: time.Millisecond,
		MaxGames:     8,
	}, catalog.Default(), logger)
	t.Cleanup(games.Shutdown)

	gin.SetMode(gin.TestMode)
	router := server.NewRouter(server.NewAPI(games, logger), config.ServerConfig{AllowedOrigins: []string{"*"}})
	httpSrv := httptest.NewServer(router)
	t.Cleanup(httpSrv.Close)

	lis := bufconn.Listen(1 << 20)
	grpcSrv := grpc.NewServer(grpc.UnaryInterceptor(server.ChainUnaryInterceptors(
		server.RecoveryInterceptor(logger),
		server.LoggingInterceptor(logger),
	)))
	server.RegisterGardenerServer(grpcSrv, server.NewGardenerServer(games, logger))
	go func() { _ = grpcSrv.Serve(lis) }()
	t.Cleanup(grpcSrv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &gardenerEnv{games: games, http: httpSrv, conn: conn, logger: logger}
}

func (env *gardenerEnv) post(t *testing.T, path, body string) (int, []byte) {
	t.Helper()
	resp, err := http.Post(env.http.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (env *gardenerEnv) get(t *testing.T, path string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(env.http.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (env *gardenerEnv) invoke(t *testing.T, method string, in map[string]interface{}) (*structpb.Struct, error) {
	t.Helper()
	req, err := structpb.NewStruct(in)
	require.NoError(t, err)
	out := new(structpb.Struct)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = env.conn.Invoke(ctx, "/"+server.GardenerServiceName+"/"+method, req, out)
	return out, err
}

func data(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope), string(raw))
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

// playOverBothSurfaces creates and configures a game over HTTP, then deploys
// it over gRPC and waits for the report.
func playOverBothSurfaces(t *testing.T, env *gardenerEnv, seed uint64, cards []int) string {
	t.Helper()
	code, raw := env.post(t, "/api/games", fmt.Sprintf(`{"seed": %d}`, seed))
	require.Equal(t, http.StatusCreated, code, string(raw))
	var created struct {
		GameID string `json:"game_id"`
	}
	data(t, raw, &created)

	code, raw = env.post(t, "/api/games/"+created.GameID+"/begin", "")
	require.Equal(t, http.StatusOK, code, string(raw))
	for _, id := range cards {
		code, raw = env.post(t, fmt.Sprintf("/api/games/%s/cards/%d/select", created.GameID, id), "")
		require.Equal(t, http.StatusOK, code, string(raw))
	}

	out, err := env.invoke(t, "GetView", map[string]interface{}{"game_id": created.GameID})
	require.NoError(t, err)
	assert.Equal(t, "SELECTION", out.GetFields()["phase"].GetStringValue())
	assert.Len(t, out.GetFields()["selected"].GetListValue().GetValues(), len(cards))

	_, err = env.invoke(t, "Deploy", map[string]interface{}{"game_id": created.GameID})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		code, _ := env.get(t, "/api/games/"+created.GameID+"/report")
		return code == http.StatusOK
	}, 10*time.Second, 5*time.Millisecond)
	return created.GameID
}

func TestGameSharedAcrossSurfaces(t *testing.T) {
	env := newGardenerEnv(t, game.DefaultSettings())
	id := playOverBothSurfaces(t, env, 42, []int{1, 9})

	out, err := env.invoke(t, "GetReport", map[string]interface{}{"game_id": id})
	require.NoError(t, err)
	text := out.GetFields()["text"].GetStringValue()

	code, raw := env.get(t, "/api/games/"+id+"/report?format=text")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, text, string(raw))

	code, raw = env.post(t, "/api/games/"+id+"/reset", `{"skip_intro": true}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	out, err = env.invoke(t, "GetView", map[string]interface{}{"game_id": id})
	require.NoError(t, err)
	assert.Equal(t, "SELECTION", out.GetFields()["phase"].GetStringValue())
	assert.Zero(t, out.GetFields()["spent"].GetNumberValue())

	_, err = env.invoke(t, "RemoveGame", map[string]interface{}{"game_id": id})
	require.NoError(t, err)
	code, _ = env.get(t, "/api/games/"+id)
	assert.Equal(t, http.StatusNotFound, code)
	_, err = env.invoke(t, "GetView", map[string]interface{}{"game_id": id})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServedRunMatchesHeadlessRun(t *testing.T) {
	settings := game.DefaultSettings()
	settings.Budget = 100
	cards := []int{31, 6, 11, 5, 28, 35, 12, 8, 10, 2, 4, 33}
	const seed = 2024

	env := newGardenerEnv(t, settings)
	id := playOverBothSurfaces(t, env, seed, cards)

	out, err := env.invoke(t, "GetChecksum", map[string]interface{}{"game_id": id})
	require.NoError(t, err)
	served := out.GetFields()["hash"].GetStringValue()
	require.Len(t, served, 64)

	summary, err := headless.Run(context.Background(), headless.Options{
		Settings: settings,
		Cards:    cards,
		Runs:     1,
		Seed:     seed,
	}, env.logger)
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, served, summary.Results[0].Checksum)

	g, err := env.games.GetGame(id)
	require.NoError(t, err)
	v := g.View()
	assert.Equal(t, summary.Results[0].Outcome, v.Outcome)
	assert.Equal(t, summary.Results[0].CivilizationID, v.Civilization.ID)
	assert.True(t, v.Outcome.Terminal())
	if v.Outcome == rules.OutcomeSuccess {
		assert.True(t, rules.IsCheckpoint(v.Civilization.Stage))
	}
}

func TestCapacitySharedAcrossSurfaces(t *testing.T) {
	env := newGardenerEnv(t, game.DefaultSettings())
	for i := 0; i < 4; i++ {
		code, raw := env.post(t, "/api/games", "")
		require.Equal(t, http.StatusCreated, code, string(raw))
		_, err := env.invoke(t, "CreateGame", map[string]interface{}{})
		require.NoError(t, err)
	}
	assert.Equal(t, 8, env.games.Count())

	code, _ := env.post(t, "/api/games", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	_, err := env.invoke(t, "CreateGame", map[string]interface{}{})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}
