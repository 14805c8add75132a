package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// GardenerServiceName is the fully qualified gRPC service name.
const GardenerServiceName = "gardener.v1.Gardener"

// GardenerServer is the headless RPC surface. Requests and responses are
// structpb.Struct documents carrying the same JSON shapes as the REST API.
type GardenerServer interface {
	ListCards(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetView(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Begin(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectCard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeselectCard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleCard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Deploy(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetChecksum(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WatchGame(*structpb.Struct, grpc.ServerStream) error
}

type unaryCall func(GardenerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	fullMethod := "/" + GardenerServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GardenerServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(GardenerServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func watchGameHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(GardenerServer).WatchGame(in, stream)
}

// GardenerServiceDesc describes the service for grpc.Server.RegisterService.
var GardenerServiceDesc = grpc.ServiceDesc{
	ServiceName: GardenerServiceName,
	HandlerType: (*GardenerServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("ListCards", GardenerServer.ListCards),
		unaryMethod("CreateGame", GardenerServer.CreateGame),
		unaryMethod("GetView", GardenerServer.GetView),
		unaryMethod("Begin", GardenerServer.Begin),
		unaryMethod("SelectCard", GardenerServer.SelectCard),
		unaryMethod("DeselectCard", GardenerServer.DeselectCard),
		unaryMethod("ToggleCard", GardenerServer.ToggleCard),
		unaryMethod("Deploy", GardenerServer.Deploy),
		unaryMethod("Reset", GardenerServer.Reset),
		unaryMethod("GetReport", GardenerServer.GetReport),
		unaryMethod("GetChecksum", GardenerServer.GetChecksum),
		unaryMethod("RemoveGame", GardenerServer.RemoveGame),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchGame",
			Handler:       watchGameHandler,
			ServerStreams: true,
		},
	},
	Metadata: "gardener/v1/gardener.proto",
}

// RegisterGardenerServer registers srv on a gRPC server.
func RegisterGardenerServer(s grpc.ServiceRegistrar, srv GardenerServer) {
	s.RegisterService(&GardenerServiceDesc, srv)
}

// gardenerServer implements GardenerServer on top of the game manager.
type gardenerServer struct {
	games  *game.Manager
	logger *zap.Logger
}

// NewGardenerServer creates the gRPC service implementation.
func NewGardenerServer(games *game.Manager, logger *zap.Logger) GardenerServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gardenerServer{games: games, logger: logger}
}

// toStruct converts any JSON-encodable value into a Struct.
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return structpb.NewStruct(m)
}

func stringField(in *structpb.Struct, name string) string {
	return in.GetFields()[name].GetStringValue()
}

func intField(in *structpb.Struct, name string) (int, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", errBadRequest, name)
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return int(k.NumberValue), nil
	case *structpb.Value_StringValue:
		n, err := strconv.Atoi(k.StringValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q", errBadRequest, name, k.StringValue)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %s must be a number", errBadRequest, name)
}

func (s *gardenerServer) gameFor(in *structpb.Struct) (*game.Game, error) {
	id := stringField(in, "game_id")
	if id == "" {
		return nil, fmt.Errorf("%w: missing game_id", errBadRequest)
	}
	return s.games.GetGame(id)
}

func viewStruct(g *game.Game) (*structpb.Struct, error) {
	return toStruct(g.View())
}

func (s *gardenerServer) ListCards(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	cards := s.games.Catalog().All()
	if name := stringField(in, "category"); name != "" {
		category, err := catalog.ParseCategory(name)
		if err != nil {
			return nil, toStatus(fmt.Errorf("%w: %v", errBadRequest, err))
		}
		cards = s.games.Catalog().ByCategory(category)
	}
	out := make([]game.CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, game.NewCardView(c, false, true))
	}
	return toStruct(map[string]interface{}{"cards": out})
}

// CreateGame starts a new game. An optional "seed" (number or decimal string)
// makes the run reproducible; the seed is echoed back as a string.
func (s *gardenerServer) CreateGame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var (
		g   *game.Game
		err error
	)
	if v, ok := in.GetFields()["seed"]; ok {
		var seed uint64
		switch k := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			seed, err = strconv.ParseUint(k.StringValue, 10, 64)
			if err != nil {
				return nil, toStatus(fmt.Errorf("%w: seed %q", errBadRequest, k.StringValue))
			}
		case *structpb.Value_NumberValue:
			seed = uint64(k.NumberValue)
		default:
			return nil, toStatus(fmt.Errorf("%w: seed must be a number", errBadRequest))
		}
		g, err = s.games.CreateGameWithSeed(seed)
	} else {
		g, err = s.games.CreateGame()
	}
	if err != nil {
		return nil, toStatus(err)
	}

	seed, _ := s.games.Seed(g.ID())
	return toStruct(map[string]interface{}{
		"game_id": g.ID(),
		"seed":    strconv.FormatUint(seed, 10),
		"view":    g.View(),
	})
}

func (s *gardenerServer) GetView(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	g, err := s.gameFor(in)
	if err != nil {
		return nil, toStatus(err)
	}
	return viewStruct(g)
}

func (s *gardenerServer) Begin(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	g, err := s.gameFor(in)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := g.Begin(); err != nil {
		return nil, toStatus(err)
	}
	return viewStruct(g)
}

func (s *gardenerServer) changeCard(in *structpb.Struct, op func(*game.Game, int) error) (*structpb.Struct, error) {
	g, err := s.gameFor(in)
	if err != nil {
		return nil, toStatus(err)
	}
	cardID, err := intField(in, "card_id")
	if err != nil {
		return nil, toStatus(err)
	}
	if err := op(g, cardID); err != nil {
		return nil, toStatus(err)
	}
	return viewStruct(g)
}

func (s *gardenerServer) SelectCard(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.changeCard(in, (*game.Game).Select)
}

func (s *gardenerServer) DeselectCard(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.changeCard(in, (*game.Game).Deselect)
}

func (s *gardenerServer) ToggleCard(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.changeCard(in, (*game.Game).Toggle)
}

func (s *gardenerServer) Deploy(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	g, err := s.gameFor(in)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.games.Deploy(g.ID()); err != nil {
		return nil, toStatus(err)
	}
	return viewStruct(g)
}

func (s *gardenerServer) Reset(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	g, err := s.gameFor(in)
	if err != nil {
		return nil, toStatus(err)
	}
	skipIntro := in.GetFields()["skip_intro"].GetBoolValue()
	if err := s.games.Reset(g.ID(), skipIntro); err != nil {
		return nil, toStatus(err)
	}
	return viewStruct(g)
}

func (s *gardenerServer) GetReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	g, err := s.gameFor(in)
	if err != nil {
		return nil, toStatus(err)
	}
	r, ready := g.Report()
	if !ready {
		return nil, toStatus(fmt.Errorf("%w: report not ready", game.ErrWrongPhase))
	}
	return toStruct(map[string]interface{}{"report": r, "text": r.Text()})
}

func (s *gardenerServer) GetChecksum(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	g, err := s.gameFor(in)
	if err != nil {
		return nil, toStatus(err)
	}
	if g.Replay().Size() == 0 {
		return nil, toStatus(fmt.Errorf("%w: nothing recorded yet", game.ErrWrongPhase))
	}
	sum, err := g.Replay().Checksum()
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(sum)
}

func (s *gardenerServer) RemoveGame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	g, err := s.gameFor(in)
	if err != nil {
		return nil, toStatus(err)
	}
	s.games.RemoveGame(g.ID())
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

// WatchGame streams the events of a game until the report is ready or the
// client goes away.
func (s *gardenerServer) WatchGame(in *structpb.Struct, stream grpc.ServerStream) error {
	g, err := s.gameFor(in)
	if err != nil {
		return toStatus(err)
	}

	relay := newEventRelay(sendBuffer, s.logger.With(zap.String("game_id", g.ID())))
	handle := g.Events().Subscribe(relay.deliver)
	defer g.Events().Unsubscribe(handle)

	// A game already in post-mortem has nothing left to stream.
	if _, ready := g.Report(); ready {
		return nil
	}

	ctx := stream.Context()
	for {
		evt, ok := relay.next(ctx)
		if !ok {
			return nil
		}
		msg, err := toStruct(evt)
		if err != nil {
			return toStatus(err)
		}
		if err := stream.SendMsg(msg); err != nil {
			return err
		}
		if evt.Type == rules.EventReportReady {
			return nil
		}
	}
}

// eventRelay buffers game events for one stream. Ordinary events are dropped
// when the buffer is full; the report-ready event never is, and it is handed
// out only after everything buffered before it.
type eventRelay struct {
	events chan rules.Event
	final  chan rules.Event
	logger *zap.Logger
}

func newEventRelay(size int, logger *zap.Logger) *eventRelay {
	return &eventRelay{
		events: make(chan rules.Event, size),
		final:  make(chan rules.Event, 1),
		logger: logger,
	}
}

func (r *eventRelay) deliver(evt rules.Event) {
	if evt.Type == rules.EventReportReady {
		select {
		case r.final <- evt:
		default:
		}
		return
	}
	select {
	case r.events <- evt:
	default:
		r.logger.Warn("watch buffer full, dropping event", zap.String("type", string(evt.Type)))
	}
}

// next blocks for the next event. It reports false once ctx is done.
func (r *eventRelay) next(ctx context.Context) (rules.Event, bool) {
	select {
	case <-ctx.Done():
		return rules.Event{}, false
	case evt := <-r.events:
		return evt, true
	case evt := <-r.final:
		select {
		case earlier := <-r.events:
			r.final <- evt
			return earlier, true
		default:
			return evt, true
		}
	}
}
