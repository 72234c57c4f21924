package pb

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName        = "blockfall.v1.Session"
	playFullMethodName = "/" + ServiceName + "/Play"
)

// SessionServer hosts one game per Play stream. The client sends commands,
// the server answers with a snapshot on every scheduler tick.
type SessionServer interface {
	Play(grpc.BidiStreamingServer[Command, Snapshot]) error
}

var SessionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SessionServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Play",
			Handler:       playHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "blockfall/pb/pb.go",
}

func playHandler(srv any, stream grpc.ServerStream) error {
	return srv.(SessionServer).Play(&grpc.GenericServerStream[Command, Snapshot]{ServerStream: stream})
}

func RegisterSessionServer(s grpc.ServiceRegistrar, srv SessionServer) {
	s.RegisterService(&SessionServiceDesc, srv)
}

type SessionClient interface {
	Play(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[Command, Snapshot], error)
}

type sessionClient struct {
	cc grpc.ClientConnInterface
}

func NewSessionClient(cc grpc.ClientConnInterface) SessionClient {
	return &sessionClient{cc: cc}
}

func (c *sessionClient) Play(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[Command, Snapshot], error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &SessionServiceDesc.Streams[0], playFullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[Command, Snapshot]{ClientStream: stream}, nil
}
